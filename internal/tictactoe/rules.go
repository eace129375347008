package tictactoe

import "github.com/rocketscienceinc/tictactoe-arena/internal/entity"

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Winner returns the mark that owns a full line, or EmptyCell when no line is complete.
func Winner(board entity.Board) string {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	return entity.EmptyCell
}

// IsDraw reports a full board without a winning line.
func IsDraw(board entity.Board) bool {
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return false
		}
	}

	return Winner(board) == entity.EmptyCell
}

// ValidCell checks that cell addresses the board.
func ValidCell(cell int) bool {
	return cell >= 0 && cell < len(entity.Board{})
}

// Outcome evaluates the board after a move: a winning mark, PlayerTie, or EmptyCell while play continues.
func Outcome(board entity.Board) string {
	if winner := Winner(board); winner != entity.EmptyCell {
		return winner
	}

	if IsDraw(board) {
		return entity.PlayerTie
	}

	return entity.EmptyCell
}
