package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func TestWinner(t *testing.T) {
	t.Run("Every fixed line wins for X", func(t *testing.T) {
		for _, combo := range WinCombos {
			// Given: a board where only the combo cells hold X
			board := entity.NewBoard()
			for _, cell := range combo {
				board[cell] = x
			}

			// When: looking for a winner
			winner := Winner(board)

			// Then: X is returned
			require.Equal(t, x, winner, "combo %v", combo)
		}
	})

	t.Run("Column win for O", func(t *testing.T) {
		// Given: O owns the middle column
		board := entity.Board{
			x, o, e,
			x, o, e,
			e, o, x,
		}

		// When: looking for a winner
		winner := Winner(board)

		// Then: O is returned
		assert.Equal(t, o, winner)
	})

	t.Run("No winner on a mixed line", func(t *testing.T) {
		// Given: a board without any complete line
		board := entity.Board{
			x, o, x,
			e, o, e,
			x, e, e,
		}

		// When: looking for a winner
		winner := Winner(board)

		// Then: nothing is returned
		assert.Equal(t, e, winner)
	})

	t.Run("Empty board has no winner", func(t *testing.T) {
		assert.Equal(t, e, Winner(entity.NewBoard()))
	})
}

func TestIsDraw(t *testing.T) {
	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: a full board with no three in a row
		board := entity.Board{
			o, x, o,
			o, x, x,
			x, o, x,
		}

		// Then: it is a draw
		assert.True(t, IsDraw(board))
		assert.Equal(t, entity.PlayerTie, Outcome(board))
	})

	t.Run("Full board with a line is a win, not a draw", func(t *testing.T) {
		// Given: a full board where X holds the main diagonal
		board := entity.Board{
			x, o, o,
			o, x, x,
			x, o, x,
		}

		// Then: it is not a draw and X wins
		assert.False(t, IsDraw(board))
		assert.Equal(t, x, Outcome(board))
	})

	t.Run("Board with empty cells is not a draw", func(t *testing.T) {
		// Given: a board with an empty cell and no line
		board := entity.Board{
			o, x, o,
			o, x, x,
			x, o, e,
		}

		// Then: play continues
		assert.False(t, IsDraw(board))
		assert.Equal(t, e, Outcome(board))
	})
}

func TestValidCell(t *testing.T) {
	for cell := range 9 {
		assert.True(t, ValidCell(cell))
	}

	assert.False(t, ValidCell(-1))
	assert.False(t, ValidCell(9))
	assert.False(t, ValidCell(20))
}
