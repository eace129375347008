package entity

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

// Board is the 3x3 grid, row by row.
type Board [9]string

// NewBoard returns a board with every cell empty.
func NewBoard() Board {
	return Board{EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell}
}

// Filled counts the non-empty cells.
func (that Board) Filled() int {
	filled := 0
	for _, cell := range that {
		if cell != EmptyCell {
			filled++
		}
	}

	return filled
}

// OtherMark returns the opposite mark.
func OtherMark(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// RoomState is a point-in-time copy of a room, safe to read without the room lock.
type RoomState struct {
	ID      string    `json:"id"`
	Board   Board     `json:"board"`
	Turn    string    `json:"turn"`
	Winner  string    `json:"winner"`
	Status  string    `json:"status"`
	Moves   int       `json:"moves"`
	Players []*Player `json:"players,omitempty"`
}

func (that *RoomState) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *RoomState) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *RoomState) IsWaiting() bool {
	return that.Status == StatusWaiting
}
