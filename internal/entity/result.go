package entity

import "time"

// Result is the terminal outcome of a finished (not abandoned) game.
// Winner and Loser are empty when Draw is set.
type Result struct {
	RoomID     string
	Winner     string
	Loser      string
	Players    [2]string
	WinnerMark string
	Draw       bool
	Moves      int
	FinishedAt time.Time
}

// Stats holds the aggregate counters of one identity.
type Stats struct {
	PlayerID string `json:"player_id"`
	Wins     int64  `json:"wins"`
	Losses   int64  `json:"losses"`
	Draws    int64  `json:"draws"`
}
