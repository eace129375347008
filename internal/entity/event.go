package entity

const (
	EventWaiting      = "waiting"
	EventGameStart    = "game_start"
	EventUpdate       = "update"
	EventOpponentLeft = "opponent_left"
	EventError        = "error"

	CommandMove = "move"
)

// Event is a server to client message. Fields that do not apply to a type are omitted.
type Event struct {
	Type         string `json:"type"`
	Message      string `json:"message,omitempty"`
	RoomID       string `json:"room_id,omitempty"`
	PlayerFirst  string `json:"player_first,omitempty"`
	PlayerSecond string `json:"player_second,omitempty"`
	YourMark     string `json:"your_mark,omitempty"`
	Board        *Board `json:"board,omitempty"`
	CurrentTurn  string `json:"current_turn,omitempty"`
	GameOver     bool   `json:"game_over,omitempty"`
	Winner       string `json:"winner,omitempty"`
	WinnerID     string `json:"winner_id,omitempty"`
	Draw         bool   `json:"draw,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Command is a client to server message.
type Command struct {
	Type     string `json:"type"`
	Position *int   `json:"position,omitempty"`
}

func NewErrorEvent(reason string) *Event {
	return &Event{Type: EventError, Error: reason}
}
