package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")

	ErrRoomFull      = errors.New("room is full")
	ErrAlreadyInRoom = errors.New("player is already in the room")
	ErrNotInRoom     = errors.New("player is not in the room")

	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrMalformedMessage   = errors.New("malformed message")
	ErrUnknownMessageType = errors.New("unknown message type")

	ErrNotFound = errors.New("not found")
)
