package websocket

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/tictactoe"
)

const internalErrorReason = "internal error"

// errors a client is allowed to see verbatim
var clientErrors = []error{
	apperror.ErrNotYourTurn,
	apperror.ErrCellOccupied,
	apperror.ErrGameFinished,
	apperror.ErrGameIsNotStarted,
	apperror.ErrInvalidCell,
	apperror.ErrNotInRoom,
	apperror.ErrRoomFull,
	apperror.ErrAlreadyInRoom,
	apperror.ErrMalformedMessage,
	apperror.ErrUnknownMessageType,
}

// decodeMove parses a client command and returns the requested cell.
func decodeMove(data []byte) (int, error) {
	var command entity.Command

	if err := json.Unmarshal(data, &command); err != nil {
		return 0, fmt.Errorf("%w: %w", apperror.ErrMalformedMessage, err)
	}

	if command.Type != entity.CommandMove {
		return 0, fmt.Errorf("%w: %q", apperror.ErrUnknownMessageType, command.Type)
	}

	if command.Position == nil {
		return 0, fmt.Errorf("%w: position is required", apperror.ErrMalformedMessage)
	}

	if !tictactoe.ValidCell(*command.Position) {
		return 0, fmt.Errorf("%w: position %d", apperror.ErrInvalidCell, *command.Position)
	}

	return *command.Position, nil
}

func errorReason(err error) string {
	for _, known := range clientErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return internalErrorReason
}
