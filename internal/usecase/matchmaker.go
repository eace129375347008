package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/game"
)

const defaultJoinAttempts = 3

type roomRegistry interface {
	JoinOrCreate(identity string, session game.Session) (*game.Room, error)
	Retire(roomID string) bool
}

// Matchmaker is the entry protocol between a connection and the room registry.
type Matchmaker struct {
	logger       *slog.Logger
	registry     roomRegistry
	joinAttempts int
}

func NewMatchmaker(logger *slog.Logger, registry roomRegistry, joinAttempts int) *Matchmaker {
	if joinAttempts <= 0 {
		joinAttempts = defaultJoinAttempts
	}

	return &Matchmaker{
		logger: logger,

		registry:     registry,
		joinAttempts: joinAttempts,
	}
}

// Join places the session's identity in a room. A waiting room that was
// retired between lookup and join surfaces as ErrRoomFull and is retried.
func (that *Matchmaker) Join(ctx context.Context, session game.Session) (*game.Room, error) {
	log := that.logger.With("method", "Join", "playerID", session.Identity())

	var lastErr error

	for attempt := 1; attempt <= that.joinAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("failed to join room: %w", err)
		}

		room, err := that.registry.JoinOrCreate(session.Identity(), session)
		if err == nil {
			return room, nil
		}

		if !errors.Is(err, apperror.ErrRoomFull) {
			return nil, fmt.Errorf("failed to join room: %w", err)
		}

		log.Warn("waiting room refused player, retrying", "attempt", attempt, "error", err)
		lastErr = err
	}

	return nil, fmt.Errorf("failed to join room after %d attempts: %w", that.joinAttempts, lastErr)
}

func (that *Matchmaker) Move(ctx context.Context, room *game.Room, identity string, cell int) (*game.Outcome, error) {
	if room == nil {
		return nil, fmt.Errorf("%w: %s", apperror.ErrNotInRoom, identity)
	}

	outcome, err := room.ApplyMove(ctx, identity, cell)
	if err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	return outcome, nil
}

// Leave retires the room first so no newcomer can be seated in it,
// then tells the remaining participant.
func (that *Matchmaker) Leave(ctx context.Context, room *game.Room, identity string) {
	if room == nil {
		return
	}

	log := that.logger.With("method", "Leave", "playerID", identity, "roomID", room.ID)

	state := room.Snapshot()

	retired := that.registry.Retire(room.ID)
	abandoned := room.Abandon(identity)

	switch {
	case state.IsWaiting():
		log.InfoContext(ctx, "player left before an opponent arrived", "retired", retired)
	case state.IsOngoing():
		log.InfoContext(ctx, "player abandoned the game", "moves", state.Moves, "retired", retired, "abandoned", abandoned)
	case state.IsFinished():
		log.InfoContext(ctx, "player left a finished game", "winner", state.Winner, "retired", retired)
	}
}
