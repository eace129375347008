package game

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/pkg"
)

// Registry owns every live room and the single room waiting for an opponent.
// Lock order is registry then room; rooms never call back into the registry.
type Registry struct {
	logger        *slog.Logger
	reporter      ResultReporter
	resultTimeout time.Duration
	newID         func() string

	mu        sync.Mutex
	rooms     map[string]*Room
	waitingID string
}

func NewRegistry(logger *slog.Logger, reporter ResultReporter, resultTimeout time.Duration) *Registry {
	return &Registry{
		logger:        logger.With("component", "registry"),
		reporter:      reporter,
		resultTimeout: resultTimeout,
		newID:         pkg.GenerateGameID,
		rooms:         make(map[string]*Room),
	}
}

// JoinOrCreate seats identity in the waiting room when there is one,
// otherwise creates a new room and records it as waiting.
// If the waiting room refuses the player with ErrRoomFull the pointer is
// cleared and the error is returned so the caller can retry.
func (that *Registry) JoinOrCreate(identity string, session Session) (*Room, error) {
	log := that.logger.With("method", "JoinOrCreate", "playerID", identity)

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.waitingID != "" {
		room, ok := that.rooms[that.waitingID]
		if !ok {
			log.Warn("waiting room is not registered", "roomID", that.waitingID)
			that.waitingID = ""
		} else {
			_, err := room.AddPlayer(identity, session)
			if errors.Is(err, apperror.ErrAlreadyInRoom) {
				return nil, err
			}

			that.waitingID = ""

			if err != nil {
				return nil, fmt.Errorf("failed to join waiting room %s: %w", room.ID, err)
			}

			log.Info("player paired", "roomID", room.ID)

			return room, nil
		}
	}

	room := NewRoom(that.newID(), that.logger, that.reporter, that.resultTimeout)
	if _, err := room.AddPlayer(identity, session); err != nil {
		return nil, fmt.Errorf("failed to add player to new room: %w", err)
	}

	that.rooms[room.ID] = room
	that.waitingID = room.ID

	log.Info("room created", "roomID", room.ID)

	return room, nil
}

// Retire removes the room and clears the waiting pointer if it named this room.
// It reports whether the room was registered.
func (that *Registry) Retire(roomID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[roomID]; !ok {
		return false
	}

	delete(that.rooms, roomID)

	if that.waitingID == roomID {
		that.waitingID = ""
	}

	that.logger.Info("room retired", "roomID", roomID)

	return true
}

// WaitingID returns the id of the room awaiting an opponent, or "".
func (that *Registry) WaitingID() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.waitingID
}

func (that *Registry) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.rooms)
}
