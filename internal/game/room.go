package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/tictactoe"
)

const (
	waitingMessage      = "waiting for an opponent"
	opponentLeftMessage = "your opponent left the game"

	defaultResultTimeout = 5 * time.Second
)

// Session is the outbound side of one participant's connection.
// Send must not block; it reports false when the event could not be queued.
type Session interface {
	Identity() string
	Send(event *entity.Event) bool
}

// ResultReporter persists the outcome of a finished game.
type ResultReporter interface {
	RecordResult(ctx context.Context, result *entity.Result) error
}

// Outcome is the room state right after an accepted move.
type Outcome struct {
	Board    entity.Board
	Turn     string
	Finished bool
	Winner   string
}

type slot struct {
	player  *entity.Player
	session Session
}

// Room owns one board and two player slots. All state is guarded by mu,
// and every broadcast is queued while mu is held so both participants
// observe the same order of events.
type Room struct {
	ID string

	logger        *slog.Logger
	reporter      ResultReporter
	resultTimeout time.Duration

	mu     sync.Mutex
	board  entity.Board
	turn   string
	status string
	winner string
	moves  int
	slots  [2]*slot
	closed bool
}

func NewRoom(id string, logger *slog.Logger, reporter ResultReporter, resultTimeout time.Duration) *Room {
	if resultTimeout <= 0 {
		resultTimeout = defaultResultTimeout
	}

	return &Room{
		ID:            id,
		logger:        logger.With("roomID", id),
		reporter:      reporter,
		resultTimeout: resultTimeout,
		board:         entity.NewBoard(),
		turn:          entity.PlayerX,
		status:        entity.StatusWaiting,
	}
}

// AddPlayer seats identity in the first free slot and returns its mark.
// The first player gets X and a waiting notice; the second gets O and starts the game.
func (that *Room) AddPlayer(identity string, session Session) (string, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return "", fmt.Errorf("%w: room %s is retired", apperror.ErrRoomFull, that.ID)
	}

	if that.playerLocked(identity) != nil {
		return "", fmt.Errorf("%w: %s", apperror.ErrAlreadyInRoom, identity)
	}

	switch {
	case that.slots[0] == nil:
		that.slots[0] = that.newSlot(identity, entity.PlayerX, session)
		that.sendLocked(that.slots[0], &entity.Event{
			Type:    entity.EventWaiting,
			Message: waitingMessage,
			RoomID:  that.ID,
		})

		return entity.PlayerX, nil
	case that.slots[1] == nil:
		that.slots[1] = that.newSlot(identity, entity.PlayerO, session)
		that.status = entity.StatusOngoing
		that.broadcastGameStartLocked()

		that.logger.Info("game started", "playerX", that.slots[0].player.ID, "playerO", identity)

		return entity.PlayerO, nil
	default:
		return "", fmt.Errorf("%w: room %s", apperror.ErrRoomFull, that.ID)
	}
}

// ApplyMove validates and applies a move for identity. When the move ends the
// game the result is reported once, after the lock is released and the final
// update has been queued.
func (that *Room) ApplyMove(ctx context.Context, identity string, cell int) (*Outcome, error) {
	outcome, result, err := that.applyMove(identity, cell)
	if err != nil {
		return nil, err
	}

	if result != nil {
		that.reportResult(ctx, result)
	}

	return outcome, nil
}

func (that *Room) applyMove(identity string, cell int) (*Outcome, *entity.Result, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed || that.status == entity.StatusFinished {
		return nil, nil, apperror.ErrGameFinished
	}

	if that.status == entity.StatusWaiting {
		return nil, nil, apperror.ErrGameIsNotStarted
	}

	player := that.playerLocked(identity)
	if player == nil {
		return nil, nil, fmt.Errorf("%w: %s", apperror.ErrNotInRoom, identity)
	}

	if !tictactoe.ValidCell(cell) {
		return nil, nil, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if player.Mark != that.turn {
		return nil, nil, apperror.ErrNotYourTurn
	}

	if that.board[cell] != entity.EmptyCell {
		return nil, nil, apperror.ErrCellOccupied
	}

	that.board[cell] = player.Mark
	that.moves++

	switch outcome := tictactoe.Outcome(that.board); outcome {
	// one player wins or the board is full
	case entity.PlayerX, entity.PlayerO, entity.PlayerTie:
		that.winner = outcome
		that.status = entity.StatusFinished
		that.turn = ""
	// game continues
	default:
		that.turn = entity.OtherMark(player.Mark)
	}

	that.broadcastLocked(that.updateEventLocked())

	result := &Outcome{
		Board:    that.board,
		Turn:     that.turn,
		Finished: that.status == entity.StatusFinished,
		Winner:   that.winner,
	}

	if !result.Finished {
		return result, nil, nil
	}

	that.logger.Info("game finished", "winner", that.winner, "moves", that.moves)

	return result, that.resultLocked(), nil
}

// Abandon retires the room on behalf of the leaving identity and tells the
// other participant. It reports false when the room was already retired.
// Abandoned games are never reported as results.
func (that *Room) Abandon(identity string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return false
	}

	that.closed = true

	for _, s := range that.slots {
		if s == nil || s.player.ID == identity {
			continue
		}

		that.sendLocked(s, &entity.Event{
			Type:    entity.EventOpponentLeft,
			Message: opponentLeftMessage,
			RoomID:  that.ID,
		})
	}

	that.logger.Info("room abandoned", "playerID", identity, "status", that.status)

	return true
}

// Snapshot returns a copy of the room state.
func (that *Room) Snapshot() *entity.RoomState {
	that.mu.Lock()
	defer that.mu.Unlock()

	state := &entity.RoomState{
		ID:     that.ID,
		Board:  that.board,
		Turn:   that.turn,
		Winner: that.winner,
		Status: that.status,
		Moves:  that.moves,
	}

	for _, s := range that.slots {
		if s == nil {
			continue
		}

		player := *s.player
		state.Players = append(state.Players, &player)
	}

	return state
}

func (that *Room) newSlot(identity, mark string, session Session) *slot {
	return &slot{
		player: &entity.Player{
			ID:     identity,
			Mark:   mark,
			GameID: that.ID,
		},
		session: session,
	}
}

func (that *Room) playerLocked(identity string) *entity.Player {
	for _, s := range that.slots {
		if s != nil && s.player.ID == identity {
			return s.player
		}
	}

	return nil
}

func (that *Room) broadcastGameStartLocked() {
	board := that.board

	for _, s := range that.slots {
		that.sendLocked(s, &entity.Event{
			Type:         entity.EventGameStart,
			RoomID:       that.ID,
			PlayerFirst:  that.slots[0].player.ID,
			PlayerSecond: that.slots[1].player.ID,
			YourMark:     s.player.Mark,
			Board:        &board,
			CurrentTurn:  that.turn,
		})
	}
}

func (that *Room) updateEventLocked() *entity.Event {
	board := that.board

	event := &entity.Event{
		Type:        entity.EventUpdate,
		Board:       &board,
		CurrentTurn: that.turn,
	}

	switch that.winner {
	case entity.EmptyCell:
	case entity.PlayerTie:
		event.GameOver = true
		event.Draw = true
	default:
		event.GameOver = true
		event.Winner = that.winner
		event.WinnerID = that.slotByMark(that.winner).player.ID
	}

	return event
}

func (that *Room) broadcastLocked(event *entity.Event) {
	for _, s := range that.slots {
		that.sendLocked(s, event)
	}
}

func (that *Room) sendLocked(s *slot, event *entity.Event) {
	if s == nil || s.session == nil {
		return
	}

	if !s.session.Send(event) {
		that.logger.Warn("failed to queue event", "playerID", s.player.ID, "event", event.Type)
	}
}

func (that *Room) slotByMark(mark string) *slot {
	if mark == entity.PlayerO {
		return that.slots[1]
	}
	return that.slots[0]
}

func (that *Room) resultLocked() *entity.Result {
	result := &entity.Result{
		RoomID:     that.ID,
		Players:    [2]string{that.slots[0].player.ID, that.slots[1].player.ID},
		Moves:      that.moves,
		FinishedAt: time.Now().UTC(),
	}

	if that.winner == entity.PlayerTie {
		result.Draw = true
		return result
	}

	result.WinnerMark = that.winner
	result.Winner = that.slotByMark(that.winner).player.ID
	result.Loser = that.slotByMark(entity.OtherMark(that.winner)).player.ID

	return result
}

func (that *Room) reportResult(ctx context.Context, result *entity.Result) {
	log := that.logger.With("method", "reportResult")

	if that.reporter == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), that.resultTimeout)
	defer cancel()

	if err := that.reporter.RecordResult(ctx, result); err != nil {
		log.Error("failed to record result", "error", err)
		return
	}

	log.Info("result recorded", "winner", result.Winner, "loser", result.Loser, "draw", result.Draw)
}
