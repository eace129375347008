package game

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeSession struct {
	identity string

	mu     sync.Mutex
	events []*entity.Event
	closed bool
}

func newFakeSession(identity string) *fakeSession {
	return &fakeSession{identity: identity}
}

func (that *fakeSession) Identity() string {
	return that.identity
}

func (that *fakeSession) Send(event *entity.Event) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return false
	}

	that.events = append(that.events, event)

	return true
}

func (that *fakeSession) close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true
}

func (that *fakeSession) types() []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	types := make([]string, 0, len(that.events))
	for _, event := range that.events {
		types = append(types, event.Type)
	}

	return types
}

func (that *fakeSession) last() *entity.Event {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.events) == 0 {
		return nil
	}

	return that.events[len(that.events)-1]
}

type mockReporter struct {
	mock.Mock
}

func (that *mockReporter) RecordResult(ctx context.Context, result *entity.Result) error {
	args := that.Called(ctx, result)
	return args.Error(0)
}

// startedRoom returns a room where alice holds X and bob holds O.
func startedRoom(reporter ResultReporter) (*Room, *fakeSession, *fakeSession) {
	room := NewRoom("room-1", discardLogger, reporter, 0)

	alice := newFakeSession("alice")
	bob := newFakeSession("bob")

	if _, err := room.AddPlayer(alice.Identity(), alice); err != nil {
		panic(err)
	}

	if _, err := room.AddPlayer(bob.Identity(), bob); err != nil {
		panic(err)
	}

	return room, alice, bob
}
