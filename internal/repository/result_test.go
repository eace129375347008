package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/testing/suite"
)

func TestResultRepository_Save(t *testing.T) {
	t.Run("Win is stored with mark and identities", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		resultRepo := NewResultRepository(st.SQLite.Connection)

		// Given: alice won as X
		finishedAt := time.UnixMilli(time.Now().UnixMilli()).UTC()
		result := &entity.Result{
			RoomID:     "room-1",
			Winner:     "alice",
			Loser:      "bob",
			Players:    [2]string{"alice", "bob"},
			WinnerMark: entity.PlayerX,
			Moves:      5,
			FinishedAt: finishedAt,
		}

		// When: Save is called
		err := resultRepo.Save(ctx, result)

		// Then: the row reads back unchanged
		require.NoError(t, err)

		stored, err := resultRepo.GetByRoomID(ctx, "room-1")
		require.NoError(t, err)
		assert.Equal(t, result, stored)
	})

	t.Run("Draw is stored as a tie", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		resultRepo := NewResultRepository(st.SQLite.Connection)

		// Given: a draw
		result := &entity.Result{
			RoomID:     "room-2",
			Players:    [2]string{"alice", "bob"},
			Draw:       true,
			Moves:      9,
			FinishedAt: time.UnixMilli(0).UTC(),
		}

		// When: Save is called
		require.NoError(t, resultRepo.Save(ctx, result))

		// Then: the winner column holds the tie marker
		var winner string
		err := st.SQLite.Connection.QueryRowContext(ctx, `SELECT winner FROM results WHERE room_id = ?`, "room-2").Scan(&winner)
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerTie, winner)

		stored, err := resultRepo.GetByRoomID(ctx, "room-2")
		require.NoError(t, err)
		assert.True(t, stored.Draw)
		assert.Empty(t, stored.WinnerMark)
	})

	t.Run("Room is recorded once", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		resultRepo := NewResultRepository(st.SQLite.Connection)
		result := &entity.Result{RoomID: "room-3", Players: [2]string{"alice", "bob"}, Draw: true, Moves: 9}

		require.NoError(t, resultRepo.Save(ctx, result))

		err := resultRepo.Save(ctx, result)

		require.Error(t, err)
	})
}

func TestResultRepository_GetByRoomID_NotFound(t *testing.T) {
	ctx, st := suite.NewSQLite(t)

	resultRepo := NewResultRepository(st.SQLite.Connection)

	// When: GetByRoomID is called for an unknown room
	result, err := resultRepo.GetByRoomID(ctx, "missing")

	// Then: ErrNotFound is returned
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Nil(t, result)
}
