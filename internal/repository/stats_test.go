package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/testing/suite"
)

func TestStatsRepository_Increment(t *testing.T) {
	ctx, st := suite.New(t)

	statsRepo := NewStatsRepository(st.Storage)

	// Given: alice beats bob twice and they draw once
	win := &entity.Result{Winner: "alice", Loser: "bob", Players: [2]string{"alice", "bob"}, WinnerMark: entity.PlayerX}
	draw := &entity.Result{Players: [2]string{"bob", "alice"}, Draw: true}

	// When: Increment is called for each game
	require.NoError(t, statsRepo.Increment(ctx, win))
	require.NoError(t, statsRepo.Increment(ctx, win))
	require.NoError(t, statsRepo.Increment(ctx, draw))

	// Then: both counters reflect the three games
	alice, err := statsRepo.GetByPlayerID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, &entity.Stats{PlayerID: "alice", Wins: 2, Draws: 1}, alice)

	bob, err := statsRepo.GetByPlayerID(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, &entity.Stats{PlayerID: "bob", Losses: 2, Draws: 1}, bob)
}

func TestStatsRepository_GetByPlayerID_Unknown(t *testing.T) {
	ctx, st := suite.New(t)

	statsRepo := NewStatsRepository(st.Storage)

	// When: GetByPlayerID is called for an identity without games
	stats, err := statsRepo.GetByPlayerID(ctx, "nobody")

	// Then: zero counters are returned
	require.NoError(t, err)
	assert.Equal(t, &entity.Stats{PlayerID: "nobody"}, stats)
}
