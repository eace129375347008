package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

const (
	statsKeyPrefix = "stats:"

	fieldWins   = "wins"
	fieldLosses = "losses"
	fieldDraws  = "draws"
)

type StatsRepository interface {
	Increment(ctx context.Context, result *entity.Result) error
	GetByPlayerID(ctx context.Context, playerID string) (*entity.Stats, error)
}

type dbStats struct {
	client *redis.Client
}

type statsHash struct {
	Wins   int64 `redis:"wins"`
	Losses int64 `redis:"losses"`
	Draws  int64 `redis:"draws"`
}

func NewStatsRepository(client *redis.Client) StatsRepository {
	return &dbStats{
		client: client,
	}
}

// Increment bumps the counters of both participants in one transaction.
func (that *dbStats) Increment(ctx context.Context, result *entity.Result) error {
	pipe := that.client.TxPipeline()

	if result.Draw {
		for _, playerID := range result.Players {
			pipe.HIncrBy(ctx, statsKeyPrefix+playerID, fieldDraws, 1)
		}
	} else {
		pipe.HIncrBy(ctx, statsKeyPrefix+result.Winner, fieldWins, 1)
		pipe.HIncrBy(ctx, statsKeyPrefix+result.Loser, fieldLosses, 1)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment stats: %w", err)
	}

	return nil
}

// GetByPlayerID returns zero counters for an identity that never finished a game.
func (that *dbStats) GetByPlayerID(ctx context.Context, playerID string) (*entity.Stats, error) {
	var hash statsHash

	if err := that.client.HGetAll(ctx, statsKeyPrefix+playerID).Scan(&hash); err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return &entity.Stats{
		PlayerID: playerID,
		Wins:     hash.Wins,
		Losses:   hash.Losses,
		Draws:    hash.Draws,
	}, nil
}
