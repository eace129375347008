package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type ResultService interface {
	RecordResult(ctx context.Context, result *entity.Result) error
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.Result) error
}

type statsRepo interface {
	Increment(ctx context.Context, result *entity.Result) error
}

type resultService struct {
	logger *slog.Logger

	resultRepo resultRepo
	statsRepo  statsRepo
}

func NewResultService(logger *slog.Logger, resultRepo resultRepo, statsRepo statsRepo) ResultService {
	return &resultService{
		logger: logger,

		resultRepo: resultRepo,
		statsRepo:  statsRepo,
	}
}

// RecordResult writes the history row and bumps both players' counters.
// A failure in one store does not stop the write to the other.
func (that *resultService) RecordResult(ctx context.Context, result *entity.Result) error {
	log := that.logger.With("method", "RecordResult", "roomID", result.RoomID)

	var saveErr, statsErr error

	if err := that.resultRepo.Save(ctx, result); err != nil {
		saveErr = fmt.Errorf("failed to save result: %w", err)
	}

	if err := that.statsRepo.Increment(ctx, result); err != nil {
		statsErr = fmt.Errorf("failed to update stats: %w", err)
	}

	if err := errors.Join(saveErr, statsErr); err != nil {
		return err
	}

	log.Debug("result persisted", "draw", result.Draw, "winner", result.Winner)

	return nil
}
