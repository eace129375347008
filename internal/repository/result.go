package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	GetByRoomID(ctx context.Context, roomID string) (*entity.Result, error)
}

type resultRepository struct {
	conn *sql.DB
}

func NewResultRepository(conn *sql.DB) ResultRepository {
	return &resultRepository{
		conn: conn,
	}
}

func (that *resultRepository) Save(ctx context.Context, result *entity.Result) error {
	query := `INSERT INTO results
		(room_id, player_first, player_second, winner, winner_id, loser_id, moves, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	winner := result.WinnerMark
	if result.Draw {
		winner = entity.PlayerTie
	}

	_, err := that.conn.ExecContext(ctx, query,
		result.RoomID,
		result.Players[0],
		result.Players[1],
		winner,
		result.Winner,
		result.Loser,
		result.Moves,
		result.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

func (that *resultRepository) GetByRoomID(ctx context.Context, roomID string) (*entity.Result, error) {
	query := `SELECT room_id, player_first, player_second, winner, winner_id, loser_id, moves, created_at
		FROM results WHERE room_id = ?`

	var (
		result    entity.Result
		winner    string
		createdAt int64
	)

	err := that.conn.QueryRowContext(ctx, query, roomID).Scan(
		&result.RoomID,
		&result.Players[0],
		&result.Players[1],
		&winner,
		&result.Winner,
		&result.Loser,
		&result.Moves,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: result for room %s", apperror.ErrNotFound, roomID)
	}
	if err != nil {
		return nil, fmt.Errorf("can't find result: %w", err)
	}

	if winner == entity.PlayerTie {
		result.Draw = true
	} else {
		result.WinnerMark = winner
	}

	result.FinishedAt = time.UnixMilli(createdAt).UTC()

	return &result, nil
}
