package storage

import (
	"context"
	"database/sql"
	"fmt"

	// import the SQLite driver to register it with the database/sql package.
	_ "github.com/mattn/go-sqlite3"
)

const createResultsTable = `CREATE TABLE IF NOT EXISTS results (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	room_id       TEXT    NOT NULL UNIQUE,
	player_first  TEXT    NOT NULL,
	player_second TEXT    NOT NULL,
	winner        TEXT    NOT NULL,
	winner_id     TEXT    NOT NULL DEFAULT '',
	loser_id      TEXT    NOT NULL DEFAULT '',
	moves         INTEGER NOT NULL,
	created_at    INTEGER NOT NULL
)`

type Storage struct {
	Connection *sql.DB
}

func NewSQLiteStorage(path string) (*Storage, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	// sqlite allows a single writer
	conn.SetMaxOpenConns(1)

	if err = conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &Storage{Connection: conn}, nil
}

// Init creates the game history table. The winner column holds the winning
// mark, or "-" for a draw.
func (that *Storage) Init(ctx context.Context) error {
	_, err := that.Connection.ExecContext(ctx, createResultsTable)
	if err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *Storage) Close() error {
	if err := that.Connection.Close(); err != nil {
		return fmt.Errorf("can't close database: %w", err)
	}

	return nil
}
