package postgres

import (
	"database/sql"
	"fmt"
)

// schema is applied at startup; every statement is idempotent so restarts
// are safe.
const schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id            TEXT PRIMARY KEY,
	initial_player     TEXT NOT NULL CHECK (initial_player IN ('HUMAN', 'BOT')),
	winner             TEXT CHECK (winner IN ('HUMAN', 'BOT', 'DRAW', 'ABANDONED')),
	rows               INTEGER NOT NULL CHECK (rows BETWEEN 4 AND 8),
	columns            INTEGER NOT NULL CHECK (columns BETWEEN 4 AND 8),
	difficulty         INTEGER NOT NULL CHECK (difficulty IN (1, 2, 3)),
	game_seconds       DOUBLE PRECISION,
	human_moves        INTEGER NOT NULL DEFAULT 0,
	bot_moves          INTEGER NOT NULL DEFAULT 0,
	suggestions_used   INTEGER NOT NULL DEFAULT 0,
	total_bot_time_ms  BIGINT NOT NULL DEFAULT 0,
	nodes_explored     BIGINT NOT NULL DEFAULT 0,
	avg_bot_move_ms    DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at         TIMESTAMPTZ NOT NULL,
	finished_at        TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS moves (
	id            BIGSERIAL PRIMARY KEY,
	game_id       TEXT NOT NULL REFERENCES games(game_id),
	mover         TEXT NOT NULL CHECK (mover IN ('HUMAN', 'BOT')),
	move_column   INTEGER NOT NULL CHECK (move_column >= 0),
	move_row      INTEGER NOT NULL CHECK (move_row >= 0),
	suggested     BOOLEAN NOT NULL DEFAULT FALSE,
	think_time_ms BIGINT NOT NULL DEFAULT 0,
	nodes         BIGINT NOT NULL DEFAULT 0,
	played_at     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);
CREATE INDEX IF NOT EXISTS idx_games_created_at ON games(created_at);
`

// RunMigrations initializes the database schema.
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %v", err)
	}
	return nil
}
