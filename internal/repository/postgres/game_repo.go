package postgres

import (
	"database/sql"
	"fmt"
	"time"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// GameRecord is one row of the games table.
type GameRecord struct {
	GameID          string
	InitialPlayer   string
	Winner          string
	Rows            int
	Columns         int
	Difficulty      int
	GameSeconds     float64
	HumanMoves      int
	BotMoves        int
	SuggestionsUsed int
	TotalBotTimeMS  int64
	NodesExplored   int64
	AvgBotMoveMS    float64
	CreatedAt       time.Time
	FinishedAt      *time.Time
}

// MoveRecord is one row of the moves table.
type MoveRecord struct {
	GameID      string
	Mover       string
	Column      int
	Row         int
	Suggested   bool
	ThinkTimeMS int64
	Nodes       int64
	PlayedAt    time.Time
}

// CreateGame registers a new game at the moment it starts. Outcome and
// statistics columns stay at their defaults until FinishGame.
func (r *GameRepo) CreateGame(gameID, initialPlayer string, rows, columns, difficulty int, createdAt time.Time) error {
	query := `
	INSERT INTO games (game_id, initial_player, rows, columns, difficulty, created_at)
	VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := r.DB.Exec(query, gameID, initialPlayer, rows, columns, difficulty, createdAt); err != nil {
		return fmt.Errorf("failed to insert game: %v", err)
	}
	return nil
}

// RecordMove appends a move to the game's history. Bot moves carry their
// search diagnostics; human moves leave them at zero.
func (r *GameRepo) RecordMove(m MoveRecord) error {
	query := `
	INSERT INTO moves (game_id, mover, move_column, move_row, suggested, think_time_ms, nodes, played_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.DB.Exec(query, m.GameID, m.Mover, m.Column, m.Row, m.Suggested, m.ThinkTimeMS, m.Nodes, m.PlayedAt)
	if err != nil {
		return fmt.Errorf("failed to insert move: %v", err)
	}
	return nil
}

// FinishGame writes the outcome and the final statistics of a game.
func (r *GameRepo) FinishGame(rec GameRecord) error {
	query := `
	UPDATE games
	SET winner = $2,
	    game_seconds = $3,
	    human_moves = $4,
	    bot_moves = $5,
	    suggestions_used = $6,
	    total_bot_time_ms = $7,
	    nodes_explored = $8,
	    avg_bot_move_ms = $9,
	    finished_at = $10
	WHERE game_id = $1;
	`
	_, err := r.DB.Exec(query,
		rec.GameID,
		rec.Winner,
		rec.GameSeconds,
		rec.HumanMoves,
		rec.BotMoves,
		rec.SuggestionsUsed,
		rec.TotalBotTimeMS,
		rec.NodesExplored,
		rec.AvgBotMoveMS,
		rec.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update game stats: %v", err)
	}
	return nil
}

// RecentWinners returns the winners of the most recently finished games,
// newest first. Drives the history-based difficulty adjustment.
func (r *GameRepo) RecentWinners(limit int) ([]string, error) {
	query := `
	SELECT winner
	FROM games
	WHERE winner IS NOT NULL
	ORDER BY finished_at DESC
	LIMIT $1;
	`
	rows, err := r.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent winners: %v", err)
	}
	defer rows.Close()

	var winners []string
	for rows.Next() {
		var winner string
		if err := rows.Scan(&winner); err != nil {
			return nil, fmt.Errorf("failed to scan winner: %v", err)
		}
		winners = append(winners, winner)
	}
	return winners, rows.Err()
}

// GetGameByID retrieves one game record, or nil when it does not exist.
func (r *GameRepo) GetGameByID(gameID string) (*GameRecord, error) {
	query := `
	SELECT game_id, initial_player, winner, rows, columns, difficulty,
	       game_seconds, human_moves, bot_moves, suggestions_used,
	       total_bot_time_ms, nodes_explored, avg_bot_move_ms,
	       created_at, finished_at
	FROM games
	WHERE game_id = $1;
	`

	var rec GameRecord
	var winner sql.NullString
	var gameSeconds sql.NullFloat64
	var finishedAt sql.NullTime

	err := r.DB.QueryRow(query, gameID).Scan(
		&rec.GameID,
		&rec.InitialPlayer,
		&winner,
		&rec.Rows,
		&rec.Columns,
		&rec.Difficulty,
		&gameSeconds,
		&rec.HumanMoves,
		&rec.BotMoves,
		&rec.SuggestionsUsed,
		&rec.TotalBotTimeMS,
		&rec.NodesExplored,
		&rec.AvgBotMoveMS,
		&rec.CreatedAt,
		&finishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %v", err)
	}

	rec.Winner = winner.String
	rec.GameSeconds = gameSeconds.Float64
	if finishedAt.Valid {
		t := finishedAt.Time
		rec.FinishedAt = &t
	}
	return &rec, nil
}

// ListRecentGames returns the most recent finished games, newest first.
func (r *GameRepo) ListRecentGames(limit int) ([]GameRecord, error) {
	query := `
	SELECT game_id, initial_player, winner, rows, columns, difficulty,
	       game_seconds, human_moves, bot_moves, suggestions_used,
	       total_bot_time_ms, nodes_explored, avg_bot_move_ms,
	       created_at, finished_at
	FROM games
	WHERE finished_at IS NOT NULL
	ORDER BY finished_at DESC
	LIMIT $1;
	`
	rows, err := r.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %v", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var rec GameRecord
		var winner sql.NullString
		var gameSeconds sql.NullFloat64
		var finishedAt sql.NullTime

		err := rows.Scan(
			&rec.GameID,
			&rec.InitialPlayer,
			&winner,
			&rec.Rows,
			&rec.Columns,
			&rec.Difficulty,
			&gameSeconds,
			&rec.HumanMoves,
			&rec.BotMoves,
			&rec.SuggestionsUsed,
			&rec.TotalBotTimeMS,
			&rec.NodesExplored,
			&rec.AvgBotMoveMS,
			&rec.CreatedAt,
			&finishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %v", err)
		}

		rec.Winner = winner.String
		rec.GameSeconds = gameSeconds.Float64
		if finishedAt.Valid {
			t := finishedAt.Time
			rec.FinishedAt = &t
		}
		games = append(games, rec)
	}
	return games, rows.Err()
}

// GetMoves returns a game's moves in the order they were played.
func (r *GameRepo) GetMoves(gameID string) ([]MoveRecord, error) {
	query := `
	SELECT game_id, mover, move_column, move_row, suggested, think_time_ms, nodes, played_at
	FROM moves
	WHERE game_id = $1
	ORDER BY id ASC;
	`
	rows, err := r.DB.Query(query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query moves: %v", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(&m.GameID, &m.Mover, &m.Column, &m.Row, &m.Suggested, &m.ThinkTimeMS, &m.Nodes, &m.PlayedAt); err != nil {
			return nil, fmt.Errorf("failed to scan move row: %v", err)
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}
