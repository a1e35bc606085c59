// Package engine implements the adversarial search that picks the bot's
// moves: a heuristic position evaluator and a depth-limited minimax with
// alpha-beta pruning over a mutable board.
//
// The engine performs no I/O and keeps no global state. Whatever the
// driver wants recorded (node counts, think time) comes back as plain
// return values.
package engine

import (
	"math"
	"time"

	"github.com/Gabo-araya/connect4-IA-agent/internal/domain"
)

// SuggestionDepth is the fixed shallow depth used for hints.
const SuggestionDepth = 2

// Engine selects moves for one side of one board. It owns the board
// exclusively while a search is in progress: trial moves are visible on
// the board mid-search and only reverted before the call returns.
type Engine struct {
	board *domain.Board
	side  domain.PlayerID
}

// MoveResult carries a chosen column plus the search diagnostics the
// driver persists.
type MoveResult struct {
	Column  int
	Elapsed time.Duration
	Nodes   int
}

// New creates an engine that plays side on board.
func New(board *domain.Board, side domain.PlayerID) *Engine {
	return &Engine{board: board, side: side}
}

// ChooseMove runs an alpha-beta search of the given depth (any depth >= 0)
// and returns the chosen column with timing and node-count diagnostics.
// If the search yields no column — only possible at depth 0 or on an
// already-decided board — it falls back to the first valid move rather
// than failing. A full board returns ErrNoLegalMove.
func (e *Engine) ChooseMove(depth int) (MoveResult, error) {
	start := time.Now()

	if depth < 0 {
		depth = 0
	}

	s := &searcher{board: e.board, side: e.side}
	_, column := s.search(depth, math.Inf(-1), math.Inf(1), true)

	if column < 0 {
		validMoves := e.board.ValidMoves()
		if len(validMoves) == 0 {
			return MoveResult{Column: -1}, domain.ErrNoLegalMove
		}
		column = validMoves[0]
	}

	return MoveResult{
		Column:  column,
		Elapsed: time.Since(start),
		Nodes:   s.nodes,
	}, nil
}

// SuggestMove returns a hint for the human: a shallow search run as the
// minimizing side, estimating the reply a rational opponent would make.
// It deliberately does not answer "what would the bot play here" — the
// minimizing role is the observed behavior and is kept as is.
func (e *Engine) SuggestMove() (int, error) {
	s := &searcher{board: e.board, side: e.side}
	_, column := s.search(SuggestionDepth, math.Inf(-1), math.Inf(1), false)

	if column < 0 || !e.board.IsValidMove(column) {
		validMoves := e.board.ValidMoves()
		if len(validMoves) == 0 {
			return -1, domain.ErrNoLegalMove
		}
		column = validMoves[0]
	}

	return column, nil
}

// EvaluateBoard exposes the static heuristic for the engine's side.
func (e *Engine) EvaluateBoard() int {
	return EvaluatePosition(e.board, e.side)
}
