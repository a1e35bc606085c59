package engine

import (
	"math"

	"github.com/Gabo-araya/connect4-IA-agent/internal/domain"
)

// searcher runs one depth-limited alpha-beta search over a single board.
// A fresh searcher is created per top-level call so the node counter is
// never shared between searches.
//
// The board is mutated in place: every trial Drop is undone right after
// the recursive call returns, so the board leaves a search in exactly the
// state it entered. Nothing else may touch the board while a search is
// running.
type searcher struct {
	board *domain.Board
	side  domain.PlayerID // the maximizing side
	nodes int
}

// search returns the minimax value of the current position and the column
// that achieves it, or -1 when the position is terminal. Scores are
// float64 so that won and lost positions sit at +Inf and -Inf, strictly
// outside the evaluator's range.
func (s *searcher) search(depth int, alpha, beta float64, maximizing bool) (float64, int) {
	s.nodes++
	validMoves := s.board.ValidMoves()

	// Terminal checks, in fixed priority order: a position where the
	// maximizing side already has four counts as won even if the board
	// is also full or the opponent also holds four.
	if s.board.HasFour(s.side) {
		return math.Inf(1), -1
	}
	if s.board.HasFour(domain.Opponent(s.side)) {
		return math.Inf(-1), -1
	}
	if len(validMoves) == 0 {
		return 0, -1
	}
	if depth == 0 {
		return float64(EvaluatePosition(s.board, s.side)), -1
	}

	if maximizing {
		value := math.Inf(-1)
		column := validMoves[0]
		for _, col := range validMoves {
			row, err := s.board.Drop(col, s.side)
			if err != nil {
				continue
			}
			score, _ := s.search(depth-1, alpha, beta, false)
			s.board.Undo(row, col)

			// strictly greater: the first column reaching the best
			// score keeps it, so ties resolve to the lowest column
			if score > value {
				value = score
				column = col
			}
			alpha = math.Max(alpha, value)
			if alpha >= beta {
				break // beta cutoff
			}
		}
		return value, column
	}

	value := math.Inf(1)
	column := validMoves[0]
	for _, col := range validMoves {
		row, err := s.board.Drop(col, domain.Opponent(s.side))
		if err != nil {
			continue
		}
		score, _ := s.search(depth-1, alpha, beta, true)
		s.board.Undo(row, col)

		if score < value {
			value = score
			column = col
		}
		beta = math.Min(beta, value)
		if alpha >= beta {
			break // alpha cutoff
		}
	}
	return value, column
}
