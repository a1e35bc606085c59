package engine

import (
	"github.com/Gabo-araya/connect4-IA-agent/internal/domain"
)

const (
	SCORE_FOUR         = 100
	SCORE_THREE        = 5
	SCORE_TWO          = 2
	SCORE_BLOCK_THREE  = -4
	CENTER_CELL_WEIGHT = 3
)

// EvaluateWindow scores a single 4-cell window from the perspective of
// side. It is a pure function of its arguments:
//
//	four of side            -> +100
//	three of side, one gap  -> +5
//	two of side, two gaps   -> +2
//	three of the opponent, one gap -> -4
//	anything else           -> 0
func EvaluateWindow(w domain.Window, side domain.PlayerID) int {
	opponent := domain.Opponent(side)

	own, empty, theirs := 0, 0, 0
	for _, cell := range w {
		switch cell {
		case side:
			own++
		case opponent:
			theirs++
		default:
			empty++
		}
	}

	score := 0
	switch {
	case own == 4:
		score += SCORE_FOUR
	case own == 3 && empty == 1:
		score += SCORE_THREE
	case own == 2 && empty == 2:
		score += SCORE_TWO
	}

	if theirs == 3 && empty == 1 {
		score += SCORE_BLOCK_THREE
	}

	return score
}

// EvaluatePosition scores the whole board from the perspective of side:
// the sum of EvaluateWindow over every window, plus a bonus per own piece
// in the center column. Window scores are additive across windows, so a
// single piece can contribute to several of them.
func EvaluatePosition(b *domain.Board, side domain.PlayerID) int {
	score := 0

	center := b.Columns() / 2
	for row := 0; row < b.Rows(); row++ {
		if b.Cell(row, center) == side {
			score += CENTER_CELL_WEIGHT
		}
	}

	b.ForEachWindow(func(w domain.Window) bool {
		score += EvaluateWindow(w, side)
		return true
	})

	return score
}
