package game

// difficulty levels and their search depths
const (
	MinDifficulty = 1
	MaxDifficulty = 3

	// how many recent games the adjustment looks at
	AdjustmentWindow = 5
)

var depthByDifficulty = map[int]int{
	1: 2,
	2: 4,
	3: 6,
}

// DepthFor maps a difficulty level to a search depth. Levels outside
// [MinDifficulty, MaxDifficulty] are clamped first.
func DepthFor(difficulty int) int {
	return depthByDifficulty[ClampDifficulty(difficulty)]
}

// ClampDifficulty forces a level into the valid range.
func ClampDifficulty(difficulty int) int {
	if difficulty < MinDifficulty {
		return MinDifficulty
	}
	if difficulty > MaxDifficulty {
		return MaxDifficulty
	}
	return difficulty
}

// AdjustDifficulty nudges the level based on the human's recent results:
// 4+ wins in the window raises it, at most 1 win lowers it, anything in
// between keeps it. winners holds the outcome of the most recent games
// (the domain.PlayerID strings, "DRAW", or "ABANDONED").
func AdjustDifficulty(current int, winners []string) int {
	humanWins := 0
	for _, w := range winners {
		if w == "HUMAN" {
			humanWins++
		}
	}

	switch {
	case humanWins >= 4 && current < MaxDifficulty:
		return current + 1
	case humanWins <= 1 && current > MinDifficulty:
		return current - 1
	default:
		return current
	}
}
