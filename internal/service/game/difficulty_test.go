package game

import "testing"

func TestDepthForTable(t *testing.T) {
	cases := []struct {
		difficulty, depth int
	}{
		{1, 2},
		{2, 4},
		{3, 6},
		// out-of-range levels clamp
		{0, 2},
		{-3, 2},
		{4, 6},
		{99, 6},
	}

	for _, c := range cases {
		if got := DepthFor(c.difficulty); got != c.depth {
			t.Errorf("DepthFor(%d) = %d, want %d", c.difficulty, got, c.depth)
		}
	}
}

func TestAdjustDifficulty(t *testing.T) {
	cases := []struct {
		name    string
		current int
		winners []string
		want    int
	}{
		{"human dominates, raise", 2, []string{"HUMAN", "HUMAN", "HUMAN", "HUMAN", "BOT"}, 3},
		{"human dominates at max, stay", 3, []string{"HUMAN", "HUMAN", "HUMAN", "HUMAN", "HUMAN"}, 3},
		{"human struggles, lower", 2, []string{"BOT", "BOT", "BOT", "BOT", "HUMAN"}, 1},
		{"human struggles at min, stay", 1, []string{"BOT", "BOT", "BOT", "BOT", "BOT"}, 1},
		{"balanced, stay", 2, []string{"HUMAN", "BOT", "HUMAN", "BOT", "HUMAN"}, 2},
		{"two wins, stay", 2, []string{"HUMAN", "HUMAN", "BOT", "BOT", "BOT"}, 2},
		{"draws do not count as wins", 2, []string{"DRAW", "DRAW", "DRAW", "DRAW", "HUMAN"}, 1},
		{"no history, lower", 2, nil, 1},
	}

	for _, c := range cases {
		if got := AdjustDifficulty(c.current, c.winners); got != c.want {
			t.Errorf("%s: AdjustDifficulty(%d, %v) = %d, want %d", c.name, c.current, c.winners, got, c.want)
		}
	}
}
