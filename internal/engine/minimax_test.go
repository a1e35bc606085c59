package engine

import (
	"math"
	"testing"

	"github.com/Gabo-araya/connect4-IA-agent/internal/domain"
)

func mustBoard(t *testing.T, rows, columns int) *domain.Board {
	t.Helper()
	b, err := domain.NewBoard(rows, columns)
	if err != nil {
		t.Fatalf("NewBoard(%d, %d): %v", rows, columns, err)
	}
	return b
}

func mustDrop(t *testing.T, b *domain.Board, player domain.PlayerID, columns ...int) {
	t.Helper()
	for _, col := range columns {
		if _, err := b.Drop(col, player); err != nil {
			t.Fatalf("drop in column %d failed: %v", col, err)
		}
	}
}

// on an empty 6x7 board at depth 1 the search visits the root plus one
// leaf per column: 8 nodes
func TestNodeCountDepthOneEmptyBoard(t *testing.T) {
	b := mustBoard(t, 6, 7)
	e := New(b, domain.Bot)

	result, err := e.ChooseMove(1)
	if err != nil {
		t.Fatalf("ChooseMove failed: %v", err)
	}
	if result.Nodes != 8 {
		t.Fatalf("expected 8 nodes (root + 7 leaves), got %d", result.Nodes)
	}
	if result.Column < 0 || result.Column > 6 {
		t.Fatalf("expected a column in [0, 6], got %d", result.Column)
	}
}

func TestSearchRestoresBoard(t *testing.T) {
	b := mustBoard(t, 6, 7)
	mustDrop(t, b, domain.Human, 3, 2)
	mustDrop(t, b, domain.Bot, 3)

	before := b.Grid()
	e := New(b, domain.Bot)
	if _, err := e.ChooseMove(4); err != nil {
		t.Fatalf("ChooseMove failed: %v", err)
	}
	after := b.Grid()

	for r := range before {
		for c := range before[r] {
			if before[r][c] != after[r][c] {
				t.Fatalf("search left the board mutated at (%d, %d)", r, c)
			}
		}
	}
}

func TestChooseMoveTakesImmediateWin(t *testing.T) {
	b := mustBoard(t, 6, 7)
	// bot has three on the bottom row, cols 1-3; col 0 and col 4 both win
	mustDrop(t, b, domain.Bot, 1, 2, 3)
	mustDrop(t, b, domain.Human, 1, 2, 3)

	e := New(b, domain.Bot)
	result, err := e.ChooseMove(4)
	if err != nil {
		t.Fatalf("ChooseMove failed: %v", err)
	}

	// both winning columns yield +Inf: the deterministic tie-break picks
	// the lower-indexed one
	if result.Column != 0 {
		t.Fatalf("expected column 0 (first of the equally winning moves), got %d", result.Column)
	}
}

func TestChooseMoveBlocksImmediateLoss(t *testing.T) {
	b := mustBoard(t, 6, 7)
	// human holds cols 2-4 on the bottom row; col 1 is already plugged,
	// so col 5 is the only square that completes the four
	mustDrop(t, b, domain.Human, 2, 3, 4)
	mustDrop(t, b, domain.Bot, 1, 3)

	e := New(b, domain.Bot)
	result, err := e.ChooseMove(4)
	if err != nil {
		t.Fatalf("ChooseMove failed: %v", err)
	}

	if result.Column != 5 {
		t.Fatalf("expected the bot to block at column 5, got %d", result.Column)
	}
}

// a fixture where both sides hold four-in-a-row is unreachable in real
// play but pins the terminal priority: the bot's win is checked first
func TestTerminalPriorityBotWinFirst(t *testing.T) {
	b := mustBoard(t, 6, 7)
	mustDrop(t, b, domain.Human, 0, 0, 0, 0) // human vertical four, col 0
	mustDrop(t, b, domain.Bot, 6, 6, 6, 6)   // bot vertical four, col 6

	s := &searcher{board: b, side: domain.Bot}
	score, _ := s.search(4, math.Inf(-1), math.Inf(1), true)
	if !math.IsInf(score, 1) {
		t.Fatalf("expected +Inf (bot win takes priority), got %v", score)
	}

	// from the human engine's perspective the same board is also a win
	s = &searcher{board: b, side: domain.Human}
	score, _ = s.search(4, math.Inf(-1), math.Inf(1), true)
	if !math.IsInf(score, 1) {
		t.Fatalf("expected +Inf for the human-perspective searcher, got %v", score)
	}
}

func TestSearchDepthZeroReturnsEvaluation(t *testing.T) {
	b := mustBoard(t, 6, 7)
	mustDrop(t, b, domain.Bot, 3)

	s := &searcher{board: b, side: domain.Bot}
	score, column := s.search(0, math.Inf(-1), math.Inf(1), true)
	if column != -1 {
		t.Fatalf("depth 0 must not choose a column, got %d", column)
	}
	if want := float64(EvaluatePosition(b, domain.Bot)); score != want {
		t.Fatalf("depth 0 score = %v, want evaluator output %v", score, want)
	}
	if s.nodes != 1 {
		t.Fatalf("depth 0 explores exactly the root, got %d nodes", s.nodes)
	}
}

func TestDrawScoresZero(t *testing.T) {
	b := mustBoard(t, 4, 4)
	columns := [][]domain.PlayerID{
		{domain.Human, domain.Human, domain.Bot, domain.Human},
		{domain.Bot, domain.Bot, domain.Human, domain.Bot},
		{domain.Human, domain.Human, domain.Bot, domain.Human},
		{domain.Bot, domain.Bot, domain.Human, domain.Bot},
	}
	for col, stack := range columns {
		for _, player := range stack {
			mustDrop(t, b, player, col)
		}
	}

	s := &searcher{board: b, side: domain.Bot}
	score, column := s.search(6, math.Inf(-1), math.Inf(1), true)
	if score != 0 || column != -1 {
		t.Fatalf("full drawn board must score (0, none), got (%v, %d)", score, column)
	}
}

// plain minimax without pruning, used as the reference the pruned search
// must agree with
func plainMinimax(b *domain.Board, side domain.PlayerID, depth int, maximizing bool) float64 {
	validMoves := b.ValidMoves()
	if b.HasFour(side) {
		return math.Inf(1)
	}
	if b.HasFour(domain.Opponent(side)) {
		return math.Inf(-1)
	}
	if len(validMoves) == 0 {
		return 0
	}
	if depth == 0 {
		return float64(EvaluatePosition(b, side))
	}

	if maximizing {
		value := math.Inf(-1)
		for _, col := range validMoves {
			row, _ := b.Drop(col, side)
			value = math.Max(value, plainMinimax(b, side, depth-1, false))
			b.Undo(row, col)
		}
		return value
	}
	value := math.Inf(1)
	for _, col := range validMoves {
		row, _ := b.Drop(col, domain.Opponent(side))
		value = math.Min(value, plainMinimax(b, side, depth-1, true))
		b.Undo(row, col)
	}
	return value
}

// the pruned search must return the same value as plain minimax from
// every position reachable within a few plies of an empty 4x4 board
func TestAlphaBetaMatchesPlainMinimax(t *testing.T) {
	const searchDepth = 5

	b := mustBoard(t, 4, 4)

	var visit func(toMove domain.PlayerID, plies int)
	visit = func(toMove domain.PlayerID, plies int) {
		s := &searcher{board: b, side: domain.Bot}
		pruned, _ := s.search(searchDepth, math.Inf(-1), math.Inf(1), true)
		plain := plainMinimax(b, domain.Bot, searchDepth, true)
		if pruned != plain {
			t.Fatalf("after %d plies: pruned score %v != plain minimax %v\nboard: %v",
				plies, pruned, plain, b.Grid())
		}

		if plies == 0 {
			return
		}
		for _, col := range b.ValidMoves() {
			row, err := b.Drop(col, toMove)
			if err != nil {
				t.Fatalf("drop failed: %v", err)
			}
			visit(domain.Opponent(toMove), plies-1)
			b.Undo(row, col)
		}
	}

	visit(domain.Human, 3)
}

func TestChooseMoveFullBoard(t *testing.T) {
	b := mustBoard(t, 4, 4)
	player := domain.Human
	for col := 0; col < 4; col++ {
		for i := 0; i < 4; i++ {
			mustDrop(t, b, player, col)
			player = domain.Opponent(player)
		}
	}

	e := New(b, domain.Bot)
	if _, err := e.ChooseMove(4); err != domain.ErrNoLegalMove {
		t.Fatalf("expected ErrNoLegalMove on a full board, got %v", err)
	}
	if _, err := e.SuggestMove(); err != domain.ErrNoLegalMove {
		t.Fatalf("expected ErrNoLegalMove from SuggestMove on a full board, got %v", err)
	}
}

func TestChooseMoveDepthZeroFallsBack(t *testing.T) {
	b := mustBoard(t, 6, 7)
	e := New(b, domain.Bot)

	result, err := e.ChooseMove(0)
	if err != nil {
		t.Fatalf("ChooseMove(0) failed: %v", err)
	}
	// depth 0 is a leaf at the root; the defensive fallback picks the
	// first valid move
	if result.Column != 0 {
		t.Fatalf("expected fallback to column 0, got %d", result.Column)
	}
}

func TestSuggestMoveReturnsValidColumn(t *testing.T) {
	b := mustBoard(t, 6, 7)
	mustDrop(t, b, domain.Human, 3)
	mustDrop(t, b, domain.Bot, 3)

	e := New(b, domain.Bot)
	col, err := e.SuggestMove()
	if err != nil {
		t.Fatalf("SuggestMove failed: %v", err)
	}
	if !b.IsValidMove(col) {
		t.Fatalf("suggested column %d is not playable", col)
	}
}

// the suggestion anticipates the opponent: with the bot one move from
// winning, the minimizing search points the human at the blocking column
func TestSuggestMoveAnticipatesOpponent(t *testing.T) {
	b := mustBoard(t, 6, 7)
	mustDrop(t, b, domain.Bot, 1, 2, 3)
	mustDrop(t, b, domain.Human, 1, 2)

	e := New(b, domain.Bot)
	col, err := e.SuggestMove()
	if err != nil {
		t.Fatalf("SuggestMove failed: %v", err)
	}
	if col != 0 && col != 4 {
		t.Fatalf("expected the hint to block at column 0 or 4, got %d", col)
	}
}
