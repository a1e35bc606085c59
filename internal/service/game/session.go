package game

import (
	"sync"
	"time"

	"github.com/Gabo-araya/connect4-IA-agent/internal/domain"
	"github.com/Gabo-araya/connect4-IA-agent/internal/engine"
)

// Stats accumulates what the driver persists when the game ends. It
// mirrors the games table.
type Stats struct {
	HumanMoves      int           `json:"human_moves"`
	BotMoves        int           `json:"bot_moves"`
	SuggestionsUsed int           `json:"suggestions_used"`
	TotalBotTime    time.Duration `json:"total_bot_time_ns"`
	NodesExplored   int64         `json:"nodes_explored"`
}

// MoveOutcome describes one applied move plus the game state after it.
// Bot moves carry their search diagnostics.
type MoveOutcome struct {
	Player  domain.PlayerID
	Column  int
	Row     int
	Status  domain.GameStatus
	Winner  domain.PlayerID
	Elapsed time.Duration
	Nodes   int
	// the move followed a suggestion
	Suggested bool
}

// Session is one human-vs-bot game in progress. The mutex serializes all
// board access: the engine relies on exclusive ownership of the board
// while it searches, so a session never runs a move and a suggestion
// concurrently.
type Session struct {
	GameID        string
	Difficulty    int
	InitialPlayer domain.PlayerID
	CreatedAt     time.Time

	mu           sync.Mutex
	board        *domain.Board
	engine       *engine.Engine
	turn         domain.PlayerID
	status       domain.GameStatus
	winner       domain.PlayerID
	stats        Stats
	lastActivity time.Time
	finishedAt   time.Time
	// the next human move came from a suggestion
	pendingSuggestion bool
}

func newSession(gameID string, board *domain.Board, difficulty int, initialPlayer domain.PlayerID) *Session {
	now := time.Now()
	return &Session{
		GameID:        gameID,
		Difficulty:    difficulty,
		InitialPlayer: initialPlayer,
		CreatedAt:     now,
		board:         board,
		engine:        engine.New(board, domain.Bot),
		turn:          initialPlayer,
		status:        domain.StatusActive,
		lastActivity:  now,
	}
}

// HumanMove applies the human's move and returns the outcome.
func (s *Session) HumanMove(column int) (MoveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.StatusActive {
		return MoveOutcome{}, domain.ErrGameFinished
	}
	if s.turn != domain.Human {
		return MoveOutcome{}, domain.ErrNotYourTurn
	}
	if !s.board.IsValidMove(column) {
		return MoveOutcome{}, domain.ErrInvalidMove
	}

	row, err := s.board.Drop(column, domain.Human)
	if err != nil {
		return MoveOutcome{}, err
	}

	suggested := s.pendingSuggestion
	s.stats.HumanMoves++
	s.pendingSuggestion = false
	s.lastActivity = time.Now()
	s.settle(domain.Human)

	return MoveOutcome{
		Player:    domain.Human,
		Column:    column,
		Row:       row,
		Status:    s.status,
		Winner:    s.winner,
		Suggested: suggested,
	}, nil
}

// BotMove asks the engine for a move at the session's difficulty and
// applies it.
func (s *Session) BotMove() (MoveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.StatusActive {
		return MoveOutcome{}, domain.ErrGameFinished
	}
	if s.turn != domain.Bot {
		return MoveOutcome{}, domain.ErrNotYourTurn
	}

	result, err := s.engine.ChooseMove(DepthFor(s.Difficulty))
	if err != nil {
		return MoveOutcome{}, err
	}

	row, err := s.board.Drop(result.Column, domain.Bot)
	if err != nil {
		return MoveOutcome{}, err
	}

	s.stats.BotMoves++
	s.stats.TotalBotTime += result.Elapsed
	s.stats.NodesExplored += int64(result.Nodes)
	s.lastActivity = time.Now()
	s.settle(domain.Bot)

	return MoveOutcome{
		Player:  domain.Bot,
		Column:  result.Column,
		Row:     row,
		Status:  s.status,
		Winner:  s.winner,
		Elapsed: result.Elapsed,
		Nodes:   result.Nodes,
	}, nil
}

// Suggest runs the shallow hint search for the human and counts the use.
func (s *Session) Suggest() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.StatusActive {
		return -1, domain.ErrGameFinished
	}

	column, err := s.engine.SuggestMove()
	if err != nil {
		return -1, err
	}

	s.stats.SuggestionsUsed++
	s.pendingSuggestion = true
	s.lastActivity = time.Now()
	return column, nil
}

// settle updates status, winner and turn after mover's piece landed.
func (s *Session) settle(mover domain.PlayerID) {
	if s.board.HasFour(mover) {
		s.status = domain.StatusWon
		s.winner = mover
		s.finishedAt = time.Now()
		return
	}
	if s.board.IsDraw() {
		s.status = domain.StatusDraw
		s.finishedAt = time.Now()
		return
	}
	s.turn = domain.Opponent(mover)
}

// abandon marks an inactive session as over. Returns false if the game
// already finished.
func (s *Session) abandon() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != domain.StatusActive {
		return false
	}
	s.status = domain.StatusAbandoned
	s.finishedAt = time.Now()
	return true
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// State is a read-only snapshot for the transports.
type State struct {
	GameID        string              `json:"game_id"`
	Board         [][]domain.PlayerID `json:"board"`
	Rows          int                 `json:"rows"`
	Columns       int                 `json:"columns"`
	Turn          domain.PlayerID     `json:"turn"`
	Status        domain.GameStatus   `json:"status"`
	Winner        string              `json:"winner,omitempty"`
	Difficulty    int                 `json:"difficulty"`
	InitialPlayer string              `json:"initial_player"`
	Stats         Stats               `json:"stats"`
}

// Snapshot returns a consistent copy of the session state. The board is
// deep-copied so callers never alias cells a search may be mutating.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	winner := ""
	if s.winner != domain.Empty {
		winner = s.winner.String()
	} else if s.status == domain.StatusDraw {
		winner = "DRAW"
	}

	return State{
		GameID:        s.GameID,
		Board:         s.board.Grid(),
		Rows:          s.board.Rows(),
		Columns:       s.board.Columns(),
		Turn:          s.turn,
		Status:        s.status,
		Winner:        winner,
		Difficulty:    s.Difficulty,
		InitialPlayer: s.InitialPlayer.String(),
		Stats:         s.stats,
	}
}

// EvaluateBoard exposes the engine's static score of the current
// position, from the bot's perspective.
func (s *Session) EvaluateBoard() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.EvaluateBoard()
}
