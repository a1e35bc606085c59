package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Gabo-araya/connect4-IA-agent/internal/domain"
	"github.com/Gabo-araya/connect4-IA-agent/internal/repository/postgres"
)

// GameRepository is the slice of the persistence layer the game service
// needs.
type GameRepository interface {
	CreateGame(gameID, initialPlayer string, rows, columns, difficulty int, createdAt time.Time) error
	RecordMove(m postgres.MoveRecord) error
	FinishGame(rec postgres.GameRecord) error
	RecentWinners(limit int) ([]string, error)
}

// WinnerCache is the optional fast path for recent game outcomes.
type WinnerCache interface {
	PushWinner(ctx context.Context, winner string) error
	RecentWinners(ctx context.Context, limit int) ([]string, error)
}

// Manager owns the active sessions and the adaptive difficulty used for
// new games.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	repo  GameRepository
	cache WinnerCache // nil when Redis is unavailable

	dmu        sync.Mutex
	difficulty int // default for games that do not pin one
}

// NewManager creates a session manager. cache may be nil.
func NewManager(repo GameRepository, cache WinnerCache, defaultDifficulty int) *Manager {
	return &Manager{
		sessions:   make(map[string]*Session),
		repo:       repo,
		cache:      cache,
		difficulty: ClampDifficulty(defaultDifficulty),
	}
}

// CurrentDifficulty returns the adaptive default difficulty.
func (m *Manager) CurrentDifficulty() int {
	m.dmu.Lock()
	defer m.dmu.Unlock()
	return m.difficulty
}

// CreateGame starts a new session. difficulty 0 means "use the adaptive
// default". When the bot opens, its first move is played before the
// session is handed back.
func (m *Manager) CreateGame(gameID string, rows, columns, difficulty int, initialPlayer domain.PlayerID) (*Session, error) {
	board, err := domain.NewBoard(rows, columns)
	if err != nil {
		return nil, err
	}

	if difficulty == 0 {
		difficulty = m.CurrentDifficulty()
	}
	difficulty = ClampDifficulty(difficulty)

	session := newSession(gameID, board, difficulty, initialPlayer)

	m.mu.Lock()
	m.sessions[gameID] = session
	m.mu.Unlock()

	if err := m.repo.CreateGame(gameID, initialPlayer.String(), rows, columns, difficulty, session.CreatedAt); err != nil {
		log.Printf("[SESSION] Failed to persist new game %s: %v", gameID, err)
	}
	log.Printf("[SESSION] Created game %s: %dx%d, difficulty %d, %s opens",
		gameID, rows, columns, difficulty, initialPlayer)

	if initialPlayer == domain.Bot {
		if _, err := m.playBotTurn(session); err != nil {
			return nil, err
		}
	}

	return session, nil
}

// Get returns an active session by ID.
func (m *Manager) Get(gameID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[gameID]
	return session, ok
}

// HumanMove applies the human's move and, if the game is still running,
// the bot's reply. The bot outcome is nil when the human move ended the
// game.
func (m *Manager) HumanMove(gameID string, column int) (MoveOutcome, *MoveOutcome, error) {
	session, ok := m.Get(gameID)
	if !ok {
		return MoveOutcome{}, nil, domain.ErrGameFinished
	}

	humanOutcome, err := session.HumanMove(column)
	if err != nil {
		return MoveOutcome{}, nil, err
	}
	m.recordMove(session, humanOutcome)

	if humanOutcome.Status != domain.StatusActive {
		m.finishGame(session)
		return humanOutcome, nil, nil
	}

	botOutcome, err := m.playBotTurn(session)
	if err != nil {
		return humanOutcome, nil, err
	}
	return humanOutcome, &botOutcome, nil
}

// Suggest returns a hint column for the human.
func (m *Manager) Suggest(gameID string) (int, error) {
	session, ok := m.Get(gameID)
	if !ok {
		return -1, domain.ErrGameFinished
	}
	return session.Suggest()
}

// playBotTurn runs the engine move, persists it, and finishes the game if
// it ended.
func (m *Manager) playBotTurn(session *Session) (MoveOutcome, error) {
	outcome, err := session.BotMove()
	if err != nil {
		return MoveOutcome{}, err
	}
	log.Printf("[SESSION] Game %s: bot played column %d (%d nodes, %v)",
		session.GameID, outcome.Column, outcome.Nodes, outcome.Elapsed)
	m.recordMove(session, outcome)

	if outcome.Status != domain.StatusActive {
		m.finishGame(session)
	}
	return outcome, nil
}

func (m *Manager) recordMove(session *Session, outcome MoveOutcome) {
	rec := postgres.MoveRecord{
		GameID:      session.GameID,
		Mover:       outcome.Player.String(),
		Column:      outcome.Column,
		Row:         outcome.Row,
		Suggested:   outcome.Suggested,
		ThinkTimeMS: outcome.Elapsed.Milliseconds(),
		Nodes:       int64(outcome.Nodes),
		PlayedAt:    time.Now(),
	}
	if err := m.repo.RecordMove(rec); err != nil {
		log.Printf("[SESSION] Failed to persist move in game %s: %v", session.GameID, err)
	}
}

// finishGame persists the final record, drops the session, and adjusts
// the adaptive difficulty from recent outcomes.
func (m *Manager) finishGame(session *Session) {
	state := session.Snapshot()

	winner := state.Winner
	if winner == "" {
		winner = "ABANDONED"
	}

	avgBotMoveMS := 0.0
	if state.Stats.BotMoves > 0 {
		avgBotMoveMS = float64(state.Stats.TotalBotTime.Milliseconds()) / float64(state.Stats.BotMoves)
	}
	now := time.Now()
	rec := postgres.GameRecord{
		GameID:          session.GameID,
		Winner:          winner,
		GameSeconds:     now.Sub(session.CreatedAt).Seconds(),
		HumanMoves:      state.Stats.HumanMoves,
		BotMoves:        state.Stats.BotMoves,
		SuggestionsUsed: state.Stats.SuggestionsUsed,
		TotalBotTimeMS:  state.Stats.TotalBotTime.Milliseconds(),
		NodesExplored:   state.Stats.NodesExplored,
		AvgBotMoveMS:    avgBotMoveMS,
		FinishedAt:      &now,
	}
	if err := m.repo.FinishGame(rec); err != nil {
		log.Printf("[SESSION] Failed to persist finished game %s: %v", session.GameID, err)
	}

	m.mu.Lock()
	delete(m.sessions, session.GameID)
	m.mu.Unlock()

	log.Printf("[SESSION] Game %s finished: %s", session.GameID, winner)

	if m.cache != nil {
		if err := m.cache.PushWinner(context.Background(), winner); err != nil {
			log.Printf("[SESSION] Failed to cache winner for game %s: %v", session.GameID, err)
		}
	}

	m.adjustDifficulty()
}

// adjustDifficulty reads the recent outcomes (cache first, database as
// fallback) and moves the default difficulty with the human's win rate.
func (m *Manager) adjustDifficulty() {
	var winners []string
	var err error

	if m.cache != nil {
		winners, err = m.cache.RecentWinners(context.Background(), AdjustmentWindow)
		if err != nil {
			log.Printf("[SESSION] Winner cache unavailable: %v", err)
			winners = nil
		}
	}
	if winners == nil {
		winners, err = m.repo.RecentWinners(AdjustmentWindow)
		if err != nil {
			log.Printf("[SESSION] Could not load recent winners, keeping difficulty: %v", err)
			return
		}
	}

	m.dmu.Lock()
	defer m.dmu.Unlock()
	next := AdjustDifficulty(m.difficulty, winners)
	if next != m.difficulty {
		log.Printf("[SESSION] Difficulty adjusted %d -> %d", m.difficulty, next)
		m.difficulty = next
	}
}

// AbandonInactive finishes every active session idle for longer than
// timeout. Returns how many were abandoned.
func (m *Manager) AbandonInactive(timeout time.Duration) int {
	cutoff := time.Now().Add(-timeout)

	m.mu.RLock()
	stale := make([]*Session, 0)
	for _, session := range m.sessions {
		if session.idleSince().Before(cutoff) {
			stale = append(stale, session)
		}
	}
	m.mu.RUnlock()

	abandoned := 0
	for _, session := range stale {
		if session.abandon() {
			m.finishGame(session)
			abandoned++
		}
	}
	return abandoned
}

// ActiveGames returns the number of sessions currently in play.
func (m *Manager) ActiveGames() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
