package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Gabo-araya/connect4-IA-agent/internal/repository/postgres"
	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	GameRepo *postgres.GameRepo
}

func NewHistoryHandler(gameRepo *postgres.GameRepo) *HistoryHandler {
	return &HistoryHandler{GameRepo: gameRepo}
}

// GetHistory lists recently finished games with their statistics.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = parsed
	}

	games, err := h.GameRepo.ListRecentGames(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	type historyItem struct {
		ID              string     `json:"id"`
		InitialPlayer   string     `json:"initial_player"`
		Winner          string     `json:"winner"`
		Rows            int        `json:"rows"`
		Columns         int        `json:"columns"`
		Difficulty      int        `json:"difficulty"`
		GameSeconds     float64    `json:"game_seconds"`
		HumanMoves      int        `json:"human_moves"`
		BotMoves        int        `json:"bot_moves"`
		SuggestionsUsed int        `json:"suggestions_used"`
		TotalBotTimeMS  int64      `json:"total_bot_time_ms"`
		NodesExplored   int64      `json:"nodes_explored"`
		AvgBotMoveMS    float64    `json:"avg_bot_move_ms"`
		CreatedAt       time.Time  `json:"created_at"`
		FinishedAt      *time.Time `json:"finished_at"`
	}

	history := make([]historyItem, 0, len(games))
	for _, g := range games {
		history = append(history, historyItem{
			ID:              g.GameID,
			InitialPlayer:   g.InitialPlayer,
			Winner:          g.Winner,
			Rows:            g.Rows,
			Columns:         g.Columns,
			Difficulty:      g.Difficulty,
			GameSeconds:     g.GameSeconds,
			HumanMoves:      g.HumanMoves,
			BotMoves:        g.BotMoves,
			SuggestionsUsed: g.SuggestionsUsed,
			TotalBotTimeMS:  g.TotalBotTimeMS,
			NodesExplored:   g.NodesExplored,
			AvgBotMoveMS:    g.AvgBotMoveMS,
			CreatedAt:       g.CreatedAt,
			FinishedAt:      g.FinishedAt,
		})
	}

	c.JSON(http.StatusOK, history)
}

// GetGameDetails returns one persisted game and its move log.
func (h *HistoryHandler) GetGameDetails(c *gin.Context) {
	gameID := c.Param("id")

	gameRecord, err := h.GameRepo.GetGameByID(gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game"})
		return
	}
	if gameRecord == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	moves, err := h.GameRepo.GetMoves(gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch moves"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"game":  gameRecord,
		"moves": moves,
	})
}
