package http

import (
	"net/http"
	"time"

	"github.com/Gabo-araya/connect4-IA-agent/internal/config"
	"github.com/Gabo-araya/connect4-IA-agent/internal/domain"
	"github.com/Gabo-araya/connect4-IA-agent/internal/service/game"
	"github.com/Gabo-araya/connect4-IA-agent/pkg/auth"
	"github.com/Gabo-araya/connect4-IA-agent/pkg/uid"
	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	Manager *game.Manager
}

func NewGameHandler(manager *game.Manager) *GameHandler {
	return &GameHandler{Manager: manager}
}

type createGameRequest struct {
	Rows          int    `json:"rows"`
	Columns       int    `json:"columns"`
	Difficulty    int    `json:"difficulty"`
	InitialPlayer string `json:"initial_player"`
}

// CreateGame starts a new game and hands back the state plus the token
// that authorizes moves on it. When the bot opens, its first move is
// already on the returned board.
func (h *GameHandler) CreateGame(c *gin.Context) {
	cfg := config.AppConfig

	req := createGameRequest{
		Rows:          cfg.DefaultRows,
		Columns:       cfg.DefaultColumns,
		InitialPlayer: "HUMAN",
	}
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	initialPlayer := domain.Human
	switch req.InitialPlayer {
	case "", "HUMAN":
	case "BOT":
		initialPlayer = domain.Bot
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "initial_player must be HUMAN or BOT"})
		return
	}

	gameID := uid.GenerateGameID()
	session, err := h.Manager.CreateGame(gameID, req.Rows, req.Columns, req.Difficulty, initialPlayer)
	if err != nil {
		if err == domain.ErrInvalidDimensions {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}

	token, err := auth.GenerateGameToken(gameID, cfg.JWTSecret, time.Duration(cfg.GameTokenTTLHours)*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue game token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"game":  session.Snapshot(),
	})
}

// GetGame returns the current state of a game.
func (h *GameHandler) GetGame(c *gin.Context) {
	session, ok := h.Manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

type moveRequest struct {
	Column *int `json:"column"`
}

// PostMove applies the human move and returns it together with the bot's
// reply (absent when the human move ended the game) and the new state.
func (h *GameHandler) PostMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Column == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body must carry a column"})
		return
	}

	gameID := c.Param("id")
	humanOutcome, botOutcome, err := h.Manager.HumanMove(gameID, *req.Column)
	if err != nil {
		status, msg := moveErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	session, _ := h.Manager.Get(gameID)
	resp := gin.H{"human_move": moveJSON(humanOutcome)}
	if botOutcome != nil {
		resp["bot_move"] = moveJSON(*botOutcome)
	}
	if session != nil {
		resp["game"] = session.Snapshot()
	} else {
		// the game finished and left the session table; report the
		// terminal outcome from the moves themselves
		final := humanOutcome
		if botOutcome != nil {
			final = *botOutcome
		}
		resp["status"] = final.Status
		if final.Winner != domain.Empty {
			resp["winner"] = final.Winner.String()
		}
	}

	c.JSON(http.StatusOK, resp)
}

// GetSuggestion runs the shallow hint search for the human.
func (h *GameHandler) GetSuggestion(c *gin.Context) {
	column, err := h.Manager.Suggest(c.Param("id"))
	if err != nil {
		status, msg := moveErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"column": column})
}

// GetEvaluation exposes the static heuristic score of the current board,
// from the bot's perspective.
func (h *GameHandler) GetEvaluation(c *gin.Context) {
	session, ok := h.Manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": session.EvaluateBoard()})
}

func moveJSON(o game.MoveOutcome) gin.H {
	out := gin.H{
		"player": o.Player.String(),
		"column": o.Column,
		"row":    o.Row,
		"status": o.Status,
	}
	if o.Winner != domain.Empty {
		out["winner"] = o.Winner.String()
	}
	if o.Player == domain.Bot {
		out["elapsed_ms"] = o.Elapsed.Milliseconds()
		out["nodes_explored"] = o.Nodes
	}
	return out
}

func moveErrorStatus(err error) (int, string) {
	switch err {
	case domain.ErrInvalidMove, domain.ErrColumnFull:
		return http.StatusBadRequest, err.Error()
	case domain.ErrNotYourTurn, domain.ErrGameFinished, domain.ErrNoLegalMove:
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}
