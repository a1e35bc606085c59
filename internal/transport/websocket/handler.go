package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/Gabo-araya/connect4-IA-agent/internal/config"
	"github.com/Gabo-araya/connect4-IA-agent/internal/domain"
	"github.com/Gabo-araya/connect4-IA-agent/internal/service/game"
	"github.com/Gabo-araya/connect4-IA-agent/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ClientMessage is what the browser sends over the live-play socket.
type ClientMessage struct {
	Type   string `json:"type"`   // "init", "move", "suggest", "state"
	Token  string `json:"token"`  // game token, init only
	Column int    `json:"column"` // move only
}

// ServerMessage is what the server pushes back.
type ServerMessage struct {
	Type      string      `json:"type"` // "state", "move", "suggestion", "error"
	Game      interface{} `json:"game,omitempty"`
	HumanMove interface{} `json:"human_move,omitempty"`
	BotMove   interface{} `json:"bot_move,omitempty"`
	Column    *int        `json:"column,omitempty"`
	Message   string      `json:"message,omitempty"`
}

// Handler manages live-play WebSocket connections.
type Handler struct {
	ConnManager *ConnectionManager
	Manager     *game.Manager
	Upgrader    websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, manager *game.Manager) *Handler {
	return &Handler{
		ConnManager: cm,
		Manager:     manager,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket upgrades the connection; gin route handler.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}
	h.handleConnection(conn)
}

func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))

	// keep-alive pinger
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
					return
				}
			}
		}
	}()
	defer close(done)

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// 1. Wait for init: the first message must carry a valid game token
	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Printf("[WS] Read error during init: %v", err)
		conn.Close()
		return
	}

	var initMsg ClientMessage
	if err := json.Unmarshal(data, &initMsg); err != nil || initMsg.Type != "init" || initMsg.Token == "" {
		log.Printf("[WS] Missing or malformed init message")
		conn.WriteJSON(ServerMessage{Type: "error", Message: "First message must be init with a game token"})
		conn.Close()
		return
	}

	claims, err := auth.ValidateGameToken(initMsg.Token, config.AppConfig.JWTSecret)
	if err != nil {
		log.Printf("[WS] Invalid token during init: %v", err)
		conn.WriteJSON(ServerMessage{Type: "error", Message: "Invalid or expired game token"})
		conn.Close()
		return
	}
	gameID := claims.GameID

	session, ok := h.Manager.Get(gameID)
	if !ok {
		conn.WriteJSON(ServerMessage{Type: "error", Message: "Game not found or already finished"})
		conn.Close()
		return
	}

	log.Printf("[WS] Connection initialized for game %s", gameID)
	h.ConnManager.AddConnection(gameID, conn)

	defer func() {
		log.Printf("[WS] Connection closed for game %s", gameID)
		h.ConnManager.RemoveConnectionIfMatching(gameID, conn)
	}()

	// current state straight away, so reconnects repaint the board
	h.ConnManager.Send(gameID, ServerMessage{Type: "state", Game: session.Snapshot()})

	// 2. Message loop
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.ConnManager.Send(gameID, ServerMessage{Type: "error", Message: "Invalid JSON"})
			continue
		}

		switch msg.Type {
		case "move":
			h.handleMove(gameID, msg.Column)
		case "suggest":
			h.handleSuggest(gameID)
		case "state":
			if session, ok := h.Manager.Get(gameID); ok {
				h.ConnManager.Send(gameID, ServerMessage{Type: "state", Game: session.Snapshot()})
			}
		default:
			h.ConnManager.Send(gameID, ServerMessage{Type: "error", Message: "Unknown message type"})
		}
	}
}

func (h *Handler) handleMove(gameID string, column int) {
	humanOutcome, botOutcome, err := h.Manager.HumanMove(gameID, column)
	if err != nil {
		h.ConnManager.Send(gameID, ServerMessage{Type: "error", Message: err.Error()})
		return
	}

	msg := ServerMessage{Type: "move", HumanMove: moveJSON(humanOutcome)}
	if botOutcome != nil {
		msg.BotMove = moveJSON(*botOutcome)
	}
	if session, ok := h.Manager.Get(gameID); ok {
		msg.Game = session.Snapshot()
		h.ConnManager.Send(gameID, msg)
		return
	}

	// the session is gone: the move ended the game
	h.ConnManager.Send(gameID, msg)
	final := humanOutcome
	if botOutcome != nil {
		final = *botOutcome
	}
	over := ServerMessage{Type: "game_over", Game: map[string]interface{}{
		"status": final.Status,
	}}
	if final.Winner != domain.Empty {
		over.Game = map[string]interface{}{
			"status": final.Status,
			"winner": final.Winner.String(),
		}
	}
	h.ConnManager.Send(gameID, over)
}

func (h *Handler) handleSuggest(gameID string) {
	column, err := h.Manager.Suggest(gameID)
	if err != nil {
		h.ConnManager.Send(gameID, ServerMessage{Type: "error", Message: err.Error()})
		return
	}
	h.ConnManager.Send(gameID, ServerMessage{Type: "suggestion", Column: &column})
}

func moveJSON(o game.MoveOutcome) map[string]interface{} {
	out := map[string]interface{}{
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
