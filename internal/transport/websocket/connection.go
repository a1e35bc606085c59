package websocket

import (
	"sync"

	"github.com/gorilla/websocket"
)

// ConnectionManager tracks the single live connection per game,
// thread-safely.
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// writeMu ensures only one goroutine writes to a specific socket at
	// a time; conn.WriteJSON is not safe for concurrent use.
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex // protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

// AddConnection registers a connection for a game, closing any previous
// one (a reconnect replaces the old socket).
func (cm *ConnectionManager) AddConnection(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if oldConn, exists := cm.connections[gameID]; exists {
		oldConn.Close()
	}

	cm.connections[gameID] = conn
	cm.writeMu[gameID] = &sync.Mutex{}
}

// RemoveConnectionIfMatching drops the game's connection only when it is
// still the given one, so cleanup of an old socket never kills a fresh
// reconnect.
func (cm *ConnectionManager) RemoveConnectionIfMatching(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if currentConn, exists := cm.connections[gameID]; exists && currentConn == conn {
		currentConn.Close()
		delete(cm.connections, gameID)
		delete(cm.writeMu, gameID)
	}
}

// Send writes a JSON message to the game's connection, if any.
func (cm *ConnectionManager) Send(gameID string, message interface{}) error {
	cm.mu.RLock()
	conn, exists := cm.connections[gameID]
	lock := cm.writeMu[gameID]
	cm.mu.RUnlock()

	if !exists {
		return nil
	}

	lock.Lock()
	defer lock.Unlock()
	return conn.WriteJSON(message)
}
