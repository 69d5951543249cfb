package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

type client struct {
	conn *websocket.Conn

	// gorilla connections allow one concurrent writer
	writeMu sync.Mutex
}

// ConnectionManager keeps one live socket per player.
type ConnectionManager struct {
	mu      sync.RWMutex
	clients map[string]*client
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		clients: make(map[string]*client),
	}
}

// Add registers conn for the player and closes the socket it replaces.
func (that *ConnectionManager) Add(playerID string, conn *websocket.Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if old, ok := that.clients[playerID]; ok {
		old.conn.Close()
	}

	that.clients[playerID] = &client{conn: conn}
}

// RemoveIfMatching drops the player only while conn is still its current socket.
func (that *ConnectionManager) RemoveIfMatching(playerID string, conn *websocket.Conn) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	current, ok := that.clients[playerID]
	if !ok || current.conn != conn {
		return false
	}

	current.conn.Close()
	delete(that.clients, playerID)

	return true
}

// Send writes msg to the player. An offline player is not an error.
func (that *ConnectionManager) Send(playerID string, msg Message) error {
	that.mu.RLock()
	c, ok := that.clients[playerID]
	that.mu.RUnlock()

	if !ok {
		return nil
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return c.conn.WriteJSON(msg)
}

func (that *ConnectionManager) Broadcast(msg Message) {
	for _, playerID := range that.PlayerIDs() {
		_ = that.Send(playerID, msg)
	}
}

func (that *ConnectionManager) PlayerIDs() []string {
	that.mu.RLock()
	defer that.mu.RUnlock()

	ids := make([]string, 0, len(that.clients))
	for id := range that.clients {
		ids = append(ids, id)
	}

	return ids
}

func (that *ConnectionManager) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.clients)
}

func (that *ConnectionManager) CloseAll() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for id, c := range that.clients {
		c.conn.Close()
		delete(that.clients, id)
	}
}
