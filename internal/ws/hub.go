package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 20 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Logger defines minimal logging interface required by the hub.
type Logger interface {
	Infof(string, ...interface{})
	Errorf(string, ...interface{})
}

// Key identifies one live sync connection: one owner, one collection.
func Key(userID, collection string) string {
	return userID + "|" + collection
}

// Hub manages the live sync websocket connections. One connection per key; a
// new connection for the same key replaces the old one.
type Hub struct {
	logger Logger

	Upgrader websocket.Upgrader

	mu      sync.RWMutex
	conns   map[string]*websocket.Conn
	locks   map[string]*sync.Mutex
	onClose map[string]func()
}

func NewHub(logger Logger) *Hub {
	return &Hub{
		logger: logger,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns:   make(map[string]*websocket.Conn),
		locks:   make(map[string]*sync.Mutex),
		onClose: make(map[string]func()),
	}
}

// Register adds the connection under the key and starts its keepalive and
// read loops. onClose runs exactly once when the connection goes away. The
// replaced connection's teardown runs outside the hub lock; it may call back
// into the hub.
func (h *Hub) Register(key string, conn *websocket.Conn, onClose func()) {
	h.mu.Lock()
	old := h.conns[key]
	oldOnClose := h.onClose[key]
	h.conns[key] = conn
	h.locks[key] = &sync.Mutex{}
	h.onClose[key] = onClose
	h.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	if oldOnClose != nil {
		oldOnClose()
	}

	if h.logger != nil {
		h.logger.Infof("sync %s connected", key)
	}

	go h.pingLoop(key, conn)
	go h.readLoop(key, conn)
}

// Push sends a payload to the connection registered under key.
func (h *Hub) Push(key string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		if h.logger != nil {
			h.logger.Errorf("sync %s marshal failed: %v", key, err)
		}
		return
	}
	h.safeWrite(key, func(conn *websocket.Conn) error {
		return conn.WriteMessage(websocket.TextMessage, data)
	})
}

// CloseOwner closes every connection belonging to the user. Called when the
// session is revoked.
func (h *Hub) CloseOwner(userID string) {
	prefix := userID + "|"

	h.mu.RLock()
	keys := make([]string, 0, len(h.conns))
	for key := range h.conns {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	h.mu.RUnlock()

	for _, key := range keys {
		h.mu.RLock()
		conn := h.conns[key]
		h.mu.RUnlock()
		if conn != nil {
			h.closeConn(key, conn)
		}
	}
}

func (h *Hub) pingLoop(key string, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for range ticker.C {
		h.mu.RLock()
		alive := h.conns[key] == conn
		h.mu.RUnlock()
		if !alive {
			return
		}
		h.safeWrite(key, func(c *websocket.Conn) error {
			return c.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
		})
	}
}

func (h *Hub) readLoop(key string, conn *websocket.Conn) {
	defer h.closeConn(key, conn)

	conn.SetReadLimit(16 << 10)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	conn.SetCloseHandler(func(code int, text string) error {
		if h.logger != nil {
			h.logger.Infof("sync %s closed ws (%d: %s)", key, code, text)
		}
		h.closeConn(key, conn)
		return nil
	})

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))
		if mt == websocket.TextMessage {
			trimmed := strings.TrimSpace(string(message))
			if strings.EqualFold(trimmed, "ping") {
				_ = conn.WriteMessage(websocket.TextMessage, []byte("pong"))
			}
		}
	}
}

func (h *Hub) closeConn(key string, conn *websocket.Conn) {
	_ = conn.Close()

	var onClose func()
	h.mu.Lock()
	if current, ok := h.conns[key]; ok && current == conn {
		onClose = h.onClose[key]
		delete(h.conns, key)
		delete(h.locks, key)
		delete(h.onClose, key)
	}
	h.mu.Unlock()

	if onClose != nil {
		onClose()
	}
}

func (h *Hub) safeWrite(key string, fn func(*websocket.Conn) error) {
	h.mu.RLock()
	conn := h.conns[key]
	mu := h.locks[key]
	h.mu.RUnlock()
	if conn == nil || mu == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := fn(conn); err != nil {
		if h.logger != nil {
			h.logger.Errorf("sync %s write failed: %v", key, err)
		}
		h.closeConn(key, conn)
	}
}
