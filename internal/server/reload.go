package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/go-spring-projects/website/internal/log"
)

// ReloadMessage is sent to every browser after a rebuild.
const ReloadMessage = "reload"

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dev server only listens for local browsers.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks live reload clients.
type Hub struct {
	mu     sync.Mutex
	conns  map[*websocket.Conn]bool
	closed bool
	logger zerolog.Logger
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		conns:  make(map[*websocket.Conn]bool),
		logger: log.WithComponent("livereload"),
	}
}

// ServeHTTP upgrades the request and keeps the connection until the
// browser goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	if !h.register(conn) {
		conn.Close()
		return
	}
	defer h.unregister(conn)

	// Clients never send anything; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) register(conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.conns[conn] = true
	h.logger.Debug().Int("clients", len(h.conns)).Msg("client connected")
	return true
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[conn] {
		delete(h.conns, conn)
		conn.Close()
	}
}

// Clients returns the number of connected browsers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Broadcast tells every connected browser to reload.
func (h *Hub) Broadcast() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(ReloadMessage)); err != nil {
			h.logger.Debug().Err(err).Msg("dropping client")
			delete(h.conns, conn)
			conn.Close()
		}
	}
	h.logger.Info().Int("clients", len(h.conns)).Msg("reload sent")
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for conn := range h.conns {
		conn.Close()
		delete(h.conns, conn)
	}
}
