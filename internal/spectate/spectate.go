// Package spectate broadcasts per-turn snapshots to connected viewers
// over WebSocket. It is downstream of a turn: MainDriver calls Broadcast
// after StateSyncer.Turn returns. Broadcast writes synchronously on the
// caller's goroutine with no write deadline, so a spectator that stops
// reading can delay the turn loop; with no spectators connected it costs
// only the JSON encoding.
package spectate

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"arenahost/internal/worldstate"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans a turn snapshot out to every connected spectator. New
// connections are throttled per remote IP so one misbehaving viewer
// cannot flood the handshake path.
type Hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}

	limiters sync.Map // map[string]*rate.Limiter, keyed by remote IP
}

// NewHub builds an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

// allow caps new connection attempts at 2/s with a burst of 5 per IP.
func (h *Hub) allow(ip string) bool {
	actual, _ := h.limiters.LoadOrStore(ip, rate.NewLimiter(2, 5))
	return actual.(*rate.Limiter).Allow()
}

// HandleWebSocket upgrades the request and registers the connection until
// it closes or writes start failing.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if !h.allow(ip) {
		http.Error(w, "too many connection attempts", http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("spectate: upgrade failed: %v", err)
		return
	}
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	// Drain and discard anything the client sends; this is a
	// broadcast-only channel. Returning from this goroutine on any read
	// error unregisters the connection.
	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// turnMessage is the wire shape sent to spectators each turn.
type turnMessage struct {
	Turn       int                        `json:"turn"`
	P1Snapshot *worldstate.TransferState `json:"p1_snapshot"`
	P2Snapshot *worldstate.TransferState `json:"p2_snapshot"`
}

// Broadcast pushes one turn's snapshots to every connected spectator, one
// connection after another, dropping any connection whose write fails.
// Writes carry no deadline: a slow reader delays the rest of the fan-out
// and the caller until its write completes or fails.
func (h *Hub) Broadcast(turn int, p1, p2 *worldstate.TransferState) {
	body, err := json.Marshal(turnMessage{Turn: turn, P1Snapshot: p1, P2Snapshot: p2})
	if err != nil {
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, body); err != nil {
			h.remove(c)
		}
	}
}

// ClientCount reports the number of connected spectators.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// NewServeMux builds a minimal HTTP server exposing /spectate.
func NewServeMux(h *Hub) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/spectate", h.HandleWebSocket)
	return mux
}
