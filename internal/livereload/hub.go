// Package livereload pushes reload notifications to open browser tabs over
// a websocket while content files are edited in development.
package livereload

import (
	"context"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Message is the text frame sent to clients when they should reload.
const Message = "reload"

// Hub tracks connected clients and fans reload events out to them.
type Hub struct {
	logger *zap.Logger

	mu      sync.Mutex
	clients map[string]chan struct{}
	closed  bool
	done    chan struct{}
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger:  logger,
		clients: make(map[string]chan struct{}),
		done:    make(chan struct{}),
	}
}

// ServeHTTP upgrades the request and holds the connection until the
// client goes away or the hub is closed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Debug("live reload upgrade failed", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	id, notify, ok := h.register()
	if !ok {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}
	defer h.unregister(id)

	h.logger.Debug("live reload client connected", zap.String("client", id))

	// Client frames are ignored; CloseRead cancels ctx when the peer leaves.
	ctx := conn.CloseRead(r.Context())

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("live reload client disconnected", zap.String("client", id))
			return
		case <-h.done:
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		case <-notify:
			if err := conn.Write(ctx, websocket.MessageText, []byte(Message)); err != nil {
				h.logger.Debug("live reload write failed", zap.String("client", id), zap.Error(err))
				return
			}
		}
	}
}

// Broadcast asks every connected client to reload. Clients with a reload
// already pending are not notified twice.
func (h *Hub) Broadcast() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, notify := range h.clients {
		select {
		case notify <- struct{}{}:
		default:
		}
	}
	h.logger.Info("live reload broadcast", zap.Int("clients", len(h.clients)))
}

// Clients reports the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	close(h.done)
}

// Run closes the hub when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	select {
	case <-ctx.Done():
		h.Close()
	case <-h.done:
	}
}

func (h *Hub) register() (string, chan struct{}, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return "", nil, false
	}
	id := uuid.NewString()
	notify := make(chan struct{}, 1)
	h.clients[id] = notify
	return id, notify, true
}

func (h *Hub) unregister(id string) {
	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
}
