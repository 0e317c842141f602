// Package notify tells open dashboards to redraw. Each successful state
// change is pushed as a small JSON event over a WebSocket; clients re-fetch
// whatever they display.
package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"DeliveryDashboard/internal/dashboard"
)

const (
	EventCatalogChanged  = "catalog.changed"
	EventSessionChanged  = "session.changed"
	EventSettingsChanged = "settings.changed"

	pingInterval = 30 * time.Second
	readDeadline = 90 * time.Second
	writeTimeout = 5 * time.Second
	sendBuffer   = 16
)

type Event struct {
	Type  string `json:"type"`
	Op    string `json:"op"`
	ID    int    `json:"id,omitempty"`
	Admin *bool  `json:"admin,omitempty"`
}

var upgrader = websocket.Upgrader{
	HandshakeTimeout: 10 * time.Second,
	ReadBufferSize:   1024,
	WriteBufferSize:  1024,
	// the dashboard is served from arbitrary origins; events carry no data
	CheckOrigin: func(r *http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	done    chan struct{}
	closed  bool
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		done:    make(chan struct{}),
		log:     log,
	}
}

// Render implements dashboard.Renderer. Read-only commands are not broadcast.
func (h *Hub) Render(ctx context.Context, cmd dashboard.Command, res dashboard.Result) {
	ev, ok := eventFor(cmd, res)
	if !ok {
		return
	}
	h.Broadcast(ev)
}

func eventFor(cmd dashboard.Command, res dashboard.Result) (Event, bool) {
	op := dashboard.Name(cmd)

	switch cmd.(type) {
	case dashboard.CreateRestaurant, dashboard.UpdateRestaurant:
		ev := Event{Type: EventCatalogChanged, Op: op}
		if res.Restaurant != nil {
			ev.ID = res.Restaurant.ID
		}
		return ev, true
	case dashboard.DeleteRestaurant:
		return Event{Type: EventCatalogChanged, Op: op, ID: res.DeletedID}, true
	case dashboard.Refresh:
		return Event{Type: EventCatalogChanged, Op: op}, true
	case dashboard.Login, dashboard.Logout:
		admin := res.Admin
		return Event{Type: EventSessionChanged, Op: op, Admin: &admin}, true
	default:
		return Event{}, false
	}
}

// Broadcast queues ev for every client. A client whose queue is full is
// disconnected instead of holding up the caller.
func (h *Hub) Broadcast(ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("encode event failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			delete(h.clients, c)
			_ = c.conn.Close()
			h.log.Warn("dropped slow dashboard client", zap.String("remote", c.conn.RemoteAddr().String()))
		}
	}
}

// Notify broadcasts a bare event for changes made outside the dispatcher.
func (h *Hub) Notify(eventType, op string) {
	h.Broadcast(Event{Type: eventType, Op: op})
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	close(h.done)

	for c := range h.clients {
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second),
		)
		_ = c.conn.Close()
	}
	h.clients = make(map[*client]struct{})
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.add(c) {
		_ = conn.Close()
		return
	}
	defer func() {
		h.remove(c)
		_ = conn.Close()
	}()

	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	readErr := make(chan error, 1)
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				readErr <- err
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case msg := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		case err := <-readErr:
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseNoStatusReceived,
			) {
				h.log.Debug("ws: unexpected close", zap.Error(err))
			}
			return
		}
	}
}
