package notify

import (
	"sync"

	"go.uber.org/zap"
)

const (
	EventStatusUpdate      = "appointment_status"
	EventAdminNotification = "admin_notification"
)

// Event is the push payload written to connected clients.
type Event struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

// conn is the subset of *websocket.Conn the hub writes through.
type conn interface {
	WriteJSON(v any) error
	Close() error
}

type client struct {
	userID string
	admin  bool
	send   chan Event
	conn   conn
}

// one writer goroutine per connection keeps per-recipient order
func (c *client) writeLoop() {
	for ev := range c.send {
		if err := c.conn.WriteJSON(ev); err != nil {
			return
		}
	}
}

// push is non-blocking; a full buffer drops the event (best-effort,
// at-most-once delivery).
func (c *client) push(ev Event) {
	select {
	case c.send <- ev:
	default:
	}
}

// Hub is the connection registry: it maps user identities to their open
// connections and keeps the shared admin broadcast group. Join/leave are
// tied to the WebSocket lifecycle in ServeWS.
type Hub struct {
	mu     sync.Mutex
	users  map[string]map[*client]struct{}
	admins map[*client]struct{}
	log    *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		users:  make(map[string]map[*client]struct{}),
		admins: make(map[*client]struct{}),
		log:    log,
	}
}

func (h *Hub) join(userID string, admin bool, c conn) *client {
	cl := &client{userID: userID, admin: admin, send: make(chan Event, 16), conn: c}
	h.mu.Lock()
	if h.users[userID] == nil {
		h.users[userID] = make(map[*client]struct{})
	}
	h.users[userID][cl] = struct{}{}
	if admin {
		h.admins[cl] = struct{}{}
	}
	h.mu.Unlock()
	go cl.writeLoop()
	return cl
}

func (h *Hub) leave(cl *client) {
	h.mu.Lock()
	if set, ok := h.users[cl.userID]; ok {
		delete(set, cl)
		if len(set) == 0 {
			delete(h.users, cl.userID)
		}
	}
	delete(h.admins, cl)
	close(cl.send)
	h.mu.Unlock()
}

// NotifyUser pushes a status-update event to every connection of the
// given user. Users without a connection are skipped.
func (h *Hub) NotifyUser(userID, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.users[userID] {
		cl.push(Event{Event: EventStatusUpdate, Message: message})
	}
}

// NotifyAdmins broadcasts to the shared admin group.
func (h *Hub) NotifyAdmins(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.admins {
		cl.push(Event{Event: EventAdminNotification, Message: message})
	}
}
