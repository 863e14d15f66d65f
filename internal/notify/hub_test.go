package notify

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type fakeConn struct {
	mu     sync.Mutex
	events []Event
}

func (c *fakeConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, v.(Event))
	return nil
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) got() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

// delivery runs through a per-connection goroutine, so tests poll
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestNotifyUserTargetsOnlyThatUser(t *testing.T) {
	h := NewHub(zap.NewNop())
	c1, c2 := &fakeConn{}, &fakeConn{}
	cl1 := h.join("user-1", false, c1)
	cl2 := h.join("user-2", false, c2)
	defer h.leave(cl1)
	defer h.leave(cl2)

	h.NotifyUser("user-1", "your appointment has been confirmed")

	waitFor(t, func() bool { return len(c1.got()) == 1 })
	ev := c1.got()[0]
	if ev.Event != EventStatusUpdate {
		t.Errorf("expected %s event, got %s", EventStatusUpdate, ev.Event)
	}
	if !strings.Contains(ev.Message, "confirmed") {
		t.Errorf("unexpected message: %q", ev.Message)
	}
	if len(c2.got()) != 0 {
		t.Error("message leaked to another user")
	}
}

func TestNotifyAdminsBroadcast(t *testing.T) {
	h := NewHub(zap.NewNop())
	admin1, admin2, user := &fakeConn{}, &fakeConn{}, &fakeConn{}
	a1 := h.join("admin-1", true, admin1)
	a2 := h.join("admin-2", true, admin2)
	u := h.join("user-1", false, user)
	defer h.leave(a1)
	defer h.leave(a2)
	defer h.leave(u)

	h.NotifyAdmins("new appointment request")

	waitFor(t, func() bool { return len(admin1.got()) == 1 && len(admin2.got()) == 1 })
	for _, c := range []*fakeConn{admin1, admin2} {
		ev := c.got()[0]
		if ev.Event != EventAdminNotification {
			t.Errorf("expected %s event, got %s", EventAdminNotification, ev.Event)
		}
	}
	if len(user.got()) != 0 {
		t.Error("admin broadcast reached a non-admin")
	}
}

func TestNotifyAbsentUserIsDropped(t *testing.T) {
	h := NewHub(zap.NewNop())
	c := &fakeConn{}
	cl := h.join("user-1", false, c)
	defer h.leave(cl)

	// nobody named user-2 is connected; the message is simply dropped
	h.NotifyUser("user-2", "hello?")

	time.Sleep(50 * time.Millisecond)
	if len(c.got()) != 0 {
		t.Error("message delivered to the wrong user")
	}
}

func TestPerConnectionOrder(t *testing.T) {
	h := NewHub(zap.NewNop())
	c := &fakeConn{}
	cl := h.join("user-1", false, c)
	defer h.leave(cl)

	msgs := []string{"one", "two", "three", "four", "five"}
	for _, m := range msgs {
		h.NotifyUser("user-1", m)
	}

	waitFor(t, func() bool { return len(c.got()) == len(msgs) })
	for i, ev := range c.got() {
		if ev.Message != msgs[i] {
			t.Errorf("out of order at %d: got %q, want %q", i, ev.Message, msgs[i])
		}
	}
}

func TestLeaveStopsDelivery(t *testing.T) {
	h := NewHub(zap.NewNop())
	c := &fakeConn{}
	cl := h.join("user-1", false, c)

	h.NotifyUser("user-1", "before")
	waitFor(t, func() bool { return len(c.got()) == 1 })

	h.leave(cl)
	h.NotifyUser("user-1", "after")

	time.Sleep(50 * time.Millisecond)
	if got := c.got(); len(got) != 1 {
		t.Errorf("delivery after leave: %v", got)
	}
}

func TestAdminLeaveRemovesFromBroadcast(t *testing.T) {
	h := NewHub(zap.NewNop())
	c := &fakeConn{}
	cl := h.join("admin-1", true, c)
	h.leave(cl)

	h.NotifyAdmins("anyone there?")

	time.Sleep(50 * time.Millisecond)
	if len(c.got()) != 0 {
		t.Error("departed admin still receives broadcasts")
	}
}

// ----- end-to-end over a real socket -----

func (h *Hub) connected(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.users[userID]) > 0
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return ws
}

func TestServeWSDelivery(t *testing.T) {
	h := NewHub(zap.NewNop())
	srv := httptest.NewServer(h.ServeWS("*"))
	defer srv.Close()

	ws := dialWS(t, srv)
	defer ws.Close()

	if err := ws.WriteJSON(joinMessage{UserID: "user-1", Role: "user"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	waitFor(t, func() bool { return h.connected("user-1") })

	h.NotifyUser("user-1", "your appointment on March 3, 2027 at 10:00 AM - 10:30 AM has been confirmed.")

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	if err := ws.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.Event != EventStatusUpdate {
		t.Errorf("event: got %s", ev.Event)
	}
	if !strings.Contains(ev.Message, "10:00 AM - 10:30 AM") {
		t.Errorf("message missing slot: %q", ev.Message)
	}
}

func TestServeWSAdminJoinsBroadcastGroup(t *testing.T) {
	h := NewHub(zap.NewNop())
	srv := httptest.NewServer(h.ServeWS("*"))
	defer srv.Close()

	ws := dialWS(t, srv)
	defer ws.Close()

	if err := ws.WriteJSON(joinMessage{UserID: "admin-1", Role: "admin"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	waitFor(t, func() bool { return h.connected("admin-1") })

	h.NotifyAdmins("new appointment request on March 3, 2027 at 2:00 PM - 2:30 PM")

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	if err := ws.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.Event != EventAdminNotification {
		t.Errorf("event: got %s", ev.Event)
	}
}

func TestServeWSRejectsIncompleteJoin(t *testing.T) {
	h := NewHub(zap.NewNop())
	srv := httptest.NewServer(h.ServeWS("*"))
	defer srv.Close()

	ws := dialWS(t, srv)
	defer ws.Close()

	if err := ws.WriteJSON(joinMessage{UserID: "", Role: "user"}); err != nil {
		t.Fatalf("join: %v", err)
	}

	// server closes the connection without registering
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := ws.ReadMessage(); err == nil {
		t.Error("expected connection to be closed")
	}
	if h.connected("") {
		t.Error("empty identity registered")
	}
}

func TestServeWSDisconnectLeavesRegistry(t *testing.T) {
	h := NewHub(zap.NewNop())
	srv := httptest.NewServer(h.ServeWS("*"))
	defer srv.Close()

	ws := dialWS(t, srv)
	if err := ws.WriteJSON(joinMessage{UserID: "user-9", Role: "user"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	waitFor(t, func() bool { return h.connected("user-9") })

	ws.Close()
	waitFor(t, func() bool { return !h.connected("user-9") })
}
