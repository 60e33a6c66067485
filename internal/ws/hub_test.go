package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// wsPair dials the test server and hands back the client side plus the
// upgraded server side for the hub to manage.
type wsPair struct {
	client *websocket.Conn
	server *websocket.Conn
}

func newWSPair(t *testing.T, upgraded chan *websocket.Conn, url string) wsPair {
	t.Helper()
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	select {
	case server := <-upgraded:
		return wsPair{client: client, server: server}
	case <-time.After(2 * time.Second):
		t.Fatalf("server side never upgraded")
		return wsPair{}
	}
}

func newHubServer(t *testing.T, hub *Hub) (string, chan *websocket.Conn, func()) {
	t.Helper()
	upgraded := make(chan *websocket.Conn, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := hub.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		upgraded <- conn
	}))
	return "ws" + strings.TrimPrefix(srv.URL, "http"), upgraded, srv.Close
}

// A reconnect replaces the old connection, and the replaced connection's
// teardown may call back into the hub (the live-sync unsubscribe pushes its
// close through here) without freezing Register.
func TestRegisterReplacementTeardownMayUseHub(t *testing.T) {
	hub := NewHub(nil)
	url, upgraded, stop := newHubServer(t, hub)
	defer stop()

	key := Key("uid-1", "stock")

	first := newWSPair(t, upgraded, url)
	defer first.client.Close()

	oldClosed := make(chan struct{})
	hub.Register(key, first.server, func() {
		hub.Push(key, []string{"from-teardown"})
		close(oldClosed)
	})

	second := newWSPair(t, upgraded, url)
	defer second.client.Close()

	registered := make(chan struct{})
	go func() {
		hub.Register(key, second.server, func() {})
		close(registered)
	}()

	select {
	case <-registered:
	case <-time.After(2 * time.Second):
		t.Fatalf("register blocked on the old connection's teardown")
	}
	select {
	case <-oldClosed:
	case <-time.After(2 * time.Second):
		t.Fatalf("replaced connection's teardown never ran")
	}
}

func TestPushReachesReplacementConn(t *testing.T) {
	hub := NewHub(nil)
	url, upgraded, stop := newHubServer(t, hub)
	defer stop()

	key := Key("uid-1", "transactions")

	first := newWSPair(t, upgraded, url)
	defer first.client.Close()
	hub.Register(key, first.server, func() {})

	second := newWSPair(t, upgraded, url)
	defer second.client.Close()
	hub.Register(key, second.server, func() {})

	hub.Push(key, map[string]string{"status": "ok"})

	second.client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := second.client.ReadMessage()
	if err != nil {
		t.Fatalf("read push: %v", err)
	}
	if !strings.Contains(string(msg), `"status":"ok"`) {
		t.Fatalf("unexpected push payload %q", msg)
	}
}
