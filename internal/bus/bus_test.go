package bus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
)

type echoResponder struct{}

func (echoResponder) Respond(_ context.Context, cmd string) string { return "done: " + cmd }

// hub upgrades every connection and hands it to the test.
func hub(t *testing.T) (string, <-chan *ws.Conn) {
	t.Helper()
	conns := make(chan *ws.Conn, 4)
	up := ws.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		conns <- conn
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http"), conns
}

func start(t *testing.T, url string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	c := New(Config{URL: url, Reconn: 10 * time.Millisecond, Rate: 175, Volume: 1}, echoResponder{})
	go func() { done <- c.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Run: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Errorf("Run did not stop")
		}
	})
}

func accept(t *testing.T, conns <-chan *ws.Conn) *ws.Conn {
	t.Helper()
	select {
	case conn := <-conns:
		return conn
	case <-time.After(2 * time.Second):
		t.Fatalf("client never connected")
		return nil
	}
}

func TestCommandGetsReply(t *testing.T) {
	url, conns := hub(t)
	start(t, url)
	conn := accept(t, conns)
	defer conn.Close()

	// ignored: wrong shard, wrong kind, not json
	_ = conn.WriteJSON(Message{From: "hub", To: "lights", Kind: KindCommand, Content: "on"})
	_ = conn.WriteJSON(Message{From: "hub", To: Shard, Kind: KindReply, Content: "x"})
	_ = conn.WriteMessage(ws.TextMessage, []byte("{"))
	if err := conn.WriteJSON(Message{From: "hub", To: Shard, Kind: KindCommand, Content: "what time is it"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Message
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	want := Message{From: Shard, To: "hub", Kind: KindReply, Content: "done: what time is it", Rate: 175, Volume: 1}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestRedialsAfterDrop(t *testing.T) {
	url, conns := hub(t)
	start(t, url)

	first := accept(t, conns)
	first.Close()

	second := accept(t, conns)
	defer second.Close()
	if err := second.WriteJSON(Message{From: "hub", To: Shard, Kind: KindCommand, Content: "ping"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = second.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Message
	if err := second.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Content != "done: ping" {
		t.Fatalf("content %q", got.Content)
	}
}

func TestRunStopsWhileDialing(t *testing.T) {
	var dials atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dials.Add(1)
		http.Error(w, "no", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	c := New(Config{URL: "ws" + strings.TrimPrefix(srv.URL, "http"), Reconn: 10 * time.Millisecond}, echoResponder{})
	if err := c.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if dials.Load() < 2 {
		t.Fatalf("expected retries, got %d dials", dials.Load())
	}
}

func TestRedialWaitsAfterDrop(t *testing.T) {
	var accepted atomic.Int32
	up := ws.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		accepted.Add(1)
		conn.Close()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	c := New(Config{URL: "ws" + strings.TrimPrefix(srv.URL, "http"), Reconn: 50 * time.Millisecond}, echoResponder{})
	if err := c.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := accepted.Load(); n < 2 || n > 6 {
		t.Fatalf("accepted %d connections in 200ms with a 50ms redial delay", n)
	}
}
