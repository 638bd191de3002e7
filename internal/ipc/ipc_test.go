package ipc

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func startServer(t *testing.T, h Handler) string {
	t.Helper()

	// unix socket paths are length-limited; keep it short
	dir, err := os.MkdirTemp("", "maze")
	if err != nil {
		t.Fatalf("tempdir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, "s.sock")

	srv, err := Listen(path, h)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Serve: %v", err)
		}
		srv.Close()
	})
	return path
}

func TestSayRoundTrip(t *testing.T) {
	path := startServer(t, func(_ context.Context, req Request) Response {
		return Response{Reply: "heard " + req.Text}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	resp, err := Send(ctx, path, Request{Cmd: CmdSay, Text: "open notepad"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if resp.Reply != "heard open notepad" {
		t.Fatalf("reply %q", resp.Reply)
	}

	resp, err = Send(ctx, path, Request{Cmd: CmdPing})
	if err != nil || resp.Reply != "pong" {
		t.Fatalf("ping: %+v %v", resp, err)
	}
}

func TestUnknownCommand(t *testing.T) {
	path := startServer(t, func(context.Context, Request) Response { return Response{} })

	_, err := Send(context.Background(), path, Request{Cmd: "trigger"})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("err=%v", err)
	}
}

func TestListenReplacesStaleSocket(t *testing.T) {
	dir, err := os.MkdirTemp("", "maze")
	if err != nil {
		t.Fatalf("tempdir: %v", err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "s.sock")
	if err := os.WriteFile(path, []byte("stale"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	srv, err := Listen(path, nil)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	srv.Close()
}

func TestSendWithoutDaemon(t *testing.T) {
	if _, err := Send(context.Background(), filepath.Join(t.TempDir(), "none.sock"), Request{Cmd: CmdPing}); err == nil {
		t.Fatalf("expected dial error")
	}
}
