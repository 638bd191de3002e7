// Package ipc carries commands from maze-ctl to the running daemon over a
// unix socket: one JSON request and one JSON response per connection.
package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"os"
	"time"
)

const DefaultSocket = "/tmp/maze.sock"

const (
	CmdSay  = "say"
	CmdPing = "ping"
)

type Request struct {
	Cmd  string `json:"cmd"`
	Text string `json:"text,omitempty"`
}

type Response struct {
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

// Handler answers one request.
type Handler func(ctx context.Context, req Request) Response

type Server struct {
	path    string
	ln      net.Listener
	handler Handler
	timeout time.Duration
}

// Listen binds path, replacing a stale socket file.
func Listen(path string, handler Handler) (*Server, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}

	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}

	return &Server{path: path, ln: ln, handler: handler, timeout: 30 * time.Second}, nil
}

// Serve accepts connections until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.ln.Close()
	}()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Warn("Failed to accept ipc connection", "err", err)
			continue
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) Close() error {
	err := s.ln.Close()
	_ = os.Remove(s.path)
	return err
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(s.timeout))

	var req Request
	if err := json.NewDecoder(conn).Decode(&req); err != nil {
		log.Warn("Bad ipc request", "err", err)
		return
	}

	var resp Response
	switch req.Cmd {
	case CmdPing:
		resp = Response{Reply: "pong"}
	case CmdSay:
		resp = s.handler(ctx, req)
	default:
		resp = Response{Error: fmt.Sprintf("unknown command %q", req.Cmd)}
	}

	if err := json.NewEncoder(conn).Encode(resp); err != nil {
		log.Warn("Failed to write ipc response", "err", err)
	}
}

// Send delivers req to the daemon at path and waits for its response.
func Send(ctx context.Context, path string, req Request) (Response, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", path)
	if err != nil {
		return Response{}, err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return Response{}, fmt.Errorf("send: %w", err)
	}

	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}
	if resp.Error != "" {
		return resp, errors.New(resp.Error)
	}
	return resp, nil
}
