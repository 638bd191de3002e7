// Package bus joins a websocket message bus as the "maze" shard. Commands
// addressed to the shard are answered on the same connection; replies carry
// voice hints for whichever shard speaks them.
package bus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	log "log/slog"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
)

const Shard = "maze"

const (
	KindCommand = "command"
	KindReply   = "reply"
)

type Message struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Kind    string  `json:"kind"`
	Content string  `json:"content"`
	Rate    int     `json:"rate,omitempty"`
	Volume  float64 `json:"volume,omitempty"`
}

type Responder interface {
	Respond(ctx context.Context, cmd string) string
}

type Config struct {
	URL    string
	Reconn time.Duration // delay between dial attempts, <=0 => 1s
	Rate   int
	Volume float64
}

type Client struct {
	cfg Config
	a   Responder

	mu   sync.Mutex
	conn *ws.Conn
}

func New(cfg Config, a Responder) *Client {
	if cfg.Reconn <= 0 {
		cfg.Reconn = time.Second
	}
	return &Client{cfg: cfg, a: a}
}

// Run reads the bus until ctx is done, redialing after every lost
// connection.
func (c *Client) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		c.mu.Lock()
		if c.conn != nil {
			c.conn.Close()
		}
		c.mu.Unlock()
	})
	defer stop()

	for {
		if err := c.dial(ctx); err != nil {
			return nil
		}
		log.Info("Connected to bus", "url", c.cfg.URL)

		err := c.serve(ctx)
		c.closeConn()
		if ctx.Err() != nil {
			return nil
		}
		if isClosed(err) {
			log.Info("Bus closed the connection", "err", err)
		} else {
			log.Warn("Bus read failed", "err", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.cfg.Reconn):
		}
	}
}

// dial retries until connected; it fails only when ctx ends.
func (c *Client) dial(ctx context.Context) error {
	for {
		conn, _, err := ws.DefaultDialer.DialContext(ctx, c.cfg.URL, nil)
		if err == nil {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
			if ctx.Err() != nil {
				c.closeConn()
				return ctx.Err()
			}
			return nil
		}
		log.Debug("Bus dial failed", "url", c.cfg.URL, "err", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.cfg.Reconn):
		}
	}
}

func (c *Client) closeConn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *Client) serve(ctx context.Context) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return errors.New("no connection")
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			log.Warn("Bad bus message", "err", err)
			continue
		}
		if m.To != Shard || m.Kind != KindCommand {
			continue
		}
		log.Debug("Bus command", "from", m.From, "content", m.Content)

		reply := Message{
			From:    Shard,
			To:      m.From,
			Kind:    KindReply,
			Content: c.a.Respond(ctx, m.Content),
			Rate:    c.cfg.Rate,
			Volume:  c.cfg.Volume,
		}
		if err := write(conn, reply); err != nil {
			return err
		}
	}
}

func write(conn *ws.Conn, m Message) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode bus message: %w", err)
	}
	return conn.WriteMessage(ws.TextMessage, data)
}

func isClosed(err error) bool {
	return ws.IsCloseError(err,
		ws.CloseNormalClosure,
		ws.CloseGoingAway,
		ws.CloseAbnormalClosure)
}
