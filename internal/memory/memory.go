// Package memory keeps the rolling conversation window sent to the remote
// model, optionally persisted between runs.
package memory

import (
	"context"
	"fmt"
	log "log/slog"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one role-tagged message.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Store persists a session's turns. Save replaces whatever was stored.
type Store interface {
	Load(ctx context.Context, session string) ([]Turn, error)
	Save(ctx context.Context, session string, turns []Turn) error
	Close() error
}

// Counter counts tokens of a text.
type Counter interface {
	CountText(text string) int
}

type Options struct {
	Session   string
	MaxTurns  int     // <=0 => 10
	MaxTokens int     // <=0 => no token budget
	Counter   Counter // nil => heuristic
	Store     Store   // nil => in-memory only
}

// Conversation is a sliding window of turns: the oldest turns are dropped
// once MaxTurns (or the token budget) is exceeded.
type Conversation struct {
	session   string
	maxTurns  int
	maxTokens int
	counter   Counter
	store     Store
	turns     []Turn
}

// Open builds a conversation and loads prior turns from the store, if any.
func Open(ctx context.Context, opt Options) (*Conversation, error) {
	if opt.MaxTurns <= 0 {
		opt.MaxTurns = 10
	}
	if opt.Counter == nil {
		opt.Counter = heuristicCounter{}
	}

	c := &Conversation{
		session:   opt.Session,
		maxTurns:  opt.MaxTurns,
		maxTokens: opt.MaxTokens,
		counter:   opt.Counter,
		store:     opt.Store,
	}

	if c.store == nil {
		return c, nil
	}

	turns, err := c.store.Load(ctx, c.session)
	if err != nil {
		return c, fmt.Errorf("load memory %s: %w", c.session, err)
	}
	c.turns = turns
	c.trim()

	return c, nil
}

// Turns returns a copy of the window, oldest first.
func (c *Conversation) Turns() []Turn {
	return append([]Turn(nil), c.turns...)
}

func (c *Conversation) Len() int { return len(c.turns) }

// Append adds a turn and trims the window.
func (c *Conversation) Append(ctx context.Context, role Role, text string) {
	c.turns = append(c.turns, Turn{Role: role, Text: text})
	c.trim()
	c.persist(ctx)
}

// Restore replaces the window with turns, typically a snapshot taken by
// Turns before an exchange that did not complete.
func (c *Conversation) Restore(ctx context.Context, turns []Turn) {
	c.turns = append([]Turn(nil), turns...)
	c.persist(ctx)
}

func (c *Conversation) Clear(ctx context.Context) {
	c.turns = nil
	c.persist(ctx)
}

func (c *Conversation) Summary() string {
	return fmt.Sprintf("I have %d messages in memory from this session.", len(c.turns))
}

func (c *Conversation) trim() {
	if over := len(c.turns) - c.maxTurns; over > 0 {
		c.turns = append([]Turn(nil), c.turns[over:]...)
	}
	if c.maxTokens <= 0 {
		return
	}
	for len(c.turns) > 1 && c.tokens() > c.maxTokens {
		c.turns = c.turns[1:]
	}
}

func (c *Conversation) tokens() int {
	total := 0
	for _, t := range c.turns {
		total += c.counter.CountText(t.Text) + perTurnOverhead
	}
	return total
}

func (c *Conversation) persist(ctx context.Context) {
	if c.store == nil {
		return
	}
	if err := c.store.Save(ctx, c.session, c.turns); err != nil {
		log.Warn("Failed to persist memory", "session", c.session, "err", err)
	}
}
