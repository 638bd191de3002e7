// Package console runs the interactive terminal loop.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	log "log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"

	"maze/internal/nlu"
)

// Responder is the assistant as seen from the terminal.
type Responder interface {
	Respond(ctx context.Context, cmd string) string
	MemorySummary(ctx context.Context) string
	Forget(ctx context.Context)
}

var exitWords = []string{"stop", "exit", "shutdown", "goodbye", "bye", "quit"}

const (
	farewell     = "Shutting down. Stay disciplined. See you soon."
	interrupted  = "Shutting down. Stay focused."
	missionAsk   = "What is your mission?"
	memoryForgot = "Memory cleared."
)

var (
	nameStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	replyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

type Console struct {
	in  LineReader
	out io.Writer
	a   Responder
	now func() time.Time
}

func New(in LineReader, out io.Writer, a Responder) *Console {
	return &Console{in: in, out: out, a: a, now: time.Now}
}

// Run greets, then answers lines until an exit word, EOF, an interrupt or
// ctx ends the session.
func (c *Console) Run(ctx context.Context) error {
	c.say(fmt.Sprintf("%s. MAZE online. All systems ready.", dayPart(c.now().Hour())))
	c.hint("Type a command, /memory, /forget or /help. Say bye to quit.")
	c.say(missionAsk)

	for {
		if ctx.Err() != nil {
			c.say(interrupted)
			return nil
		}

		line, err := c.in.ReadLine("> ")
		if err != nil {
			switch {
			case errors.Is(err, readline.ErrInterrupt), errors.Is(err, io.EOF):
				c.say(interrupted)
				return nil
			default:
				return fmt.Errorf("read input: %w", err)
			}
		}

		cmd := strings.TrimSpace(line)
		if cmd == "" {
			continue
		}

		if strings.HasPrefix(cmd, "/") {
			c.slash(ctx, cmd)
			continue
		}

		if nlu.ContainsAny(strings.ToLower(cmd), exitWords...) {
			c.say(farewell)
			return nil
		}

		log.Debug("Console command", "cmd", cmd)
		c.say(c.a.Respond(ctx, cmd))
	}
}

func (c *Console) slash(ctx context.Context, cmd string) {
	switch strings.ToLower(cmd) {
	case "/memory":
		c.say(c.a.MemorySummary(ctx))
	case "/forget":
		c.a.Forget(ctx)
		c.say(memoryForgot)
	case "/help":
		c.hint("/memory  how much of the conversation is remembered")
		c.hint("/forget  clear the conversation memory")
		c.hint("bye      end the session")
	default:
		c.hint("Unknown command " + cmd + ". Try /help.")
	}
}

func (c *Console) say(text string) {
	fmt.Fprintf(c.out, "\n%s %s\n\n", nameStyle.Render("MAZE:"), replyStyle.Render(text))
}

func (c *Console) hint(text string) {
	fmt.Fprintln(c.out, hintStyle.Render(text))
}

func dayPart(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 17:
		return "Good afternoon"
	case hour < 21:
		return "Good evening"
	default:
		return "Good night"
	}
}
