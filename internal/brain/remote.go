package brain

import (
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	"maze/internal/llm"
	"maze/internal/memory"
)

// SystemInstruction sets the assistant's voice for remote models.
const SystemInstruction = "You are MAZE, an advanced AI assistant inspired by JARVIS from Iron Man. " +
	"Intelligent, calm, professional, friendly, and motivating. " +
	"Keep responses BRIEF for voice. No markdown or formatting. " +
	"Max 2-3 sentences unless asked for detail."

type RemoteConfig struct {
	Models      []string
	System      string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration // per model attempt
	MaxFailures int           // consecutive failures before the remote path is skipped
}

func (c RemoteConfig) withDefaults() RemoteConfig {
	if c.System == "" {
		c.System = SystemInstruction
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 200
	}
	if c.Temperature <= 0 {
		c.Temperature = 0.7
	}
	if c.Timeout <= 0 {
		c.Timeout = 8 * time.Second
	}
	if c.MaxFailures <= 0 {
		c.MaxFailures = 3
	}
	return c
}

// Remote asks a language model, falling back to the offline cascade on any
// failure. Callers only ever see a reply.
type Remote struct {
	client  llm.Client
	cfg     RemoteConfig
	offline *Offline
}

func NewRemote(client llm.Client, cfg RemoteConfig, offline *Offline) *Remote {
	return &Remote{client: client, cfg: cfg.withDefaults(), offline: offline}
}

// Available reports whether s may still use the remote path.
func (r *Remote) Available(s *Session) bool {
	return r != nil && r.client != nil && len(r.cfg.Models) > 0 && s.failures < r.cfg.MaxFailures
}

// Respond tries each model in order. A rate-limited model hands over to
// the next one; any other error ends the attempt.
func (r *Remote) Respond(ctx context.Context, s *Session, cmd string) string {
	// appending may evict the oldest turn; a failure restores it
	before := s.Memory.Turns()
	s.Memory.Append(ctx, memory.RoleUser, cmd)

	req := llm.Request{
		System:      r.cfg.System,
		Turns:       s.Memory.Turns(),
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	}

	var lastErr error
	for _, model := range r.cfg.Models {
		reply, err := r.attempt(ctx, model, req)
		if err == nil {
			s.Memory.Append(ctx, memory.RoleModel, reply)
			s.failures = 0
			return reply
		}

		lastErr = err
		if !errors.Is(err, llm.ErrRateLimited) {
			break
		}
		log.Warn("Model rate limited, trying next", "provider", r.client.Name(), "model", model)
	}

	s.failures++
	s.Memory.Restore(ctx, before)
	log.Warn("Remote model failed, answering offline",
		"provider", r.client.Name(), "failures", s.failures, "err", lastErr)

	return r.offline.Respond(ctx, cmd)
}

func (r *Remote) attempt(ctx context.Context, model string, req llm.Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	reply, err := r.client.Generate(ctx, model, req)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", llm.ErrEmptyReply
	}
	return reply, nil
}
