package brain

import (
	"context"
	"strings"

	"maze/internal/store"
)

// Assistant is the single entry point every transport calls. Commands are
// handled one at a time; turn is a one-slot semaphore so waiting callers
// can give up with their context.
type Assistant struct {
	turn    chan struct{}
	sess    *Session
	offline *Offline
	remote  *Remote
}

// NewAssistant wires the dispatchers to sess. remote may be nil for an
// offline-only assistant.
func NewAssistant(sess *Session, offline *Offline, remote *Remote) *Assistant {
	return &Assistant{
		turn:    make(chan struct{}, 1),
		sess:    sess,
		offline: offline,
		remote:  remote,
	}
}

func (a *Assistant) lock(ctx context.Context) bool {
	select {
	case a.turn <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

func (a *Assistant) unlock() { <-a.turn }

// Respond answers cmd. It never fails: remote problems degrade to the
// offline answer. A context cancelled while waiting for an earlier command
// yields a short apology.
func (a *Assistant) Respond(ctx context.Context, cmd string) string {
	if !a.lock(ctx) {
		return "Sorry, I'm still busy with the previous command."
	}
	defer a.unlock()

	cmd = strings.TrimSpace(cmd)
	if a.remote.Available(a.sess) {
		return a.remote.Respond(ctx, a.sess, cmd)
	}
	return a.offline.Respond(ctx, cmd)
}

// SessionID identifies the conversation for logs and clients.
func (a *Assistant) SessionID() string { return a.sess.ID }

// Tasks returns a snapshot of the task list.
func (a *Assistant) Tasks(ctx context.Context) ([]store.Task, error) {
	if !a.lock(ctx) {
		return nil, ctx.Err()
	}
	defer a.unlock()
	return a.sess.Tasks.All(), nil
}

// MemorySummary reports how many turns the conversation window holds.
func (a *Assistant) MemorySummary(ctx context.Context) string {
	if !a.lock(ctx) {
		return ""
	}
	defer a.unlock()
	return a.sess.Memory.Summary()
}

// Forget empties the conversation window.
func (a *Assistant) Forget(ctx context.Context) {
	if !a.lock(ctx) {
		return
	}
	defer a.unlock()
	a.sess.Memory.Clear(ctx)
}
