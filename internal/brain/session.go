// Package brain routes a command to the offline skill cascade or the
// remote model, keeping all per-session state on an explicit Session.
package brain

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/google/uuid"

	"maze/internal/memory"
	"maze/internal/store"
)

const (
	TasksFile = "tasks.json"
	NotesFile = "notes.txt"
)

// Session is the state one conversation works on.
type Session struct {
	ID     string
	Tasks  *store.TaskList
	Notes  *store.Notes
	Memory *memory.Conversation

	// consecutive remote failures
	failures int
}

// OpenSession loads the task list and notes log from dataDir and the
// conversation window described by mem. An empty mem.Session gets a fresh
// id. Load errors are returned alongside a usable session.
func OpenSession(ctx context.Context, dataDir string, mem memory.Options) (*Session, error) {
	if mem.Session == "" {
		mem.Session = uuid.NewString()
	}

	tasks, taskErr := store.OpenTaskList(filepath.Join(dataDir, TasksFile))
	conv, memErr := memory.Open(ctx, mem)

	s := &Session{
		ID:     mem.Session,
		Tasks:  tasks,
		Notes:  store.NewNotes(filepath.Join(dataDir, NotesFile)),
		Memory: conv,
	}
	return s, errors.Join(taskErr, memErr)
}

// Failures returns the number of consecutive remote failures.
func (s *Session) Failures() int { return s.failures }
