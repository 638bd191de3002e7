// Package store persists the task list and the notes log as flat files.
//
// Both stores are read-modify-write without file locking: a single process
// is assumed to own the data directory. Two processes sharing it may lose
// updates.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Task is one entry of the task list.
type Task struct {
	Description string `json:"task"`
	Done        bool   `json:"done"`
	CreatedAt   Stamp  `json:"time"`
}

// Stamp is a creation time serialized as ISO-8601. Zone-less timestamps
// written by older versions are read as local time.
type Stamp time.Time

var legacyLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func (s Stamp) Time() time.Time { return time.Time(s) }

func (s Stamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(s).Format(time.RFC3339Nano))
}

func (s *Stamp) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		*s = Stamp(t)
		return nil
	}
	for _, layout := range legacyLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			*s = Stamp(t)
			return nil
		}
	}
	return fmt.Errorf("invalid task time %q", raw)
}

// TaskList is the ordered task collection backed by a JSON document that
// is rewritten on every mutation.
type TaskList struct {
	path  string
	tasks []Task
	now   func() time.Time
}

// OpenTaskList loads the list at path. A missing file is an empty list.
func OpenTaskList(path string) (*TaskList, error) {
	l := &TaskList{path: path, now: time.Now}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return l, fmt.Errorf("read tasks: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return l, nil
	}
	if err := json.Unmarshal(data, &l.tasks); err != nil {
		return l, fmt.Errorf("decode tasks %s: %w", path, err)
	}

	return l, nil
}

// All returns a copy of every task in creation order.
func (l *TaskList) All() []Task {
	return append([]Task(nil), l.tasks...)
}

// Pending returns the not-done tasks in creation order. A task's position
// in this slice (1-based) is the number the user refers to it by.
func (l *TaskList) Pending() []Task {
	var out []Task
	for _, t := range l.tasks {
		if !t.Done {
			out = append(out, t)
		}
	}
	return out
}

func (l *TaskList) DoneCount() int {
	n := 0
	for _, t := range l.tasks {
		if t.Done {
			n++
		}
	}
	return n
}

func (l *TaskList) Len() int { return len(l.tasks) }

func (l *TaskList) Path() string { return l.path }

// Add appends a pending task and saves the list.
func (l *TaskList) Add(desc string) (Task, error) {
	t := Task{Description: desc, CreatedAt: Stamp(l.now())}
	l.tasks = append(l.tasks, t)
	return t, l.save()
}

// Complete marks the n-th pending task (1-based) done and saves. ok is
// false when n is out of range; nothing changes then.
func (l *TaskList) Complete(n int) (t Task, ok bool, err error) {
	if n < 1 {
		return Task{}, false, nil
	}
	seen := 0
	for i := range l.tasks {
		if l.tasks[i].Done {
			continue
		}
		seen++
		if seen == n {
			l.tasks[i].Done = true
			return l.tasks[i], true, l.save()
		}
	}
	return Task{}, false, nil
}

// Clear removes every task and saves.
func (l *TaskList) Clear() error {
	l.tasks = nil
	return l.save()
}

func (l *TaskList) save() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create tasks dir: %w", err)
	}
	tasks := l.tasks
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}
