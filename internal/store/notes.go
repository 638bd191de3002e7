package store

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// NoteStampLayout formats the prefix of every notes line.
const NoteStampLayout = "2006-01-02 03:04 PM"

// Notes is an append-only text log, one timestamped note per line.
type Notes struct {
	path string
	now  func() time.Time
}

func NewNotes(path string) *Notes {
	return &Notes{path: path, now: time.Now}
}

func (n *Notes) Path() string { return n.path }

// Append writes "[stamp] text" as a new line and returns that line.
func (n *Notes) Append(text string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(n.path), 0o755); err != nil {
		return "", fmt.Errorf("create notes dir: %w", err)
	}
	f, err := os.OpenFile(n.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open notes: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s", n.now().Format(NoteStampLayout), text)
	if _, err := f.WriteString(line + "\n"); err != nil {
		return "", fmt.Errorf("append note: %w", err)
	}
	return line, nil
}

// Lines returns every line of the log. A missing log has no lines.
func (n *Notes) Lines() ([]string, error) {
	f, err := os.Open(n.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open notes: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read notes: %w", err)
	}
	return lines, nil
}

// Clear deletes the whole log.
func (n *Notes) Clear() error {
	err := os.Remove(n.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove notes: %w", err)
	}
	return nil
}

// NoteText strips the "[stamp] " prefix from a log line.
func NoteText(line string) string {
	if strings.HasPrefix(line, "[") {
		if _, rest, ok := strings.Cut(line, "] "); ok {
			return rest
		}
	}
	return line
}
