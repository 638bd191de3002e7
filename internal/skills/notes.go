package skills

import (
	"context"
	"fmt"
	log "log/slog"
	"strings"

	"maze/internal/nlu"
)

var (
	takeNotePhrases = []string{
		"note down", "note this", "write down", "write this",
		"type message", "type this", "take note", "make note",
		"remember this", "remember that", "save note",
		"jot down", "write note",
	}
	showNotePhrases  = []string{"show note", "show notes", "my notes", "read notes", "read note", "show my notes", "view notes"}
	clearNotePhrases = []string{"clear notes", "delete notes", "remove notes", "clear all notes", "erase notes"}
)

const noNotes = "No notes yet. Say 'note down' followed by your message to start."

// Notes appends to, reports on and clears the notes log.
func (k *Kit) Notes(ctx context.Context, cmd string) (string, bool) {
	switch {
	case nlu.ContainsAny(cmd, takeNotePhrases...):
		return k.takeNote(ctx, cmd), true
	case nlu.ContainsAny(cmd, showNotePhrases...):
		return k.showNotes(ctx), true
	case nlu.ContainsAny(cmd, clearNotePhrases...):
		if err := k.NoteLog.Clear(); err != nil {
			log.Warn("Failed to clear notes", "err", err)
			return "Couldn't clear notes.", true
		}
		return "All notes cleared.", true
	}
	return "", false
}

func (k *Kit) takeNote(ctx context.Context, cmd string) string {
	strip := append(append([]string(nil), takeNotePhrases...), "please", "that")
	note := nlu.StripPhrases(cmd, strip...)
	if note == "" {
		return "What do you want me to note down? Say 'note down' followed by your message."
	}

	if _, err := k.NoteLog.Append(note); err != nil {
		log.Warn("Failed to append note", "err", err)
	}
	k.openNotes(ctx)

	return fmt.Sprintf("Got it. Noted down: %s. %s", note, k.viewerPhrase())
}

func (k *Kit) showNotes(ctx context.Context) string {
	lines, err := k.NoteLog.Lines()
	if err != nil {
		log.Warn("Failed to read notes", "err", err)
		return "Couldn't read notes file."
	}
	if len(lines) == 0 {
		return noNotes
	}

	k.openNotes(ctx)
	latest := strings.TrimSpace(lines[len(lines)-1])
	return fmt.Sprintf("You have %d notes. Latest: %s. %s", len(lines), latest, k.viewerPhrase())
}

func (k *Kit) openNotes(ctx context.Context) {
	if err := k.Desktop.OpenFile(ctx, k.NoteLog.Path()); err != nil {
		log.Warn("Failed to open notes", "path", k.NoteLog.Path(), "err", err)
	}
}

func (k *Kit) viewerPhrase() string {
	if k.Desktop.OS() == "windows" {
		return "Opening in Notepad."
	}
	return "Opening the notes file."
}
