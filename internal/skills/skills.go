// Package skills holds the domain handlers of the assistant. Each handler
// inspects a normalized command and either answers it or declines, letting
// the dispatcher try the next one.
package skills

import (
	"context"
	log "log/slog"
	"math/rand/v2"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode"

	"maze/internal/desktop"
	"maze/internal/store"
)

// Desktop performs OS side effects.
type Desktop interface {
	OS() string
	Launch(ctx context.Context, target string) error
	Exists(path string) bool
	OpenURL(ctx context.Context, url string) error
	OpenFile(ctx context.Context, path string) error
	Brightness(ctx context.Context) (int, error)
	SetBrightness(ctx context.Context, percent int) error
	PressVolume(ctx context.Context, key desktop.VolumeKey, n int) error
}

// VideoFinder resolves a search query to the URL of the first matching
// video.
type VideoFinder interface {
	FirstVideo(ctx context.Context, query string) (string, error)
}

// Skill answers a command or declines with ok == false.
type Skill interface {
	Try(ctx context.Context, cmd string) (reply string, ok bool)
}

// SkillFunc adapts a plain function to Skill.
type SkillFunc func(ctx context.Context, cmd string) (string, bool)

func (f SkillFunc) Try(ctx context.Context, cmd string) (string, bool) { return f(ctx, cmd) }

// Kit carries the collaborators and per-session state the handlers work on.
type Kit struct {
	Desktop  Desktop
	Videos   VideoFinder
	TaskList *store.TaskList
	NoteLog  *store.Notes

	// Now and Pick are replaced in tests.
	Now  func() time.Time
	Pick func(n int) int

	apps     []App
	browsers []Browser
}

func New(d Desktop, videos VideoFinder, tasks *store.TaskList, notes *store.Notes) *Kit {
	home, _ := os.UserHomeDir()
	return &Kit{
		Desktop:  d,
		Videos:   videos,
		TaskList: tasks,
		NoteLog:  notes,
		Now:      time.Now,
		Pick:     rand.IntN,
		apps:     Apps,
		browsers: BrowsersFor(d.OS(), home),
	}
}

func (k *Kit) openURL(ctx context.Context, u string) {
	if err := k.Desktop.OpenURL(ctx, u); err != nil {
		log.Warn("Failed to open URL", "url", u, "err", err)
	}
}

func (k *Kit) pick(pool []string) string {
	return pool[k.Pick(len(pool))]
}

// quote escapes s for a URL query or path, spaces as %20.
func quote(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// title upper-cases every letter that does not follow another letter:
// "vs code" -> "Vs Code", "w3schools" -> "W3Schools".
func title(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
