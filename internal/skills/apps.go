package skills

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"

	"maze/internal/nlu"
)

const defaultBrowserPage = "https://www.google.com"

var errNoTarget = errors.New("not available on this system")

// OpenApp launches the first browser or app whose alias appears in query.
func (k *Kit) OpenApp(ctx context.Context, query string) (string, bool) {
	query = strings.TrimSpace(strings.ToLower(query))

	for _, b := range k.browsers {
		if strings.Contains(query, b.Alias) {
			return k.openBrowser(ctx, b), true
		}
	}

	goos := k.Desktop.OS()
	for _, app := range k.apps {
		if !aliasMatches(query, app.Alias) {
			continue
		}

		name := title(app.Alias)
		target := app.Target(goos)
		err := errNoTarget
		if target != "" {
			err = k.Desktop.Launch(ctx, target)
		}
		if err != nil {
			log.Warn("Failed to launch app", "alias", app.Alias, "target", target, "err", err)
			return fmt.Sprintf("Couldn't open %s. Error: %v", name, err), true
		}
		return fmt.Sprintf("Opening %s for you.", name), true
	}

	return "", false
}

// aliasMatches requires a whole word for short aliases so "calc" never
// fires inside "calculate".
func aliasMatches(query, alias string) bool {
	if len(alias) <= 4 {
		return nlu.HasWord(query, alias)
	}
	return strings.Contains(query, alias)
}

func (k *Kit) openBrowser(ctx context.Context, b Browser) string {
	name := title(b.Alias)

	for _, path := range b.Candidates {
		if !k.Desktop.Exists(path) {
			continue
		}
		if err := k.Desktop.Launch(ctx, path); err != nil {
			log.Warn("Failed to launch browser", "path", path, "err", err)
			continue
		}
		return fmt.Sprintf("Opening %s for you.", name)
	}

	if len(b.Candidates) > 0 {
		fallback := b.Candidates[len(b.Candidates)-1]
		err := k.Desktop.Launch(ctx, fallback)
		if err == nil {
			return fmt.Sprintf("Opening %s for you.", name)
		}
		log.Warn("Browser not installed", "browser", b.Alias, "err", err)
	}

	k.openURL(ctx, defaultBrowserPage)
	return fmt.Sprintf("%s not found. Opening default browser.", name)
}

// MentionsApp reports whether any app or browser alias occurs in cmd.
func (k *Kit) MentionsApp(cmd string) bool {
	for _, app := range k.apps {
		if strings.Contains(cmd, app.Alias) {
			return true
		}
	}
	for _, b := range k.browsers {
		if strings.Contains(cmd, b.Alias) {
			return true
		}
	}
	return false
}

// Website opens the first known site mentioned in cmd.
func (k *Kit) Website(ctx context.Context, cmd string) (string, bool) {
	for _, site := range Websites {
		if strings.Contains(cmd, site.Alias) {
			k.openURL(ctx, site.URL)
			return fmt.Sprintf("Opening %s for you.", title(site.Alias)), true
		}
	}
	return "", false
}

// OpenBundle handles "open/launch/start/run ...": searches first, then
// websites, then apps with the verbs stripped.
func (k *Kit) OpenBundle(ctx context.Context, cmd string) (string, bool) {
	if reply, ok := k.Search(ctx, cmd); ok {
		return reply, true
	}
	if reply, ok := k.Website(ctx, cmd); ok {
		return reply, true
	}
	return k.OpenApp(ctx, nlu.StripPhrases(cmd, OpenVerbs...))
}

// OpenVerbs gate the open bundle.
var OpenVerbs = []string{"open", "launch", "start", "run"}
