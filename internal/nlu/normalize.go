// Package nlu holds the text helpers the intent cascade is built from:
// transcript normalization and the keyword matchers.
package nlu

import "strings"

// fixups repairs common speech-to-text mistakes. Applied in order, each
// entry exactly once.
var fixups = []struct{ from, to string }{
	{"you tube", "youtube"},
	{"you too", "youtube"},
	{"u tube", "youtube"},
	{"v s code", "vs code"},
	{"vs court", "vs code"},
	{"note pad", "notepad"},
	{"calculater", "calculator"},
}

// Normalize lower-cases and trims raw command text and applies the
// transcription fixups.
func Normalize(raw string) string {
	cmd := strings.TrimSpace(strings.ToLower(raw))
	for _, f := range fixups {
		cmd = strings.ReplaceAll(cmd, f.from, f.to)
	}
	return cmd
}
