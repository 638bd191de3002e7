// Package logging installs the process-wide slog handler.
package logging

import (
	"fmt"
	"io"
	log "log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

var levelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(name string) (log.Level, error) {
	lvl, ok := levelMap[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return log.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return lvl, nil
}

// Setup makes a colored tint handler writing to w the default logger.
// An unknown level falls back to info and is reported.
func Setup(w io.Writer, level string) error {
	lvl, err := ParseLevel(level)
	log.SetDefault(log.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.TimeOnly,
	})))
	return err
}
