// Package desktop performs the OS side effects of commands: launching
// programs, opening URLs and files, display brightness and volume keys.
// Everything shells out to the platform utilities.
package desktop

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// ErrUnsupported is returned for actions the current platform lacks.
var ErrUnsupported = errors.New("not supported on this platform")

// VolumeKey is a single media key press.
type VolumeKey uint

const (
	VolumeUp VolumeKey = iota
	VolumeDown
	VolumeMute
)

func (k VolumeKey) String() string {
	switch k {
	case VolumeUp:
		return "up"
	case VolumeDown:
		return "down"
	case VolumeMute:
		return "mute"
	default:
		return fmt.Sprintf("VolumeKey(%d)", uint(k))
	}
}

// Runner executes external programs.
type Runner interface {
	// Output runs name to completion and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Start launches name without waiting for it.
	Start(name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (execRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Desktop implements the OS collaborators for one platform.
type Desktop struct {
	goos         string
	run          Runner
	stepGap      time.Duration // between synthesized key presses
	queryTimeout time.Duration
}

func New() *Desktop {
	return NewWithRunner(runtime.GOOS, execRunner{})
}

// NewWithRunner targets goos and executes through run.
func NewWithRunner(goos string, run Runner) *Desktop {
	return &Desktop{
		goos:         goos,
		run:          run,
		stepGap:      50 * time.Millisecond,
		queryTimeout: 5 * time.Second,
	}
}

func (d *Desktop) OS() string { return d.goos }

// Exists reports whether path is present on disk.
func (d *Desktop) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Launch starts an executable or opens a protocol URI ("ms-settings:").
// A bare executable that cannot be started directly is retried through the
// system shell.
func (d *Desktop) Launch(ctx context.Context, target string) error {
	if isProtocol(target) {
		return d.OpenURL(ctx, target)
	}

	log.Debug("Launching", "target", target)
	err := d.run.Start(target)
	if err == nil {
		return nil
	}

	var shellErr error
	switch d.goos {
	case "windows":
		shellErr = d.run.Start("cmd", "/c", "start", "", target)
	default:
		shellErr = d.run.Start("sh", "-c", target)
	}
	if shellErr != nil {
		return fmt.Errorf("launch %s: %w", target, errors.Join(err, shellErr))
	}
	return nil
}

// OpenURL opens url with the default handler.
func (d *Desktop) OpenURL(_ context.Context, url string) error {
	var err error
	switch d.goos {
	case "windows":
		err = d.run.Start("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		err = d.run.Start("open", url)
	default:
		err = d.run.Start("xdg-open", url)
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

// OpenFile shows a text file to the user.
func (d *Desktop) OpenFile(ctx context.Context, path string) error {
	if d.goos == "windows" {
		if err := d.run.Start("notepad.exe", path); err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		return nil
	}
	return d.OpenURL(ctx, path)
}

// isProtocol tells "ms-settings:" or "https://x" apart from "C:\path" and
// plain program names.
func isProtocol(target string) bool {
	i := strings.Index(target, ":")
	if i <= 0 {
		return false
	}
	if i == 1 && len(target) > 2 && (target[2] == '\\' || target[2] == '/') {
		return false
	}
	return !strings.ContainsAny(target[:i], ` \/`)
}
