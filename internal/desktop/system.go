package desktop

import (
	"context"
	"fmt"
	log "log/slog"
	"regexp"
	"strconv"
	"strings"
)

var percentRe = regexp.MustCompile(`(\d+)\s*%`)

// volumeStep is the change of one volume key press, in percent.
const volumeStep = 2

// PressVolume has the effect of pressing key n times, issued as a single
// command so long sweeps do not spawn a process per press.
func (d *Desktop) PressVolume(ctx context.Context, key VolumeKey, n int) error {
	if n <= 0 {
		return nil
	}

	var (
		name string
		args []string
	)

	switch d.goos {
	case "linux":
		name = "pactl"
		switch key {
		case VolumeUp:
			args = []string{"set-sink-volume", "@DEFAULT_SINK@", fmt.Sprintf("+%d%%", volumeStep*n)}
		case VolumeDown:
			args = []string{"set-sink-volume", "@DEFAULT_SINK@", fmt.Sprintf("-%d%%", volumeStep*n)}
		default:
			if n%2 == 0 {
				return nil
			}
			args = []string{"set-sink-mute", "@DEFAULT_SINK@", "toggle"}
		}
	case "windows":
		vk := map[VolumeKey]int{VolumeUp: 0xAF, VolumeDown: 0xAE, VolumeMute: 0xAD}[key]
		script := fmt.Sprintf("$w = New-Object -ComObject WScript.Shell; 1..%d | %% { $w.SendKeys([char]%d)", n, vk)
		if d.stepGap > 0 {
			script += fmt.Sprintf("; Start-Sleep -Milliseconds %d", d.stepGap.Milliseconds())
		}
		script += " }"
		name = "powershell"
		args = []string{"-NoProfile", "-Command", script}
	case "darwin":
		name = "osascript"
		switch key {
		case VolumeUp:
			args = []string{"-e", fmt.Sprintf("set volume output volume ((output volume of (get volume settings)) + %d)", volumeStep*n)}
		case VolumeDown:
			args = []string{"-e", fmt.Sprintf("set volume output volume ((output volume of (get volume settings)) - %d)", volumeStep*n)}
		default:
			if n%2 == 0 {
				return nil
			}
			args = []string{"-e", "set volume output muted (not (output muted of (get volume settings)))"}
		}
	default:
		return ErrUnsupported
	}

	if _, err := d.run.Output(ctx, name, args...); err != nil {
		return fmt.Errorf("volume %s x%d: %w", key, n, err)
	}
	return nil
}

// Brightness returns the current display brightness in percent.
func (d *Desktop) Brightness(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, d.queryTimeout)
	defer cancel()

	switch d.goos {
	case "linux":
		// brightnessctl -m: "intel_backlight,backlight,400,40%,1000"
		out, err := d.run.Output(ctx, "brightnessctl", "-m")
		if err != nil {
			return 0, fmt.Errorf("brightnessctl: %w", err)
		}
		m := percentRe.FindStringSubmatch(string(out))
		if len(m) < 2 {
			return 0, fmt.Errorf("brightnessctl: unexpected output %q", strings.TrimSpace(string(out)))
		}
		return strconv.Atoi(m[1])
	case "windows":
		out, err := d.run.Output(ctx, "powershell", "-NoProfile", "-Command",
			"(Get-WmiObject -Namespace root/WMI -Class WmiMonitorBrightness).CurrentBrightness")
		if err != nil {
			return 0, fmt.Errorf("query brightness: %w", err)
		}
		v, err := strconv.Atoi(strings.TrimSpace(string(out)))
		if err != nil {
			return 0, fmt.Errorf("query brightness: %w", err)
		}
		return v, nil
	default:
		return 0, ErrUnsupported
	}
}

// SetBrightness sets the display brightness, clamped to [0,100].
func (d *Desktop) SetBrightness(ctx context.Context, percent int) error {
	percent = max(0, min(100, percent))

	ctx, cancel := context.WithTimeout(ctx, d.queryTimeout)
	defer cancel()

	log.Debug("Setting brightness", "percent", percent)

	var err error
	switch d.goos {
	case "linux":
		_, err = d.run.Output(ctx, "brightnessctl", "set", fmt.Sprintf("%d%%", percent))
	case "windows":
		_, err = d.run.Output(ctx, "powershell", "-NoProfile", "-Command",
			fmt.Sprintf("(Get-WmiObject -Namespace root/WMI -Class WmiMonitorBrightnessMethods).WmiSetBrightness(1, %d)", percent))
	default:
		return ErrUnsupported
	}
	if err != nil {
		return fmt.Errorf("set brightness: %w", err)
	}
	return nil
}
