package skills

import (
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"strings"

	"maze/internal/desktop"
	"maze/internal/nlu"
)

const (
	volumeStep      = 5
	volumeFullSweep = 50
	brightnessDelta = 20
	brightnessFloor = 10
)

var (
	volumeUpPhrases = []string{
		"volume up", "increase volume", "louder", "turn up volume", "raise volume",
		"sound up", "volume increase", "volume high", "volume higher",
	}
	volumeDownPhrases = []string{
		"volume down", "decrease volume", "quieter", "softer", "turn down volume",
		"lower volume", "sound down", "volume decrease", "volume low", "volume lower",
	}
	mutePhrases      = []string{"mute", "unmute", "silence", "toggle mute", "mute volume", "volume mute", "shut up volume"}
	volumeMaxPhrases = []string{"full volume", "max volume", "maximum volume", "volume max", "volume full", "volume 100"}
	volumeMinPhrases = []string{"minimum volume", "volume minimum", "volume zero", "volume 0", "no volume", "silent"}

	brightUpPhrases = []string{
		"brightness up", "increase brightness", "brighter", "screen brighter",
		"turn up brightness", "brightness increase", "brightness high",
		"brightness higher", "more brightness", "bright up",
	}
	brightDownPhrases = []string{
		"brightness down", "decrease brightness", "dimmer", "screen dimmer",
		"turn down brightness", "dim", "brightness decrease", "brightness low",
		"brightness lower", "less brightness", "bright down",
	}
	brightMaxPhrases = []string{"full brightness", "max brightness", "maximum brightness", "brightness max", "brightness full", "brightness 100"}
	brightMinPhrases = []string{"minimum brightness", "lowest brightness", "brightness minimum", "brightness zero", "brightness 0"}
)

// System adjusts volume and display brightness. Collaborator failures are
// logged and the confirmation is still given.
func (k *Kit) System(ctx context.Context, cmd string) (string, bool) {
	switch {
	case nlu.ContainsAny(cmd, volumeUpPhrases...):
		k.pressVolume(ctx, desktop.VolumeUp, volumeStep)
		return "Volume increased.", true
	case nlu.ContainsAny(cmd, volumeDownPhrases...):
		k.pressVolume(ctx, desktop.VolumeDown, volumeStep)
		return "Volume decreased.", true
	case nlu.ContainsAny(cmd, mutePhrases...):
		k.pressVolume(ctx, desktop.VolumeMute, 1)
		return "Volume muted. Say mute again to unmute.", true
	case nlu.ContainsAny(cmd, volumeMaxPhrases...):
		k.pressVolume(ctx, desktop.VolumeUp, volumeFullSweep)
		return "Volume set to maximum.", true
	case nlu.ContainsAny(cmd, volumeMinPhrases...):
		k.pressVolume(ctx, desktop.VolumeDown, volumeFullSweep)
		return "Volume set to minimum.", true

	case nlu.ContainsAny(cmd, brightUpPhrases...):
		return k.shiftBrightness(ctx, brightnessDelta, "increased"), true
	case nlu.ContainsAny(cmd, brightDownPhrases...):
		return k.shiftBrightness(ctx, -brightnessDelta, "decreased"), true
	case nlu.ContainsAny(cmd, brightMaxPhrases...):
		k.setBrightness(ctx, 100)
		return "Brightness set to maximum.", true
	case nlu.ContainsAny(cmd, brightMinPhrases...):
		k.setBrightness(ctx, brightnessFloor)
		return "Brightness set to minimum.", true
	}

	if strings.Contains(cmd, "brightness") {
		if level, ok := percentIn(cmd); ok {
			k.setBrightness(ctx, level)
			return fmt.Sprintf("Brightness set to %d percent.", level), true
		}
	}

	// No absolute volume API: sweep to zero, then step up about 2% a press.
	if strings.Contains(cmd, "volume") {
		if level, ok := percentIn(cmd); ok {
			k.pressVolume(ctx, desktop.VolumeDown, volumeFullSweep)
			k.pressVolume(ctx, desktop.VolumeUp, level/2)
			return fmt.Sprintf("Volume set to approximately %d percent.", level), true
		}
	}

	return "", false
}

// percentIn returns the first number in cmd when it lies in [0,100].
func percentIn(cmd string) (int, bool) {
	m := digitsRe.FindString(cmd)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return n, true
}

func (k *Kit) pressVolume(ctx context.Context, key desktop.VolumeKey, n int) {
	if n <= 0 {
		return
	}
	if err := k.Desktop.PressVolume(ctx, key, n); err != nil {
		log.Warn("Volume control failed", "key", key, "steps", n, "err", err)
	}
}

func (k *Kit) setBrightness(ctx context.Context, level int) {
	if err := k.Desktop.SetBrightness(ctx, level); err != nil {
		log.Warn("Brightness control failed", "level", level, "err", err)
	}
}

func (k *Kit) shiftBrightness(ctx context.Context, delta int, verb string) string {
	current, err := k.Desktop.Brightness(ctx)
	if err != nil {
		log.Warn("Brightness query failed", "err", err)
		return fmt.Sprintf("Brightness %s.", verb)
	}

	next := max(0, min(100, current+delta))
	k.setBrightness(ctx, next)
	return fmt.Sprintf("Brightness %s to %d percent.", verb, next)
}
