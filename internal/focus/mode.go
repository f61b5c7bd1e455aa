package focus

import (
	"fmt"
	"time"
)

// Mode selects one of the three timer configurations.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "shortBreak"
	ModeLongBreak  Mode = "longBreak"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeFocus, ModeShortBreak, ModeLongBreak}

var modeLabels = map[Mode]string{
	ModeFocus:      "Total Concentration",
	ModeShortBreak: "Short Rest",
	ModeLongBreak:  "Long Rest",
}

// Label is the human readable name of the mode.
func (m Mode) Label() string {
	if l, ok := modeLabels[m]; ok {
		return l
	}
	return string(m)
}

func (m Mode) Valid() bool {
	_, ok := modeLabels[m]
	return ok
}

// ParseMode accepts the canonical names plus a few short aliases.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "focus", "f":
		return ModeFocus, nil
	case "shortBreak", "short_break", "short", "s":
		return ModeShortBreak, nil
	case "longBreak", "long_break", "long", "l":
		return ModeLongBreak, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Durations holds the countdown length of each mode in whole seconds.
// It is built once at startup and never changed afterwards.
type Durations struct {
	Focus      int
	ShortBreak int
	LongBreak  int
}

func DefaultDurations() Durations {
	return Durations{
		Focus:      25 * 60,
		ShortBreak: 5 * 60,
		LongBreak:  15 * 60,
	}
}

// DurationsFrom converts time.Duration values, falling back to the defaults
// for anything shorter than one second.
func DurationsFrom(focus, shortBreak, longBreak time.Duration) Durations {
	d := DefaultDurations()
	if s := int(focus / time.Second); s > 0 {
		d.Focus = s
	}
	if s := int(shortBreak / time.Second); s > 0 {
		d.ShortBreak = s
	}
	if s := int(longBreak / time.Second); s > 0 {
		d.LongBreak = s
	}
	return d
}

// Of returns the duration of m in seconds.
func (d Durations) Of(m Mode) int {
	switch m {
	case ModeShortBreak:
		return d.ShortBreak
	case ModeLongBreak:
		return d.LongBreak
	default:
		return d.Focus
	}
}
