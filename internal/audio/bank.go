package audio

import (
	"io"

	"github.com/rs/zerolog"
)

// Options selects how NewBank builds each cue channel.
type Options struct {
	Enabled      bool
	Player       []string
	VolumeScale  float64
	StartSound   string
	EndSound     string
	AmbientSound string
}

// NewBank builds the start, end and ambient channels. A cue with a sound file
// and a configured player gets a Command channel; otherwise the one-shot cues
// fall back to the terminal bell on bell and the ambient loop stays silent.
func NewBank(opts Options, bell io.Writer, logger zerolog.Logger) Bank {
	if !opts.Enabled {
		return SilentBank()
	}

	pick := func(file string, fallback Channel) Channel {
		if len(opts.Player) == 0 || file == "" {
			return fallback
		}
		return NewCommand(opts.Player, file, opts.VolumeScale, logger)
	}

	return Bank{
		Start:   pick(opts.StartSound, NewBell(bell)),
		End:     pick(opts.EndSound, NewBell(bell)),
		Ambient: pick(opts.AmbientSound, &Silent{}),
	}
}
