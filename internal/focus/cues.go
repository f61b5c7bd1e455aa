package focus

import (
	"github.com/rs/zerolog"
	"github.com/sadopc/hashira/internal/audio"
)

// Volumes are the playback levels of the three cues, 0..1.
type Volumes struct {
	Start   float64
	End     float64
	Ambient float64
}

func DefaultVolumes() Volumes {
	return Volumes{Start: 0.5, End: 0.8, Ambient: 0.22}
}

// Snapshot is everything the cue rules look at.
type Snapshot struct {
	Mode     Mode
	TimeLeft int
	Active   bool
	Muted    bool
}

// CueDispatcher turns state changes into side effects. Each rule compares the
// new snapshot with the one observed just before it, so a cue fires once per
// genuine transition no matter how often an unchanged state is observed.
type CueDispatcher struct {
	bank     audio.Bank
	volumes  Volumes
	complete func()
	logger   zerolog.Logger

	prev Snapshot
}

// NewCueDispatcher primes the dispatcher with the initial state so nothing
// fires for it. complete runs on every focus countdown reaching zero, muted
// or not.
func NewCueDispatcher(bank audio.Bank, initial Snapshot, complete func(), logger zerolog.Logger) *CueDispatcher {
	d := &CueDispatcher{
		bank:     bank,
		volumes:  DefaultVolumes(),
		complete: complete,
		logger:   logger.With().Str("component", "cues").Logger(),
		prev:     initial,
	}
	d.bank.Ambient.SetLoop(true)
	for _, ch := range d.channels() {
		ch.SetMuted(initial.Muted)
	}
	return d
}

func (d *CueDispatcher) SetVolumes(v Volumes) {
	d.volumes = v
}

func (d *CueDispatcher) Volumes() Volumes {
	return d.volumes
}

// Observe evaluates every rule against the previous snapshot, then remembers
// s as the new previous snapshot.
func (d *CueDispatcher) Observe(s Snapshot) {
	prev := d.prev
	d.prev = s

	if s.Muted != prev.Muted {
		d.applyMute(s.Muted)
	}

	if s.Active && !prev.Active && s.Mode == ModeFocus && !s.Muted {
		d.play(d.bank.Start, d.volumes.Start, "start")
	}

	if prev.TimeLeft > 0 && s.TimeLeft == 0 && !s.Muted {
		d.play(d.bank.End, d.volumes.End, "end")
	}

	d.ambient(prev, s)

	if prev.TimeLeft > 0 && s.TimeLeft == 0 && s.Mode == ModeFocus && d.complete != nil {
		d.complete()
	}
}

// ambient re-evaluates the loop only when mode, activity or mute changed, so
// countdown ticks never retry a failed playback.
func (d *CueDispatcher) ambient(prev, s Snapshot) {
	if s.Mode == prev.Mode && s.Active == prev.Active && s.Muted == prev.Muted {
		return
	}
	shouldPlay := s.Mode == ModeFocus && s.Active && !s.Muted
	shouldPause := !shouldPlay || s.Mode != prev.Mode

	ch := d.bank.Ambient
	switch {
	case shouldPlay && ch.Paused():
		ch.SetLoop(true)
		d.play(ch, d.volumes.Ambient, "ambient")
	case shouldPause && !ch.Paused():
		ch.Pause()
	}
}

func (d *CueDispatcher) applyMute(muted bool) {
	for _, ch := range d.channels() {
		ch.SetMuted(muted)
	}
	if muted && !d.bank.Ambient.Paused() {
		// Restart always rewinds, so unmuting never resumes mid-clip.
		d.bank.Ambient.Pause()
	}
}

// play issues a fire-and-forget playback request. Failures are logged at
// debug level and never reach the timer.
func (d *CueDispatcher) play(ch audio.Channel, volume float64, name string) {
	if err := ch.Restart(volume); err != nil {
		d.logger.Debug().Err(err).Str("cue", name).Msg("cue playback failed")
	}
}

// Close silences every channel.
func (d *CueDispatcher) Close() {
	d.bank.Close()
}

func (d *CueDispatcher) channels() []audio.Channel {
	return []audio.Channel{d.bank.Start, d.bank.End, d.bank.Ambient}
}
