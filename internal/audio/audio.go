// Package audio provides the cue channels the focus engine plays through.
package audio

import "errors"

// ErrPlaybackDenied is returned when a channel cannot play right now.
var ErrPlaybackDenied = errors.New("audio: playback denied")

// Channel is a single cue output. Restart always plays from the beginning.
type Channel interface {
	Restart(volume float64) error
	Pause()
	SetMuted(muted bool)
	SetLoop(loop bool)
	Paused() bool
}

// Bank groups the three cue channels.
type Bank struct {
	Start   Channel
	End     Channel
	Ambient Channel
}

// Close pauses every channel in the bank.
func (b Bank) Close() {
	for _, ch := range []Channel{b.Start, b.End, b.Ambient} {
		if ch != nil {
			ch.Pause()
		}
	}
}

// SilentBank returns a bank whose channels only track play state.
func SilentBank() Bank {
	return Bank{Start: &Silent{}, End: &Silent{}, Ambient: &Silent{}}
}

// Silent tracks play/pause state without producing sound.
type Silent struct {
	playing bool
	muted   bool
	loop    bool
}

func (s *Silent) Restart(float64) error {
	// one-shot cues finish immediately
	s.playing = s.loop
	return nil
}

func (s *Silent) Pause()              { s.playing = false }
func (s *Silent) SetMuted(muted bool) { s.muted = muted }
func (s *Silent) SetLoop(loop bool)   { s.loop = loop }
func (s *Silent) Paused() bool        { return !s.playing }
