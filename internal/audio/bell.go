package audio

import (
	"io"
	"sync"
)

// Bell rings the terminal bell. It is a one-shot channel: looping is ignored
// and it is always reported as paused once the bell has been written.
type Bell struct {
	mu    sync.Mutex
	out   io.Writer
	muted bool
}

func NewBell(out io.Writer) *Bell {
	return &Bell{out: out}
}

func (b *Bell) Restart(volume float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.muted || volume <= 0 || b.out == nil {
		return nil
	}
	_, err := io.WriteString(b.out, "\a")
	return err
}

func (b *Bell) Pause() {}

func (b *Bell) SetMuted(muted bool) {
	b.mu.Lock()
	b.muted = muted
	b.mu.Unlock()
}

func (b *Bell) SetLoop(bool) {}

func (b *Bell) Paused() bool { return true }
