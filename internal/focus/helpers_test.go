package focus

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sadopc/hashira/internal/audio"
	"github.com/sadopc/hashira/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// countingRepo records how often each slot is written.
type countingRepo struct {
	*store.Store
	taskWrites   int
	activeWrites int
	statsWrites  int
}

func (r *countingRepo) SaveTasks(tasks []store.Task) error {
	r.taskWrites++
	return r.Store.SaveTasks(tasks)
}

func (r *countingRepo) SaveActiveTaskID(id string) error {
	r.activeWrites++
	return r.Store.SaveActiveTaskID(id)
}

func (r *countingRepo) SaveStats(stats store.DailyStats) error {
	r.statsWrites++
	return r.Store.SaveStats(stats)
}

func newCountingRepo(t *testing.T) *countingRepo {
	t.Helper()
	return &countingRepo{Store: newTestStore(t)}
}

// fakeChannel records playback requests.
type fakeChannel struct {
	restarts   int
	pauses     int
	lastVolume float64
	muted      bool
	loop       bool
	playing    bool
	fail       error
}

func (f *fakeChannel) Restart(volume float64) error {
	f.restarts++
	f.lastVolume = volume
	if f.fail != nil {
		return f.fail
	}
	f.playing = f.loop
	return nil
}

func (f *fakeChannel) Pause() {
	f.pauses++
	f.playing = false
}

func (f *fakeChannel) SetMuted(muted bool) { f.muted = muted }
func (f *fakeChannel) SetLoop(loop bool)   { f.loop = loop }
func (f *fakeChannel) Paused() bool        { return !f.playing }

type fakeBank struct {
	start, end, ambient *fakeChannel
}

func newFakeBank() fakeBank {
	return fakeBank{start: &fakeChannel{}, end: &fakeChannel{}, ambient: &fakeChannel{}}
}

func (b fakeBank) bank() audio.Bank {
	return audio.Bank{Start: b.start, End: b.end, Ambient: b.ambient}
}

var errDenied = errors.New("denied")

// fixedClock is a settable time source.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time { return c.t }

func newFixedClock() *fixedClock {
	return &fixedClock{t: time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)}
}

func newTestEngine(t *testing.T, repo Repository, bank audio.Bank, clk *fixedClock) *Engine {
	t.Helper()
	ids := 0
	e := New(repo, bank, Options{
		Now: clk.Now,
		NewID: func() string {
			ids++
			return "task-" + string(rune('a'+ids-1))
		},
		Logger: zerolog.Nop(),
	})
	t.Cleanup(e.Close)
	return e
}
