// Package focus implements the focus timer: the session countdown, the cue
// rules that react to it, and the bonds task list credited on completion.
package focus

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/sadopc/hashira/internal/audio"
	"github.com/sadopc/hashira/internal/store"
)

// Repository is the persistence the engine needs. *store.Store satisfies it.
type Repository interface {
	TaskRepository
	StatsRepository
	LoadStats(today string) store.DailyStats
	LoadTasks() []store.Task
	LoadActiveTaskID() string
	LogFocus(rec store.FocusRecord) (*store.FocusRecord, error)
}

type Options struct {
	Durations Durations
	Volumes   Volumes
	Muted     bool
	Now       func() time.Time
	NewID     func() string
	Logger    zerolog.Logger
}

// Completion describes one finished focus session.
type Completion struct {
	Date       string
	Count      int
	TaskID     string
	TaskText   string
	FocusCount int
}

// Engine owns all timer and task state. It is single threaded: callers must
// not use it from more than one goroutine.
type Engine struct {
	repo   Repository
	clock  *Clock
	tasks  *TaskStore
	stats  *Stats
	cues   *CueDispatcher
	muted  bool
	now    func() time.Time
	logger zerolog.Logger

	pending *Completion
}

// New loads the persisted stats, tasks and active task once and wires the
// clock to the cue rules.
func New(repo Repository, bank audio.Bank, opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Durations == (Durations{}) {
		opts.Durations = DefaultDurations()
	}
	if opts.Volumes == (Volumes{}) {
		opts.Volumes = DefaultVolumes()
	}
	if bank.Start == nil || bank.End == nil || bank.Ambient == nil {
		bank = audio.SilentBank()
	}

	e := &Engine{
		repo:   repo,
		clock:  NewClock(opts.Durations),
		muted:  opts.Muted,
		now:    opts.Now,
		logger: opts.Logger.With().Str("component", "engine").Logger(),
	}

	today := opts.Now().Format(dateLayout)
	e.stats = NewStats(repo, repo.LoadStats(today), opts.Now, opts.Logger)
	e.tasks = NewTaskStore(repo, repo.LoadTasks(), repo.LoadActiveTaskID(), opts.Logger)
	if opts.NewID != nil {
		e.tasks.newID = opts.NewID
	}

	e.cues = NewCueDispatcher(bank, e.snapshot(), e.complete, opts.Logger)
	e.cues.SetVolumes(opts.Volumes)
	e.clock.Observe(func(Session) { e.cues.Observe(e.snapshot()) })

	e.logger.Debug().
		Str("date", today).
		Int("tasks", e.tasks.Len()).
		Str("active", e.tasks.ActiveID()).
		Msg("engine loaded")
	return e
}

func (e *Engine) snapshot() Snapshot {
	s := e.clock.Session()
	return Snapshot{Mode: s.Mode, TimeLeft: s.TimeLeft, Active: s.Active, Muted: e.muted}
}

// --- Timer ---

func (e *Engine) Session() Session        { return e.clock.Session() }
func (e *Engine) Mode() Mode              { return e.clock.Mode() }
func (e *Engine) TimeLeft() int           { return e.clock.TimeLeft() }
func (e *Engine) Active() bool            { return e.clock.Active() }
func (e *Engine) Generation() uint64      { return e.clock.Generation() }
func (e *Engine) Duration() int           { return e.clock.Duration() }
func (e *Engine) Durations() Durations    { return e.clock.Durations() }
func (e *Engine) Muted() bool             { return e.muted }
func (e *Engine) Volumes() Volumes        { return e.cues.Volumes() }
func (e *Engine) SetVolumes(v Volumes)    { e.cues.SetVolumes(v) }
func (e *Engine) Stats() store.DailyStats { return e.stats.Current() }

func (e *Engine) SwitchMode(m Mode) { e.clock.SwitchMode(m) }
func (e *Engine) StartPause()       { e.clock.StartPause() }
func (e *Engine) Reset()            { e.clock.Reset() }

// Tick applies a countdown tick armed at generation gen. It reports whether
// the tick was current and, when it finished a focus session, what was
// credited.
func (e *Engine) Tick(gen uint64) (bool, *Completion) {
	e.pending = nil
	applied := e.clock.Tick(gen)
	done := e.pending
	e.pending = nil
	return applied, done
}

func (e *Engine) SetMuted(muted bool) {
	if e.muted == muted {
		return
	}
	e.muted = muted
	e.cues.Observe(e.snapshot())
}

func (e *Engine) ToggleMute() {
	e.SetMuted(!e.muted)
}

// complete is the bookkeeping run when a focus countdown reaches zero.
func (e *Engine) complete() {
	stats := e.stats.Increment()
	c := Completion{Date: stats.Date, Count: stats.Count}

	if task, ok := e.tasks.CreditActive(); ok {
		c.TaskID = task.ID
		c.TaskText = task.Text
		c.FocusCount = task.FocusCount
	}

	rec := store.FocusRecord{
		Date:        stats.Date,
		TaskID:      c.TaskID,
		TaskText:    c.TaskText,
		Duration:    e.clock.Durations().Focus,
		CompletedAt: e.now(),
	}
	if _, err := e.repo.LogFocus(rec); err != nil {
		e.logger.Error().Err(err).Msg("log focus session")
	}

	e.logger.Info().
		Str("date", c.Date).
		Int("count", c.Count).
		Str("task", c.TaskID).
		Msg("focus session complete")
	e.pending = &c
}

// --- Bonds ---

func (e *Engine) Tasks() []store.Task  { return e.tasks.Tasks() }
func (e *Engine) ActiveTaskID() string { return e.tasks.ActiveID() }
func (e *Engine) EditingID() string    { return e.tasks.EditingID() }

func (e *Engine) ActiveTask() (store.Task, bool) {
	return e.tasks.Task(e.tasks.ActiveID())
}

func (e *Engine) AddTask(text string) (store.Task, bool) { return e.tasks.Add(text) }
func (e *Engine) ToggleTask(id string)                   { e.tasks.ToggleCompleted(id) }
func (e *Engine) SetActiveTask(id string)                { e.tasks.SetActive(id) }
func (e *Engine) DeleteTask(id string)                   { e.tasks.Delete(id) }
func (e *Engine) ClearCompleted() int                    { return e.tasks.ClearCompleted() }
func (e *Engine) StartEdit(id string) bool               { return e.tasks.StartEdit(id) }
func (e *Engine) SubmitEdit(id, text string)             { e.tasks.SubmitEdit(id, text) }
func (e *Engine) CancelEdit()                            { e.tasks.CancelEdit() }

// Close stops the countdown, invalidating any armed tick, and silences all
// cues.
func (e *Engine) Close() {
	e.clock.Stop()
	e.cues.Close()
}
