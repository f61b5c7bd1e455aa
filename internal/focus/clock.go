package focus

// Session is a snapshot of the countdown state.
type Session struct {
	Mode     Mode
	TimeLeft int // seconds
	Active   bool
}

// Clock is the session countdown. It never schedules anything itself: the
// driver arms a one-second tick tagged with Generation whenever the clock is
// active and delivers it back through Tick. The generation advances on every
// activity change, mode switch, reset and completion, so a tick armed before
// any of those is discarded instead of driving the countdown a second time.
type Clock struct {
	durations Durations
	mode      Mode
	timeLeft  int
	active    bool
	gen       uint64

	observer func(Session)
}

// NewClock returns a paused clock in focus mode at full duration.
func NewClock(d Durations) *Clock {
	return &Clock{
		durations: d,
		mode:      ModeFocus,
		timeLeft:  d.Of(ModeFocus),
	}
}

// Observe registers the single function notified after every state change.
func (c *Clock) Observe(fn func(Session)) {
	c.observer = fn
}

func (c *Clock) Session() Session {
	return Session{Mode: c.mode, TimeLeft: c.timeLeft, Active: c.active}
}

func (c *Clock) Mode() Mode         { return c.mode }
func (c *Clock) TimeLeft() int      { return c.timeLeft }
func (c *Clock) Active() bool       { return c.active }
func (c *Clock) Generation() uint64 { return c.gen }
func (c *Clock) Durations() Durations {
	return c.durations
}

// Duration is the full length of the current mode in seconds.
func (c *Clock) Duration() int {
	return c.durations.Of(c.mode)
}

// SwitchMode selects m, resets the countdown to its full duration and pauses.
func (c *Clock) SwitchMode(m Mode) {
	if !m.Valid() {
		m = ModeFocus
	}
	c.mode = m
	c.timeLeft = c.durations.Of(m)
	c.setActive(false)
	c.notify()
}

// StartPause toggles between running and paused.
func (c *Clock) StartPause() {
	c.setActive(!c.active)
	c.notify()
}

// Reset restores the full duration of the current mode and pauses.
func (c *Clock) Reset() {
	c.timeLeft = c.Duration()
	c.setActive(false)
	c.notify()
}

// Stop pauses the clock and invalidates any armed tick without touching the
// remaining time. Used on teardown.
func (c *Clock) Stop() {
	if !c.active {
		c.gen++
		return
	}
	c.setActive(false)
	c.notify()
}

// Tick advances the countdown by one second if gen matches the current
// generation and the clock is running. It reports whether the tick was
// applied. Reaching zero publishes the zero state, then auto-resets to the
// full duration in the paused state.
func (c *Clock) Tick(gen uint64) bool {
	if !c.active || gen != c.gen {
		return false
	}

	if c.timeLeft-1 > 0 {
		c.timeLeft--
		c.notify()
		return true
	}

	c.timeLeft = 0
	c.setActive(false)
	c.notify()

	c.timeLeft = c.Duration()
	c.notify()
	return true
}

func (c *Clock) setActive(v bool) {
	c.active = v
	c.gen++
}

func (c *Clock) notify() {
	if c.observer != nil {
		c.observer(c.Session())
	}
}
