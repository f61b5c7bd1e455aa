package focus

import "testing"

func TestClockInitialState(t *testing.T) {
	c := NewClock(DefaultDurations())
	s := c.Session()
	if s.Mode != ModeFocus || s.TimeLeft != 1500 || s.Active {
		t.Fatalf("unexpected initial session: %+v", s)
	}
}

func TestDefaultDurations(t *testing.T) {
	d := DefaultDurations()
	if d.Of(ModeFocus) != 1500 || d.Of(ModeShortBreak) != 300 || d.Of(ModeLongBreak) != 900 {
		t.Fatalf("unexpected durations: %+v", d)
	}
}

func TestSwitchModeResetsAndPauses(t *testing.T) {
	d := DefaultDurations()
	for _, from := range Modes {
		for _, to := range Modes {
			c := NewClock(d)
			c.SwitchMode(from)
			c.StartPause()
			c.Tick(c.Generation())
			c.Tick(c.Generation())

			c.SwitchMode(to)
			if c.TimeLeft() != d.Of(to) {
				t.Fatalf("%s -> %s: timeLeft %d, want %d", from, to, c.TimeLeft(), d.Of(to))
			}
			if c.Active() {
				t.Fatalf("%s -> %s: should be paused", from, to)
			}
			if c.Mode() != to {
				t.Fatalf("mode = %s, want %s", c.Mode(), to)
			}
		}
	}
}

func TestStartPauseToggles(t *testing.T) {
	c := NewClock(DefaultDurations())
	c.StartPause()
	if !c.Active() {
		t.Fatal("should be running")
	}
	c.StartPause()
	if c.Active() {
		t.Fatal("should be paused")
	}
}

func TestResetKeepsMode(t *testing.T) {
	c := NewClock(DefaultDurations())
	c.SwitchMode(ModeLongBreak)
	c.StartPause()
	c.Tick(c.Generation())
	c.Reset()
	if c.Mode() != ModeLongBreak || c.TimeLeft() != 900 || c.Active() {
		t.Fatalf("unexpected session after reset: %+v", c.Session())
	}
}

func TestCountdownReachesZeroAndResets(t *testing.T) {
	c := NewClock(Durations{Focus: 3, ShortBreak: 2, LongBreak: 4})

	var seen []Session
	c.Observe(func(s Session) { seen = append(seen, s) })

	c.StartPause()
	gen := c.Generation()

	if !c.Tick(gen) || c.TimeLeft() != 2 {
		t.Fatalf("first tick: %+v", c.Session())
	}
	if !c.Tick(gen) || c.TimeLeft() != 1 {
		t.Fatalf("second tick: %+v", c.Session())
	}
	if !c.Tick(gen) {
		t.Fatal("third tick should apply")
	}
	if c.Active() || c.TimeLeft() != 3 {
		t.Fatalf("after completion: %+v", c.Session())
	}

	// start, 2, 1, zero, reset
	if len(seen) != 5 {
		t.Fatalf("expected 5 observations, got %d: %+v", len(seen), seen)
	}
	zero := seen[3]
	if zero.TimeLeft != 0 || zero.Active {
		t.Fatalf("expected zero observation, got %+v", zero)
	}
	if seen[4].TimeLeft != 3 || seen[4].Active {
		t.Fatalf("expected reset observation, got %+v", seen[4])
	}
	for _, s := range seen {
		if s.TimeLeft < 0 {
			t.Fatalf("timeLeft went negative: %+v", s)
		}
	}

	// The chain armed before completion is dead.
	if c.Tick(gen) {
		t.Fatal("tick after completion should be ignored")
	}
}

func TestTickIgnoredWhilePaused(t *testing.T) {
	c := NewClock(DefaultDurations())
	if c.Tick(c.Generation()) {
		t.Fatal("paused clock should ignore ticks")
	}
	if c.TimeLeft() != 1500 {
		t.Fatalf("timeLeft changed: %d", c.TimeLeft())
	}
}

func TestStaleGenerationIgnored(t *testing.T) {
	c := NewClock(DefaultDurations())
	c.StartPause()
	old := c.Generation()

	c.StartPause() // pause
	c.StartPause() // resume: a new chain is armed

	if c.Tick(old) {
		t.Fatal("tick from the first chain should be ignored")
	}
	if c.TimeLeft() != 1500 {
		t.Fatalf("stale tick changed timeLeft: %d", c.TimeLeft())
	}
	if !c.Tick(c.Generation()) || c.TimeLeft() != 1499 {
		t.Fatalf("current tick should apply: %+v", c.Session())
	}
}

func TestSwitchModeCancelsArmedTick(t *testing.T) {
	c := NewClock(DefaultDurations())
	c.StartPause()
	gen := c.Generation()

	c.SwitchMode(ModeShortBreak)
	c.StartPause()
	if c.Tick(gen) {
		t.Fatal("tick armed before switch should be ignored")
	}
	if c.TimeLeft() != 300 {
		t.Fatalf("timeLeft = %d, want 300", c.TimeLeft())
	}
}

func TestStopInvalidatesTick(t *testing.T) {
	c := NewClock(DefaultDurations())
	c.StartPause()
	gen := c.Generation()
	c.Stop()
	if c.Active() {
		t.Fatal("stop should pause")
	}
	if c.Tick(gen) {
		t.Fatal("tick after stop should be ignored")
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"focus":      ModeFocus,
		"short":      ModeShortBreak,
		"shortBreak": ModeShortBreak,
		"long_break": ModeLongBreak,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %s, %v", in, got, err)
		}
	}
	if _, err := ParseMode("nap"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
