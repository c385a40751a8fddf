package engine

import "time"

const (
	DefaultEventInterval = 10 * time.Second
	DefaultEventChance   = 0.3
)

// Clock tells the timer what time it is.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// ManualClock only moves when told to. Used by the simulator and in tests.
type ManualClock struct {
	T time.Time
}

func (c *ManualClock) Now() time.Time { return c.T }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// EventTimer periodically tries to start a random event.
// Every Interval it rolls against Chance, skipping the check while an event is already active.
type EventTimer struct {
	Interval time.Duration
	Chance   float64

	engine  *Engine
	rng     Rand
	clock   Clock
	last    time.Time
	stopped bool
}

// NewEventTimer starts a timer whose first check is due one interval from now.
// Non-positive interval or chance fall back to the defaults.
func NewEventTimer(e *Engine, interval time.Duration, chance float64, rng Rand, clock Clock) *EventTimer {
	if interval <= 0 {
		interval = DefaultEventInterval
	}
	if chance <= 0 {
		chance = DefaultEventChance
	}
	return &EventTimer{
		Interval: interval,
		Chance:   chance,
		engine:   e,
		rng:      rng,
		clock:    clock,
		last:     clock.Now(),
	}
}

// Due reports whether a check should run now.
func (t *EventTimer) Due() bool {
	if t.stopped {
		return false
	}
	return !t.clock.Now().Before(t.last.Add(t.Interval))
}

// Poll runs the periodic check if it is due and returns the possibly updated state.
// The bool is true when a new event became active.
func (t *EventTimer) Poll(s State) (State, bool) {
	if !t.Due() {
		return s, false
	}
	t.last = t.clock.Now()
	if s.Active != nil {
		return s, false
	}
	if t.rng.Float64() >= t.Chance {
		return s, false
	}
	return t.engine.RollEvent(s)
}

// Stop cancels the timer. A stopped timer never fires again.
func (t *EventTimer) Stop() { t.stopped = true }

// Stopped reports whether Stop has been called.
func (t *EventTimer) Stopped() bool { return t.stopped }
