package prefilter

import "sync/atomic"

// Tracker watches how often a prefilter actually rejects texts and switches
// it off when it rarely does, since a scan that always passes only adds cost
// in front of the automaton.
//
// Tracker is safe for concurrent use.
type Tracker struct {
	checks  atomic.Uint64
	rejects atomic.Uint64
	off     atomic.Bool

	config TrackerConfig
}

// TrackerConfig tunes when a Tracker gives up on its prefilter.
type TrackerConfig struct {
	// WarmupPeriod is the number of checks before the prefilter may be
	// switched off.
	WarmupPeriod uint64

	// CheckInterval is the number of checks between efficiency reviews.
	CheckInterval uint64

	// MinEfficiency is the smallest acceptable share of checks that end
	// in a rejection, between 0 and 1.
	MinEfficiency float64
}

// DefaultTrackerConfig returns the default tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		WarmupPeriod:  128,
		CheckInterval: 64,
		MinEfficiency: 0.1,
	}
}

// NewTracker creates an active Tracker.
func NewTracker(config TrackerConfig) *Tracker {
	if config.CheckInterval == 0 {
		config.CheckInterval = 1
	}
	return &Tracker{config: config}
}

// Active reports whether the prefilter should still be consulted.
func (t *Tracker) Active() bool {
	return !t.off.Load()
}

// Record notes the outcome of one prefilter check.
func (t *Tracker) Record(rejected bool) {
	n := t.checks.Add(1)
	if rejected {
		t.rejects.Add(1)
	}
	if n < t.config.WarmupPeriod || n%t.config.CheckInterval != 0 {
		return
	}
	if t.efficiency() < t.config.MinEfficiency {
		t.off.Store(true)
	}
}

func (t *Tracker) efficiency() float64 {
	checks := t.checks.Load()
	if checks == 0 {
		return 1
	}
	return float64(t.rejects.Load()) / float64(checks)
}

// Stats returns the counters and whether the prefilter is still active.
func (t *Tracker) Stats() (checks, rejects uint64, active bool) {
	return t.checks.Load(), t.rejects.Load(), t.Active()
}

// Reset clears the counters and reactivates the prefilter.
func (t *Tracker) Reset() {
	t.checks.Store(0)
	t.rejects.Store(0)
	t.off.Store(false)
}
