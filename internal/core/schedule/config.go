package schedule

import (
	"sync"

	"github.com/sismt/attendance-system/internal/core/domain"
)

// Boundaries holds the named cutoffs of one attendance window. Any subset
// may be set; a nil cutoff disables the corresponding classification branch
// (for example, a window without EarlyDepartureCutoff can never yield an
// early-departure status). Boundaries are not validated for chronological
// order: a late cutoff earlier than the on-time cutoff produces inconsistent
// classifications and is the operator's responsibility.
type Boundaries struct {
	MarkingStart         *TimeOfDay `json:"marking_start,omitempty"`
	NominalStart         *TimeOfDay `json:"nominal_start,omitempty"`
	OnTimeCutoff         *TimeOfDay `json:"on_time_cutoff,omitempty"`
	LateCutoff           *TimeOfDay `json:"late_cutoff,omitempty"`
	EarlyDepartureCutoff *TimeOfDay `json:"early_departure_cutoff,omitempty"`
}

// Config is the process-wide mutable schedule. Reads happen on every
// classification and status evaluation; writes only through the
// administrative update operation. Updates replace a window's boundaries
// atomically and take effect on the next evaluation call.
type Config struct {
	mu      sync.RWMutex
	windows map[domain.Window]Boundaries
}

// NewConfig returns an empty schedule with no windows configured.
func NewConfig() *Config {
	return &Config{windows: make(map[domain.Window]Boundaries)}
}

// Default returns the schedule the system ships with: a split shift with
// morning and afternoon entry/exit windows.
func Default() *Config {
	tod := func(h, m int) *TimeOfDay {
		t := At(h, m)
		return &t
	}
	c := NewConfig()
	c.Set(domain.WindowMorningEntry, Boundaries{
		MarkingStart: tod(6, 0),
		NominalStart: tod(8, 0),
		OnTimeCutoff: tod(8, 15),
		LateCutoff:   tod(8, 30),
	})
	c.Set(domain.WindowMorningExit, Boundaries{
		MarkingStart:         tod(12, 30),
		EarlyDepartureCutoff: tod(13, 30),
	})
	c.Set(domain.WindowAfternoonEntry, Boundaries{
		MarkingStart: tod(14, 0),
		NominalStart: tod(14, 0),
		OnTimeCutoff: tod(14, 15),
		LateCutoff:   tod(14, 30),
	})
	c.Set(domain.WindowAfternoonExit, Boundaries{
		MarkingStart:         tod(17, 30),
		EarlyDepartureCutoff: tod(18, 0),
	})
	return c
}

// Get returns the boundaries for a window and whether it is configured.
func (c *Config) Get(w domain.Window) (Boundaries, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.windows[w]
	return b, ok
}

// Set replaces the boundaries for a window. Last write wins; concurrent
// readers observe either the old or the new value, never a partial one.
func (c *Config) Set(w domain.Window, b Boundaries) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.windows[w] = b
}

// Snapshot returns a copy of every configured window.
func (c *Config) Snapshot() map[domain.Window]Boundaries {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[domain.Window]Boundaries, len(c.windows))
	for w, b := range c.windows {
		out[w] = b
	}
	return out
}
