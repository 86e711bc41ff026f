package schedule

import "github.com/sismt/attendance-system/internal/core/domain"

// Classify maps a wall-clock time to the attendance window covering it.
// Windows are ordered by their marking-start boundaries, which partition
// the day: the first window whose [marking-start, next marking-start)
// range contains t wins, with an inclusive lower bound. The last window
// extends to the end of the day. Times before the first marking-start
// yield WindowNone. Windows without a MarkingStart are skipped.
func (c *Config) Classify(t TimeOfDay) domain.Window {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := domain.WindowNone
	for _, w := range domain.WindowOrder {
		b, ok := c.windows[w]
		if !ok || b.MarkingStart == nil {
			continue
		}
		if t < *b.MarkingStart {
			break
		}
		result = w
	}
	return result
}

// EvaluateStatus maps a (window, wall-clock time) pair to an attendance
// status using the current cutoffs.
//
// Entry windows: t <= on-time cutoff is on time; on-time < t <= late
// cutoff is late; past the late cutoff the registration is kept but
// flagged as an omission. A missing late cutoff disables the omission
// branch; a missing on-time cutoff yields the neutral status.
//
// Exit windows: t before the early-departure cutoff is an early
// departure, anything at or after it is on time. Leaving late is never
// penalized.
func (c *Config) EvaluateStatus(w domain.Window, t TimeOfDay) domain.Status {
	b, ok := c.Get(w)
	if !ok {
		return domain.StatusNone
	}

	if w.IsEntry() {
		if b.OnTimeCutoff == nil {
			return domain.StatusNone
		}
		if t <= *b.OnTimeCutoff {
			return domain.StatusOnTime
		}
		if b.LateCutoff != nil && t > *b.LateCutoff {
			return domain.StatusOmission
		}
		return domain.StatusLate
	}

	if w.Valid() {
		if b.EarlyDepartureCutoff != nil && t < *b.EarlyDepartureCutoff {
			return domain.StatusEarlyDeparture
		}
		return domain.StatusOnTime
	}

	return domain.StatusNone
}
