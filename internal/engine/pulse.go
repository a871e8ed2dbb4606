package engine

import "time"

// ReferenceStart picks the instant a batch's cycle is measured from: the
// checkout of the preceding batch, else the latest checkout of the session,
// else the session's first start, else its creation time. Callers pass a nil
// latest for the first batch.
func ReferenceStart(previous, latest, firstStart *time.Time, createdAt time.Time) time.Time {
	switch {
	case previous != nil:
		return *previous
	case latest != nil:
		return *latest
	case firstStart != nil:
		return *firstStart
	default:
		return createdAt
	}
}

// Delayed reports whether more wall-clock time than one pulse has passed.
func Delayed(reference, now time.Time, pulseMinutes int) bool {
	return now.Sub(reference) > time.Duration(pulseMinutes)*time.Minute
}

// CycleElapsed is the time spent on the current cycle. While the line is
// paused the clock stands still at pausedAt.
func CycleElapsed(cycleStart, now time.Time, pausedAt *time.Time) time.Duration {
	stop := now
	if pausedAt != nil && pausedAt.Before(now) {
		stop = *pausedAt
	}
	if !stop.After(cycleStart) {
		return 0
	}
	return stop.Sub(cycleStart)
}
