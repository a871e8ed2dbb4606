package engine

import (
	"sort"
	"time"
)

// Lifecycle event types.
const (
	EventStart  = "start"
	EventPause  = "pause"
	EventResume = "resume"
	EventStop   = "stop"
)

// Event is one lifecycle log entry.
type Event struct {
	Type string
	At   time.Time
}

// PauseIntervals folds a session's lifecycle log into the intervals during
// which the line was not producing for it. A pause opens an interval and a
// resume closes it. A stop closes any open pause, and the gap until a later
// start counts as paused. Anything still open is clipped at end.
func PauseIntervals(events []Event, end time.Time) []Interval {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At.Before(sorted[j].At) })

	var (
		out       []Interval
		pausedAt  *time.Time
		stoppedAt *time.Time
	)
	closeAt := func(open **time.Time, at time.Time) {
		if *open == nil {
			return
		}
		if at.After(**open) {
			out = append(out, Interval{Start: **open, End: at})
		}
		*open = nil
	}

	for _, ev := range sorted {
		at := ev.At
		switch ev.Type {
		case EventPause:
			if pausedAt == nil && stoppedAt == nil {
				pausedAt = &at
			}
		case EventResume:
			closeAt(&pausedAt, at)
		case EventStop:
			closeAt(&pausedAt, at)
			if stoppedAt == nil {
				stoppedAt = &at
			}
		case EventStart:
			closeAt(&stoppedAt, at)
		}
	}
	if pausedAt != nil && end.After(*pausedAt) {
		out = append(out, Interval{Start: *pausedAt, End: end})
	}
	if stoppedAt != nil && end.After(*stoppedAt) {
		out = append(out, Interval{Start: *stoppedAt, End: end})
	}
	return out
}

// FirstStart returns the instant of the first start event.
func FirstStart(events []Event) (time.Time, bool) {
	var (
		first time.Time
		found bool
	)
	for _, ev := range events {
		if ev.Type == EventStart && (!found || ev.At.Before(first)) {
			first, found = ev.At, true
		}
	}
	return first, found
}
