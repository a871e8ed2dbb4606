package engine

import (
	"fmt"
	"sort"
	"time"

	pkgerrors "github.com/ThiagoScutari/sgp-costura/pkg/errors"
)

// Clock is a time of day in minutes after midnight.
type Clock int

// ParseClock parses "HH:MM".
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return 0, pkgerrors.New(pkgerrors.ErrInvalidInput, fmt.Sprintf("invalid time of day %q, expected HH:MM", s))
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) on(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, int(c)/60, int(c)%60, 0, 0, day.Location())
}

// BreakSpec is an unparsed break window.
type BreakSpec struct {
	Start string
	End   string
}

// BreakWindow is a daily break [Start, End).
type BreakWindow struct {
	Start Clock
	End   Clock
}

// Shift is a validated work-day calendar.
type Shift struct {
	Start    Clock
	End      Clock
	Location *time.Location
	Breaks   []BreakWindow // sorted, non-overlapping
}

// NewShift validates and builds a shift calendar. Breaks must lie inside the
// shift and must not overlap each other.
func NewShift(start, end, timezone string, breaks []BreakSpec) (*Shift, error) {
	s, err := ParseClock(start)
	if err != nil {
		return nil, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return nil, err
	}
	if s >= e {
		return nil, pkgerrors.New(pkgerrors.ErrInvalidInput, "shift start must be before shift end")
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.ErrInvalidInput, fmt.Sprintf("unknown timezone %q", timezone))
	}

	windows := make([]BreakWindow, 0, len(breaks))
	for _, b := range breaks {
		bs, err := ParseClock(b.Start)
		if err != nil {
			return nil, err
		}
		be, err := ParseClock(b.End)
		if err != nil {
			return nil, err
		}
		if bs >= be {
			return nil, pkgerrors.New(pkgerrors.ErrInvalidInput, fmt.Sprintf("break %s-%s: start must be before end", b.Start, b.End))
		}
		if bs < s || be > e {
			return nil, pkgerrors.New(pkgerrors.ErrInvalidInput, fmt.Sprintf("break %s-%s lies outside the shift", b.Start, b.End))
		}
		windows = append(windows, BreakWindow{Start: bs, End: be})
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i].Start < windows[j].Start })
	for i := 1; i < len(windows); i++ {
		if windows[i].Start < windows[i-1].End {
			return nil, pkgerrors.New(pkgerrors.ErrInvalidInput,
				fmt.Sprintf("breaks %s-%s and %s-%s overlap",
					windows[i-1].Start, windows[i-1].End, windows[i].Start, windows[i].End))
		}
	}

	return &Shift{Start: s, End: e, Location: loc, Breaks: windows}, nil
}

// BreakOccurrences lists every break occurrence on each calendar day touched
// by [from, to), in the shift timezone.
func (s *Shift) BreakOccurrences(from, to time.Time) []Interval {
	if s == nil || len(s.Breaks) == 0 || !to.After(from) {
		return nil
	}
	first := from.In(s.Location)
	last := to.In(s.Location)
	day := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, s.Location)
	lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, s.Location)

	var out []Interval
	for ; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		for _, b := range s.Breaks {
			out = append(out, Interval{Start: b.Start.on(day), End: b.End.on(day)})
		}
	}
	return out
}
