package engine

import (
	"sort"
	"time"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration of the interval, zero when empty.
func (iv Interval) Duration() time.Duration {
	if !iv.End.After(iv.Start) {
		return 0
	}
	return iv.End.Sub(iv.Start)
}

// Clip restricts iv to [from, to). ok is false when nothing is left.
func (iv Interval) Clip(from, to time.Time) (Interval, bool) {
	if iv.Start.Before(from) {
		iv.Start = from
	}
	if iv.End.After(to) {
		iv.End = to
	}
	return iv, iv.End.After(iv.Start)
}

// unionDuration sums the covered time of ivs, counting overlaps once.
func unionDuration(ivs []Interval) time.Duration {
	if len(ivs) == 0 {
		return 0
	}
	sorted := make([]Interval, len(ivs))
	copy(sorted, ivs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	var total time.Duration
	cur := sorted[0]
	for _, iv := range sorted[1:] {
		if iv.Start.After(cur.End) {
			total += cur.Duration()
			cur = iv
			continue
		}
		if iv.End.After(cur.End) {
			cur.End = iv.End
		}
	}
	return total + cur.Duration()
}
