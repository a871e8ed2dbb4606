package engine

import "time"

// NetMinutes returns the working minutes in [start, end) net of shift breaks
// and pause intervals.
//
// A break occurrence is subtracted only when work began before it started;
// production that starts inside or after a break is not charged for it. The
// union of breaks and pauses is subtracted so no minute is removed twice.
func NetMinutes(start, end time.Time, shift *Shift, pauses []Interval) float64 {
	if !end.After(start) {
		return 0
	}

	var cut []Interval
	for _, occ := range shift.BreakOccurrences(start, end) {
		if !start.Before(occ.Start) {
			continue
		}
		if c, ok := occ.Clip(start, end); ok {
			cut = append(cut, c)
		}
	}
	for _, p := range pauses {
		if c, ok := p.Clip(start, end); ok {
			cut = append(cut, c)
		}
	}

	net := end.Sub(start) - unionDuration(cut)
	if net < 0 {
		return 0
	}
	return net.Minutes()
}
