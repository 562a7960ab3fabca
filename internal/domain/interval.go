package domain

import (
	"slices"
	"time"
)

// Interval is a half-open time range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds an interval of the given length starting at start
func NewInterval(start time.Time, durationMinutes int) Interval {
	return Interval{Start: start, End: start.Add(time.Duration(durationMinutes) * time.Minute)}
}

// Overlaps reports whether the two ranges share any instant.
// Touching ranges (one ends exactly where the other starts) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// OverlapsAny reports whether i overlaps at least one of busy
func (i Interval) OverlapsAny(busy []Interval) bool {
	for _, b := range busy {
		if i.Overlaps(b) {
			return true
		}
	}
	return false
}

// Minutes returns the length of the interval in whole minutes
func (i Interval) Minutes() int {
	return int(i.End.Sub(i.Start) / time.Minute)
}

// SelectFreeStaff returns the first candidate (in ascending id order) whose busy
// intervals do not overlap iv. Deterministic for identical inputs.
func SelectFreeStaff(candidates []int64, busy map[int64][]Interval, iv Interval) (int64, bool) {
	ordered := slices.Clone(candidates)
	slices.Sort(ordered)

	for _, staffID := range ordered {
		if !iv.OverlapsAny(busy[staffID]) {
			return staffID, true
		}
	}
	return 0, false
}
