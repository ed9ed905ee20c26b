package entity

// TimeInterval is a [start, end) window expressed in minutes since midnight
// on a single calendar date. The date itself is carried by the owner of the
// interval; interval math is date-agnostic.
type TimeInterval struct {
	StartMinute int
	EndMinute   int
}

// Duration returns the interval length in minutes, clamped to zero for
// degenerate intervals.
func (t TimeInterval) Duration() int {
	if t.EndMinute <= t.StartMinute {
		return 0
	}
	return t.EndMinute - t.StartMinute
}

// Overlap computes the intersection of two intervals. Disjoint intervals
// yield a zero-duration result.
func (t TimeInterval) Overlap(other TimeInterval) TimeInterval {
	start := t.StartMinute
	if other.StartMinute > start {
		start = other.StartMinute
	}
	end := t.EndMinute
	if other.EndMinute < end {
		end = other.EndMinute
	}
	return TimeInterval{StartMinute: start, EndMinute: end}
}
