// Package interval provides half-open time interval predicates used by the
// room booking engine. All intervals are [start, end): the end instant is
// excluded, so back-to-back bookings that share a boundary do not collide.
package interval

import "time"

// IsValid reports whether [start, end) is a well-formed interval.
// Zero-length intervals are invalid.
func IsValid(start, end time.Time) bool {
	return start.Before(end)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share any
// instant: aStart < bEnd AND bStart < aEnd.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Contains reports whether t falls within [start, end).
func Contains(start, end, t time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
