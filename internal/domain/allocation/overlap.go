package allocation

import "time"

// unboundedEnd stands in for a missing end date inside range comparisons.
// It never leaves this file; callers only ever see nil end dates.
var unboundedEnd = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// Overlaps reports whether the inclusive ranges [s1,e1] and [s2,e2] share at
// least one calendar day. A nil end is treated as extending indefinitely.
func Overlaps(s1 time.Time, e1 *time.Time, s2 time.Time, e2 *time.Time) bool {
	end1 := unboundedEnd
	if e1 != nil {
		end1 = *e1
	}
	end2 := unboundedEnd
	if e2 != nil {
		end2 = *e2
	}
	return !s1.After(end2) && !s2.After(end1)
}

// Overlapping returns the allocations whose ranges overlap [start,end],
// excluding the allocation with excludeID (pass "" to exclude nothing).
// Purely range-vs-range: the date of evaluation plays no part.
func Overlapping(allocs []Allocation, start time.Time, end *time.Time, excludeID string) []Allocation {
	var out []Allocation
	for _, a := range allocs {
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		if Overlaps(a.StartDate, a.EndDate, start, end) {
			out = append(out, a)
		}
	}
	return out
}
