package allocation

import "time"

// CheckCapacity verifies that adding percentage over [start,end] keeps the
// engineer at or under 100% for every instant in the range. existing is the
// engineer's full allocation set; excludeID removes the allocation being
// updated so its prior footprint does not count against itself.
//
// The check is deliberately conservative: any overlap, however brief, counts
// the full percentage of the overlapping allocation. Percentages are never
// prorated by the fraction of days shared.
//
// Returns the overlap set alongside a *CapacityError when the budget is
// exceeded.
func CheckCapacity(existing []Allocation, engineerID string, percentage int, start time.Time, end *time.Time, excludeID string) ([]Allocation, error) {
	overlapping := Overlapping(existing, start, end, excludeID)

	committed := 0
	for _, a := range overlapping {
		committed += a.Percentage
	}

	if committed+percentage > 100 {
		conflicting := make([]string, 0, len(overlapping))
		for _, a := range overlapping {
			conflicting = append(conflicting, a.ID)
		}
		return overlapping, &CapacityError{
			EngineerID:  engineerID,
			Requested:   percentage,
			Committed:   committed,
			Conflicting: conflicting,
		}
	}

	return overlapping, nil
}
