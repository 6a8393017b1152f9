package allocation

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Allocation assigns a percentage of one engineer's time to one project over
// a date range. Both bounds are inclusive calendar days; a nil EndDate means
// the allocation is open-ended.
type Allocation struct {
	ID         string     `json:"id"`
	EngineerID string     `json:"engineer_id"`
	ProjectID  string     `json:"project_id"`
	Percentage int        `json:"percentage"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt time.Time  `json:"modified_at"`
}

// ActiveOn reports whether the allocation's range covers the given day.
func (a *Allocation) ActiveOn(day time.Time) bool {
	return Overlaps(a.StartDate, a.EndDate, day, &day)
}

// RangeString renders the allocation's range for diagnostics.
func (a *Allocation) RangeString() string {
	if a.EndDate == nil {
		return fmt.Sprintf("%s onward", a.StartDate.Format(DateLayout))
	}
	return fmt.Sprintf("%s to %s", a.StartDate.Format(DateLayout), a.EndDate.Format(DateLayout))
}

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight time.
func ParseDate(s string) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return day, nil
}

// Today returns the current calendar day at UTC midnight. It is the default
// start date for new allocations when none is supplied.
func Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
