package allocation

import "time"

// ValidatePercentage enforces the 1..100 inclusive range.
func ValidatePercentage(pct int) error {
	if pct < 1 || pct > 100 {
		return &ValidationError{Field: "percentage", Reason: "must be between 1 and 100"}
	}
	return nil
}

// ValidateDateOrder enforces startDate <= endDate when an end is present.
// Equal dates are a valid one-day allocation.
func ValidateDateOrder(start time.Time, end *time.Time) error {
	if end != nil && start.After(*end) {
		return &ValidationError{Field: "end_date", Reason: "must not be before start date"}
	}
	return nil
}

// parseOptionalDate parses a YYYY-MM-DD string, treating "" as absent.
func parseOptionalDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	day, err := ParseDate(raw)
	if err != nil {
		return nil, &ValidationError{Field: field, Reason: "must be a YYYY-MM-DD date"}
	}
	return &day, nil
}
