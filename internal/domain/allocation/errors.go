package allocation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAllocationNotFound indicates the allocation doesn't exist.
	ErrAllocationNotFound = errors.New("allocation not found")
)

// ReferenceKind names the entity a dangling reference points at.
type ReferenceKind string

const (
	KindEngineer ReferenceKind = "engineer"
	KindProject  ReferenceKind = "project"
)

// ReferenceError reports an allocation referencing a nonexistent engineer or
// project. Kind says which, ID carries the offending identifier.
type ReferenceError struct {
	Kind ReferenceKind
	ID   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// ValidationError reports invalid input: percentage out of [1,100], a start
// date after the end date, or an unparseable date string.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CapacityError reports that an allocation would push an engineer past 100%
// for some instant inside the candidate range.
type CapacityError struct {
	EngineerID  string
	Requested   int      // candidate percentage
	Committed   int      // sum of overlapping allocations
	Conflicting []string // IDs of the overlapping allocations
}

// Overcommit is the amount by which the request exceeds the budget.
func (e *CapacityError) Overcommit() int {
	return e.Requested + e.Committed - 100
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf(
		"engineer %q over capacity: %d%% committed during this window, adding %d%% exceeds 100%% by %d (conflicts: %s)",
		e.EngineerID, e.Committed, e.Requested, e.Overcommit(), strings.Join(e.Conflicting, ", "),
	)
}

// DuplicateAllocationError reports an engineer already allocated to the same
// project over an overlapping range.
type DuplicateAllocationError struct {
	ExistingID string
	ProjectID  string
	Range      string
}

func (e *DuplicateAllocationError) Error() string {
	return fmt.Sprintf("engineer already allocated to project %q from %s (allocation %s)", e.ProjectID, e.Range, e.ExistingID)
}
