package allocation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/planlane/staffing-mcp/internal/domain/audit"
	"github.com/planlane/staffing-mcp/internal/repository/repoerrors"
)

// Auditor receives entries describing successful mutations.
type Auditor interface {
	Log(ctx context.Context, entry *audit.Entry)
}

// Service enforces the allocation invariants: reference validity, date
// ordering, the 1..100 percentage range, and the 100%-per-instant capacity
// rule per engineer.
type Service struct {
	allocations Repository
	engineers   EngineerRepository
	projects    ProjectRepository
	auditor     Auditor
	logger      *slog.Logger
	locks       *engineerLocks
}

// NewService creates a new allocation service. auditor may be nil.
func NewService(allocations Repository, engineers EngineerRepository, projects ProjectRepository, auditor Auditor, logger *slog.Logger) *Service {
	return &Service{
		allocations: allocations,
		engineers:   engineers,
		projects:    projects,
		auditor:     auditor,
		logger:      logger,
		locks:       newEngineerLocks(),
	}
}

// AllocateRequest describes an allocation creation request. Dates are raw
// YYYY-MM-DD strings; an empty StartDate defaults to today, an empty EndDate
// means open-ended.
type AllocateRequest struct {
	EngineerID string
	ProjectID  string
	Percentage int
	StartDate  string
	EndDate    string
}

// UpdateRequest describes a partial allocation update. Nil (or empty-string)
// fields keep their current values.
type UpdateRequest struct {
	ID         string
	Percentage *int
	StartDate  *string
	EndDate    *string
}

// List returns every allocation, unfiltered.
func (s *Service) List(ctx context.Context) ([]Allocation, error) {
	return s.allocations.List(ctx)
}

// ListActive returns the allocations whose range covers the given day.
func (s *Service) ListActive(ctx context.Context, day time.Time) ([]Allocation, error) {
	all, err := s.allocations.List(ctx)
	if err != nil {
		return nil, err
	}
	var active []Allocation
	for _, a := range all {
		if a.ActiveOn(day) {
			active = append(active, a)
		}
	}
	return active, nil
}

// Get returns an allocation by ID.
func (s *Service) Get(ctx context.Context, id string) (*Allocation, error) {
	alloc, err := s.allocations.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repoerrors.ErrNotFound) {
			return nil, ErrAllocationNotFound
		}
		return nil, fmt.Errorf("getting allocation: %w", err)
	}
	return alloc, nil
}

// ListByEngineer returns an engineer's allocations.
func (s *Service) ListByEngineer(ctx context.Context, engineerID string) ([]Allocation, error) {
	if _, err := s.engineers.Get(ctx, engineerID); err != nil {
		if errors.Is(err, repoerrors.ErrNotFound) {
			return nil, &ReferenceError{Kind: KindEngineer, ID: engineerID}
		}
		return nil, fmt.Errorf("checking engineer: %w", err)
	}
	return s.allocations.ListByEngineer(ctx, engineerID)
}

// ListByProject returns a project's allocations.
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Allocation, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		if errors.Is(err, repoerrors.ErrNotFound) {
			return nil, &ReferenceError{Kind: KindProject, ID: projectID}
		}
		return nil, fmt.Errorf("checking project: %w", err)
	}
	return s.allocations.ListByProject(ctx, projectID)
}

// Availability reports how an engineer's time is committed on one day.
type Availability struct {
	EngineerID  string
	Day         time.Time
	Allocated   int
	Available   int
	Allocations []Allocation
}

// AvailabilityOn computes the committed and free percentage for an engineer
// on the given day, derived from the overlap set for that single-day range.
func (s *Service) AvailabilityOn(ctx context.Context, engineerID string, day time.Time) (*Availability, error) {
	existing, err := s.ListByEngineer(ctx, engineerID)
	if err != nil {
		return nil, err
	}

	covering := Overlapping(existing, day, &day, "")
	allocated := 0
	for _, a := range covering {
		allocated += a.Percentage
	}

	return &Availability{
		EngineerID:  engineerID,
		Day:         day,
		Allocated:   allocated,
		Available:   100 - allocated,
		Allocations: covering,
	}, nil
}

// Allocate creates a new allocation after validating the percentage, the
// date range, both references, and the capacity invariant. The store is only
// touched when every check passes.
func (s *Service) Allocate(ctx context.Context, req AllocateRequest) (*Allocation, error) {
	if err := ValidatePercentage(req.Percentage); err != nil {
		return nil, err
	}

	start := Today()
	if req.StartDate != "" {
		parsed, err := parseOptionalDate("start_date", req.StartDate)
		if err != nil {
			return nil, err
		}
		start = *parsed
	}
	end, err := parseOptionalDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := ValidateDateOrder(start, end); err != nil {
		return nil, err
	}

	lock := s.locks.forEngineer(req.EngineerID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.validateReferences(ctx, req.EngineerID, req.ProjectID); err != nil {
		return nil, err
	}

	existing, err := s.allocations.ListByEngineer(ctx, req.EngineerID)
	if err != nil {
		return nil, fmt.Errorf("loading allocations: %w", err)
	}

	overlapping, err := CheckCapacity(existing, req.EngineerID, req.Percentage, start, end, "")
	if err != nil {
		return nil, err
	}
	if dup := findDuplicate(overlapping, req.ProjectID); dup != nil {
		return nil, dup
	}

	now := time.Now()
	alloc := &Allocation{
		ID:         "alloc-" + uuid.NewString(),
		EngineerID: req.EngineerID,
		ProjectID:  req.ProjectID,
		Percentage: req.Percentage,
		StartDate:  start,
		EndDate:    end,
		CreatedAt:  now,
		ModifiedAt: now,
	}

	if err := s.allocations.Insert(ctx, alloc); err != nil {
		return nil, fmt.Errorf("inserting allocation: %w", err)
	}

	if s.auditor != nil {
		s.auditor.Log(ctx, &audit.Entry{
			AllocationID: alloc.ID,
			EngineerID:   alloc.EngineerID,
			ProjectID:    alloc.ProjectID,
			Action:       audit.ActionAllocated,
			Summary:      fmt.Sprintf("allocated %d%% from %s", alloc.Percentage, alloc.RangeString()),
		})
	}

	return alloc, nil
}

// Update applies a partial update to an existing allocation. Effective
// values are the union of supplied fields and current ones; the capacity
// check runs against the effective range with the allocation's own prior
// footprint excluded. The stored record is replaced only when every check
// passes.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Allocation, error) {
	current, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.forEngineer(current.EngineerID)
	lock.Lock()
	defer lock.Unlock()

	// Reload under the lock: a concurrent update may have landed between the
	// initial read and lock acquisition.
	current, err = s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	effective := *current
	if req.Percentage != nil {
		effective.Percentage = *req.Percentage
	}
	if req.StartDate != nil && *req.StartDate != "" {
		parsed, err := parseOptionalDate("start_date", *req.StartDate)
		if err != nil {
			return nil, err
		}
		effective.StartDate = *parsed
	}
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, err := parseOptionalDate("end_date", *req.EndDate)
		if err != nil {
			return nil, err
		}
		effective.EndDate = parsed
	}

	if err := ValidatePercentage(effective.Percentage); err != nil {
		return nil, err
	}
	if err := ValidateDateOrder(effective.StartDate, effective.EndDate); err != nil {
		return nil, err
	}

	existing, err := s.allocations.ListByEngineer(ctx, current.EngineerID)
	if err != nil {
		return nil, fmt.Errorf("loading allocations: %w", err)
	}

	overlapping, err := CheckCapacity(existing, current.EngineerID, effective.Percentage, effective.StartDate, effective.EndDate, current.ID)
	if err != nil {
		return nil, err
	}
	if dup := findDuplicate(overlapping, current.ProjectID); dup != nil {
		return nil, dup
	}

	effective.ModifiedAt = time.Now()
	if err := s.allocations.Replace(ctx, &effective); err != nil {
		if errors.Is(err, repoerrors.ErrNotFound) {
			return nil, ErrAllocationNotFound
		}
		return nil, fmt.Errorf("replacing allocation: %w", err)
	}

	if s.auditor != nil {
		s.auditor.Log(ctx, &audit.Entry{
			AllocationID: effective.ID,
			EngineerID:   effective.EngineerID,
			ProjectID:    effective.ProjectID,
			Action:       audit.ActionUpdated,
			Summary:      fmt.Sprintf("updated to %d%% from %s", effective.Percentage, effective.RangeString()),
		})
	}

	return &effective, nil
}

// validateReferences checks the engineer first, then the project, failing
// fast on the first missing reference.
func (s *Service) validateReferences(ctx context.Context, engineerID, projectID string) error {
	if _, err := s.engineers.Get(ctx, engineerID); err != nil {
		if errors.Is(err, repoerrors.ErrNotFound) {
			return &ReferenceError{Kind: KindEngineer, ID: engineerID}
		}
		return fmt.Errorf("checking engineer: %w", err)
	}
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		if errors.Is(err, repoerrors.ErrNotFound) {
			return &ReferenceError{Kind: KindProject, ID: projectID}
		}
		return fmt.Errorf("checking project: %w", err)
	}
	return nil
}

func findDuplicate(overlapping []Allocation, projectID string) *DuplicateAllocationError {
	for _, a := range overlapping {
		if a.ProjectID == projectID {
			return &DuplicateAllocationError{
				ExistingID: a.ID,
				ProjectID:  a.ProjectID,
				Range:      a.RangeString(),
			}
		}
	}
	return nil
}
