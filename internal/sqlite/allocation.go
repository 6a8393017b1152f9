package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/planlane/staffing-mcp/internal/domain/allocation"
	"github.com/planlane/staffing-mcp/internal/repository"
)

// AllocationRepository implements repository.AllocationRepository for SQLite
type AllocationRepository struct {
	db *DB
}

// NewAllocationRepository creates a new AllocationRepository
func NewAllocationRepository(db *DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

const allocationColumns = `
	id, engineer_id, project_id, percentage,
	start_date, end_date, created_at, modified_at
`

func scanAllocation(scan func(dest ...any) error) (*allocation.Allocation, error) {
	var alloc allocation.Allocation
	var startDate string
	var endDate sql.NullString

	err := scan(
		&alloc.ID,
		&alloc.EngineerID,
		&alloc.ProjectID,
		&alloc.Percentage,
		&startDate,
		&endDate,
		&alloc.CreatedAt,
		&alloc.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}

	start, err := allocation.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	alloc.StartDate = start

	if endDate.Valid {
		end, err := allocation.ParseDate(endDate.String)
		if err != nil {
			return nil, fmt.Errorf("invalid end date %q: %w", endDate.String, err)
		}
		alloc.EndDate = &end
	}

	return &alloc, nil
}

func allocationDates(alloc *allocation.Allocation) (string, any) {
	start := alloc.StartDate.Format(allocation.DateLayout)
	var end any
	if alloc.EndDate != nil {
		end = alloc.EndDate.Format(allocation.DateLayout)
	}
	return start, end
}

// Get retrieves an allocation by ID
func (r *AllocationRepository) Get(ctx context.Context, id string) (*allocation.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE id = ?`

	alloc, err := scanAllocation(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get allocation: %w", err)
	}

	return alloc, nil
}

// List retrieves all allocations ordered by start date
func (r *AllocationRepository) List(ctx context.Context) ([]allocation.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations ORDER BY start_date, id`
	return r.queryAllocations(ctx, query)
}

// ListByEngineer retrieves all allocations for an engineer
func (r *AllocationRepository) ListByEngineer(ctx context.Context, engineerID string) ([]allocation.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE engineer_id = ? ORDER BY start_date, id`
	return r.queryAllocations(ctx, query, engineerID)
}

// ListByProject retrieves all allocations for a project
func (r *AllocationRepository) ListByProject(ctx context.Context, projectID string) ([]allocation.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE project_id = ? ORDER BY start_date, id`
	return r.queryAllocations(ctx, query, projectID)
}

func (r *AllocationRepository) queryAllocations(ctx context.Context, query string, args ...any) ([]allocation.Allocation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	var allocations []allocation.Allocation
	for rows.Next() {
		alloc, err := scanAllocation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, *alloc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate allocations: %w", err)
	}

	return allocations, nil
}

// Insert stores a new allocation
func (r *AllocationRepository) Insert(ctx context.Context, alloc *allocation.Allocation) error {
	query := `
		INSERT INTO allocations (
			id, engineer_id, project_id, percentage,
			start_date, end_date, created_at, modified_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	start, end := allocationDates(alloc)
	_, err := r.db.ExecContext(ctx, query,
		alloc.ID,
		alloc.EngineerID,
		alloc.ProjectID,
		alloc.Percentage,
		start,
		end,
		alloc.CreatedAt,
		alloc.ModifiedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if isUniqueViolation(err) {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("failed to insert allocation: %w", err)
	}

	return nil
}

// Replace overwrites an existing allocation's mutable fields
func (r *AllocationRepository) Replace(ctx context.Context, alloc *allocation.Allocation) error {
	query := `
		UPDATE allocations
		SET percentage = ?, start_date = ?, end_date = ?, modified_at = ?
		WHERE id = ?
	`

	start, end := allocationDates(alloc)
	result, err := r.db.ExecContext(ctx, query,
		alloc.Percentage,
		start,
		end,
		alloc.ModifiedAt,
		alloc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update allocation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
