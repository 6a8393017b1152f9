package repository

import (
	"context"

	"github.com/planlane/staffing-mcp/internal/domain/allocation"
	"github.com/planlane/staffing-mcp/internal/domain/audit"
	"github.com/planlane/staffing-mcp/internal/domain/engineer"
	"github.com/planlane/staffing-mcp/internal/domain/project"
)

// EngineerRepository manages engineer persistence. Inserts exist for seed
// loading only; the core never creates engineers.
type EngineerRepository interface {
	Get(ctx context.Context, id string) (*engineer.Engineer, error)
	List(ctx context.Context) ([]engineer.Engineer, error)
	Insert(ctx context.Context, eng *engineer.Engineer) error
}

// ProjectRepository manages project persistence. Inserts exist for seed
// loading only; the core never creates projects.
type ProjectRepository interface {
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Project, error)
	Insert(ctx context.Context, proj *project.Project) error
}

// AllocationRepository manages allocation persistence. Replace either fully
// succeeds or leaves the prior record intact.
type AllocationRepository interface {
	Get(ctx context.Context, id string) (*allocation.Allocation, error)
	List(ctx context.Context) ([]allocation.Allocation, error)
	ListByEngineer(ctx context.Context, engineerID string) ([]allocation.Allocation, error)
	ListByProject(ctx context.Context, projectID string) ([]allocation.Allocation, error)
	Insert(ctx context.Context, alloc *allocation.Allocation) error
	Replace(ctx context.Context, alloc *allocation.Allocation) error
}

// AuditRepository manages the allocation audit log.
type AuditRepository interface {
	Log(ctx context.Context, entry *audit.Entry) error
	List(ctx context.Context, opts audit.ListOptions) ([]audit.Entry, error)
}
