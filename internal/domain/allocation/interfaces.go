package allocation

import (
	"context"

	"github.com/planlane/staffing-mcp/internal/domain/engineer"
	"github.com/planlane/staffing-mcp/internal/domain/project"
)

// Repository defines allocation persistence operations needed by the service.
type Repository interface {
	Get(ctx context.Context, id string) (*Allocation, error)
	List(ctx context.Context) ([]Allocation, error)
	ListByEngineer(ctx context.Context, engineerID string) ([]Allocation, error)
	ListByProject(ctx context.Context, projectID string) ([]Allocation, error)
	Insert(ctx context.Context, alloc *Allocation) error
	Replace(ctx context.Context, alloc *Allocation) error
}

// EngineerRepository is the read-only view of engineers the service needs.
type EngineerRepository interface {
	Get(ctx context.Context, id string) (*engineer.Engineer, error)
}

// ProjectRepository is the read-only view of projects the service needs.
type ProjectRepository interface {
	Get(ctx context.Context, id string) (*project.Project, error)
}
