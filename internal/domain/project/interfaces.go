package project

import "context"

// Repository defines project persistence operations needed by the service.
type Repository interface {
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]Project, error)
}
