package engineer

import "context"

// Repository defines engineer persistence operations needed by the service.
type Repository interface {
	Get(ctx context.Context, id string) (*Engineer, error)
	List(ctx context.Context) ([]Engineer, error)
}
