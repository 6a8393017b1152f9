package audit

import (
	"context"
	"fmt"
	"log/slog"
)

// Repository defines audit log persistence.
type Repository interface {
	Log(ctx context.Context, entry *Entry) error
	List(ctx context.Context, opts ListOptions) ([]Entry, error)
}

// Service records and queries the allocation audit trail.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new audit service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Log appends an entry. Best effort: a failed append is logged and swallowed
// so it never fails the mutation it describes.
func (s *Service) Log(ctx context.Context, entry *Entry) {
	if err := s.repo.Log(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("audit append failed", "allocation_id", entry.AllocationID, "error", err)
	}
}

// Recent returns the newest entries, optionally filtered by engineer.
func (s *Service) Recent(ctx context.Context, opts ListOptions) ([]Entry, error) {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	entries, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	return entries, nil
}
