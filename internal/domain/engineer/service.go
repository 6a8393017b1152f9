package engineer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/planlane/staffing-mcp/internal/repository/repoerrors"
)

// Service exposes read access to the engineer roster.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new engineer service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get fetches an engineer by ID.
func (s *Service) Get(ctx context.Context, id string) (*Engineer, error) {
	eng, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repoerrors.ErrNotFound) {
			return nil, ErrEngineerNotFound
		}
		return nil, fmt.Errorf("getting engineer: %w", err)
	}
	return eng, nil
}

// List returns all engineers.
func (s *Service) List(ctx context.Context) ([]Engineer, error) {
	return s.repo.List(ctx)
}

// ListBySkill returns the engineers carrying the given skill tag.
func (s *Service) ListBySkill(ctx context.Context, skill string) ([]Engineer, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]Engineer, 0, len(all))
	for _, eng := range all {
		if eng.HasSkill(skill) {
			matched = append(matched, eng)
		}
	}
	return matched, nil
}
