package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/planlane/staffing-mcp/internal/domain/allocation"
	"github.com/planlane/staffing-mcp/internal/domain/engineer"
	"github.com/planlane/staffing-mcp/internal/domain/project"
	"github.com/planlane/staffing-mcp/internal/repository"
)

// Seeder loads reference data from JSON fixture files into the database.
// Fixture fields are camelCase, matching the exports of earlier tooling.
type Seeder struct {
	engineers   repository.EngineerRepository
	projects    repository.ProjectRepository
	allocations repository.AllocationRepository
	logger      *slog.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(
	engineers repository.EngineerRepository,
	projects repository.ProjectRepository,
	allocations repository.AllocationRepository,
	logger *slog.Logger,
) *Seeder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Seeder{
		engineers:   engineers,
		projects:    projects,
		allocations: allocations,
		logger:      logger,
	}
}

type engineerFixture struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Department string   `json:"department"`
	Skills     []string `json:"skills"`
}

type projectFixture struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type allocationFixture struct {
	ID         string `json:"id"`
	EngineerID string `json:"engineerId"`
	ProjectID  string `json:"projectId"`
	Percentage int    `json:"allocationPercentage"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

// Load reads engineers.json, projects.json and allocations.json from dir.
// Missing files are skipped. Records whose IDs are already present are
// skipped so reloading the same fixtures is harmless.
func (s *Seeder) Load(ctx context.Context, dir string) error {
	if err := s.loadEngineers(ctx, filepath.Join(dir, "engineers.json")); err != nil {
		return err
	}
	if err := s.loadProjects(ctx, filepath.Join(dir, "projects.json")); err != nil {
		return err
	}
	return s.loadAllocations(ctx, filepath.Join(dir, "allocations.json"))
}

func readFixture(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

func (s *Seeder) loadEngineers(ctx context.Context, path string) error {
	var fixtures []engineerFixture
	found, err := readFixture(path, &fixtures)
	if err != nil || !found {
		return err
	}

	loaded := 0
	for _, f := range fixtures {
		eng := engineer.Engineer{
			ID:         f.ID,
			Name:       f.Name,
			Department: f.Department,
			Skills:     f.Skills,
		}
		err := s.engineers.Insert(ctx, &eng)
		if errors.Is(err, repository.ErrDuplicateID) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed engineer %s: %w", f.ID, err)
		}
		loaded++
	}

	s.logger.Info("seeded engineers", "count", loaded)
	return nil
}

func (s *Seeder) loadProjects(ctx context.Context, path string) error {
	var fixtures []projectFixture
	found, err := readFixture(path, &fixtures)
	if err != nil || !found {
		return err
	}

	loaded := 0
	for _, f := range fixtures {
		status, err := project.ParseStatus(f.Status)
		if err != nil {
			return fmt.Errorf("seed project %s: %w", f.ID, err)
		}
		proj := project.Project{ID: f.ID, Name: f.Name, Status: status}
		err = s.projects.Insert(ctx, &proj)
		if errors.Is(err, repository.ErrDuplicateID) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed project %s: %w", f.ID, err)
		}
		loaded++
	}

	s.logger.Info("seeded projects", "count", loaded)
	return nil
}

func (s *Seeder) loadAllocations(ctx context.Context, path string) error {
	var fixtures []allocationFixture
	found, err := readFixture(path, &fixtures)
	if err != nil || !found {
		return err
	}

	now := time.Now().UTC()
	loaded := 0
	for _, f := range fixtures {
		start, err := parseFixtureDate(f.StartDate)
		if err != nil {
			return fmt.Errorf("seed allocation %s: start date: %w", f.ID, err)
		}
		var end *time.Time
		if f.EndDate != "" {
			day, err := parseFixtureDate(f.EndDate)
			if err != nil {
				return fmt.Errorf("seed allocation %s: end date: %w", f.ID, err)
			}
			end = &day
		}

		alloc := allocation.Allocation{
			ID:         f.ID,
			EngineerID: f.EngineerID,
			ProjectID:  f.ProjectID,
			Percentage: f.Percentage,
			StartDate:  start,
			EndDate:    end,
			CreatedAt:  now,
			ModifiedAt: now,
		}
		err = s.allocations.Insert(ctx, &alloc)
		if errors.Is(err, repository.ErrDuplicateID) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed allocation %s: %w", f.ID, err)
		}
		loaded++
	}

	s.logger.Info("seeded allocations", "count", loaded)
	return nil
}

// parseFixtureDate accepts plain dates plus the timestamped form older
// fixture exports used.
func parseFixtureDate(s string) (time.Time, error) {
	if day, err := allocation.ParseDate(s); err == nil {
		return day, nil
	}
	ts, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return ts.Truncate(24 * time.Hour), nil
}
