package mocks

import (
	"context"

	"github.com/planlane/staffing-mcp/internal/domain/allocation"
	"github.com/planlane/staffing-mcp/internal/domain/audit"
	"github.com/planlane/staffing-mcp/internal/domain/engineer"
	"github.com/planlane/staffing-mcp/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// EngineerRepository is a mock for repository.EngineerRepository.
type EngineerRepository struct {
	mock.Mock
}

func (m *EngineerRepository) Get(ctx context.Context, id string) (*engineer.Engineer, error) {
	args := m.Called(ctx, id)
	if eng, ok := args.Get(0).(*engineer.Engineer); ok {
		return eng, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EngineerRepository) List(ctx context.Context) ([]engineer.Engineer, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]engineer.Engineer); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EngineerRepository) Insert(ctx context.Context, eng *engineer.Engineer) error {
	args := m.Called(ctx, eng)
	return args.Error(0)
}

// ProjectRepository is a mock for repository.ProjectRepository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Insert(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

// AllocationRepository is a mock for repository.AllocationRepository.
type AllocationRepository struct {
	mock.Mock
}

func (m *AllocationRepository) Get(ctx context.Context, id string) (*allocation.Allocation, error) {
	args := m.Called(ctx, id)
	if alloc, ok := args.Get(0).(*allocation.Allocation); ok {
		return alloc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AllocationRepository) List(ctx context.Context) ([]allocation.Allocation, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]allocation.Allocation); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AllocationRepository) ListByEngineer(ctx context.Context, engineerID string) ([]allocation.Allocation, error) {
	args := m.Called(ctx, engineerID)
	if list, ok := args.Get(0).([]allocation.Allocation); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AllocationRepository) ListByProject(ctx context.Context, projectID string) ([]allocation.Allocation, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]allocation.Allocation); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AllocationRepository) Insert(ctx context.Context, alloc *allocation.Allocation) error {
	args := m.Called(ctx, alloc)
	return args.Error(0)
}

func (m *AllocationRepository) Replace(ctx context.Context, alloc *allocation.Allocation) error {
	args := m.Called(ctx, alloc)
	return args.Error(0)
}

// AuditRepository is a mock for repository.AuditRepository.
type AuditRepository struct {
	mock.Mock
}

func (m *AuditRepository) Log(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *AuditRepository) List(ctx context.Context, opts audit.ListOptions) ([]audit.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]audit.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
