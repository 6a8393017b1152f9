package allocation_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/planlane/staffing-mcp/internal/domain/allocation"
	"github.com/planlane/staffing-mcp/internal/domain/engineer"
	"github.com/planlane/staffing-mcp/internal/domain/project"
	"github.com/planlane/staffing-mcp/internal/repository"
	"github.com/planlane/staffing-mcp/internal/repository/mocks"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	day, err := allocation.ParseDate(s)
	require.NoError(t, err)
	return day
}

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	day := date(t, s)
	return &day
}

func newTestService(allocs *mocks.AllocationRepository, engineers *mocks.EngineerRepository, projects *mocks.ProjectRepository) *allocation.Service {
	return allocation.NewService(allocs, engineers, projects, nil, nil)
}

func expectReferences(ctx context.Context, engineers *mocks.EngineerRepository, projects *mocks.ProjectRepository) {
	engineers.On("Get", ctx, "eng-1").Return(&engineer.Engineer{ID: "eng-1", Name: "Dana"}, nil)
	projects.On("Get", ctx, "proj-1").Return(&project.Project{ID: "proj-1", Name: "Billing", Status: project.StatusActive}, nil)
}

func TestAllocationService_Allocate(t *testing.T) {
	ctx := context.Background()

	allocsRepo := &mocks.AllocationRepository{}
	engineersRepo := &mocks.EngineerRepository{}
	projectsRepo := &mocks.ProjectRepository{}

	expectReferences(ctx, engineersRepo, projectsRepo)
	allocsRepo.On("ListByEngineer", ctx, "eng-1").Return([]allocation.Allocation{}, nil)

	var inserted *allocation.Allocation
	allocsRepo.On("Insert", ctx, mock.Anything).Run(func(args mock.Arguments) {
		inserted = args.Get(1).(*allocation.Allocation)
	}).Return(nil)

	svc := newTestService(allocsRepo, engineersRepo, projectsRepo)
	alloc, err := svc.Allocate(ctx, allocation.AllocateRequest{
		EngineerID: "eng-1",
		ProjectID:  "proj-1",
		Percentage: 60,
		StartDate:  "2026-01-01",
		EndDate:    "2026-06-30",
	})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(alloc.ID, "alloc-"))
	require.Equal(t, 60, alloc.Percentage)
	require.Equal(t, "2026-01-01", alloc.StartDate.Format(allocation.DateLayout))
	require.NotNil(t, alloc.EndDate)
	require.Equal(t, inserted, alloc)
}

func TestAllocationService_AllocateDefaultsStartToToday(t *testing.T) {
	ctx := context.Background()

	allocsRepo := &mocks.AllocationRepository{}
	engineersRepo := &mocks.EngineerRepository{}
	projectsRepo := &mocks.ProjectRepository{}

	expectReferences(ctx, engineersRepo, projectsRepo)
	allocsRepo.On("ListByEngineer", ctx, "eng-1").Return([]allocation.Allocation{}, nil)
	allocsRepo.On("Insert", ctx, mock.Anything).Return(nil)

	svc := newTestService(allocsRepo, engineersRepo, projectsRepo)
	alloc, err := svc.Allocate(ctx, allocation.AllocateRequest{
		EngineerID: "eng-1",
		ProjectID:  "proj-1",
		Percentage: 50,
	})
	require.NoError(t, err)
	require.True(t, alloc.StartDate.Equal(allocation.Today()))
	require.Nil(t, alloc.EndDate, "omitted end date means open-ended")
}

func TestAllocationService_AllocateRejectsBadPercentage(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&mocks.AllocationRepository{}, &mocks.EngineerRepository{}, &mocks.ProjectRepository{})

	for _, pct := range []int{0, -10, 101, 150} {
		_, err := svc.Allocate(ctx, allocation.AllocateRequest{
			EngineerID: "eng-1",
			ProjectID:  "proj-1",
			Percentage: pct,
		})
		var valErr *allocation.ValidationError
		require.ErrorAs(t, err, &valErr, "percentage %d", pct)
		require.Equal(t, "percentage", valErr.Field)
	}
}

func TestAllocationService_AllocateRejectsReversedDates(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&mocks.AllocationRepository{}, &mocks.EngineerRepository{}, &mocks.ProjectRepository{})

	_, err := svc.Allocate(ctx, allocation.AllocateRequest{
		EngineerID: "eng-1",
		ProjectID:  "proj-1",
		Percentage: 50,
		StartDate:  "2026-06-30",
		EndDate:    "2026-01-01",
	})
	var valErr *allocation.ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Equal(t, "end_date", valErr.Field)
}

func TestAllocationService_AllocateMissingEngineer(t *testing.T) {
	ctx := context.Background()

	allocsRepo := &mocks.AllocationRepository{}
	engineersRepo := &mocks.EngineerRepository{}
	projectsRepo := &mocks.ProjectRepository{}

	engineersRepo.On("Get", ctx, "ghost").Return(nil, repository.ErrNotFound)

	svc := newTestService(allocsRepo, engineersRepo, projectsRepo)
	_, err := svc.Allocate(ctx, allocation.AllocateRequest{
		EngineerID: "ghost",
		ProjectID:  "proj-1",
		Percentage: 50,
	})

	var refErr *allocation.ReferenceError
	require.ErrorAs(t, err, &refErr)
	require.Equal(t, allocation.KindEngineer, refErr.Kind)
	require.Equal(t, "ghost", refErr.ID)
	// Fail fast: the project is never checked
	projectsRepo.AssertNotCalled(t, "Get", ctx, "proj-1")
}

func TestAllocationService_AllocateMissingProject(t *testing.T) {
	ctx := context.Background()

	allocsRepo := &mocks.AllocationRepository{}
	engineersRepo := &mocks.EngineerRepository{}
	projectsRepo := &mocks.ProjectRepository{}

	engineersRepo.On("Get", ctx, "eng-1").Return(&engineer.Engineer{ID: "eng-1"}, nil)
	projectsRepo.On("Get", ctx, "ghost").Return(nil, repository.ErrNotFound)

	svc := newTestService(allocsRepo, engineersRepo, projectsRepo)
	_, err := svc.Allocate(ctx, allocation.AllocateRequest{
		EngineerID: "eng-1",
		ProjectID:  "ghost",
		Percentage: 50,
	})

	var refErr *allocation.ReferenceError
	require.ErrorAs(t, err, &refErr)
	require.Equal(t, allocation.KindProject, refErr.Kind)
}

func TestAllocationService_AllocateOverCapacity(t *testing.T) {
	ctx := context.Background()

	allocsRepo := &mocks.AllocationRepository{}
	engineersRepo := &mocks.EngineerRepository{}
	projectsRepo := &mocks.ProjectRepository{}

	expectReferences(ctx, engineersRepo, projectsRepo)
	allocsRepo.On("ListByEngineer", ctx, "eng-1").Return([]allocation.Allocation{
		{ID: "alloc-existing", EngineerID: "eng-1", ProjectID: "proj-2", Percentage: 60,
			StartDate: date(t, "2026-01-01"), EndDate: datePtr(t, "2026-12-31")},
	}, nil)

	svc := newTestService(allocsRepo, engineersRepo, projectsRepo)
	_, err := svc.Allocate(ctx, allocation.AllocateRequest{
		EngineerID: "eng-1",
		ProjectID:  "proj-1",
		Percentage: 50,
		StartDate:  "2026-03-01",
		EndDate:    "2026-03-31",
	})

	var capErr *allocation.CapacityError
	require.ErrorAs(t, err, &capErr)
	require.Equal(t, 10, capErr.Overcommit())
	require.Equal(t, []string{"alloc-existing"}, capErr.Conflicting)
	// Nothing was written
	allocsRepo.AssertNotCalled(t, "Insert", ctx, mock.Anything)
}

func TestAllocationService_AllocateFillsRemainingCapacity(t *testing.T) {
	ctx := context.Background()

	allocsRepo := &mocks.AllocationRepository{}
	engineersRepo := &mocks.EngineerRepository{}
	projectsRepo := &mocks.ProjectRepository{}

	expectReferences(ctx, engineersRepo, projectsRepo)
	allocsRepo.On("ListByEngineer", ctx, "eng-1").Return([]allocation.Allocation{
		{ID: "alloc-existing", EngineerID: "eng-1", ProjectID: "proj-2", Percentage: 60,
			StartDate: date(t, "2026-01-01"), EndDate: datePtr(t, "2026-12-31")},
	}, nil)
	allocsRepo.On("Insert", ctx, mock.Anything).Return(nil)

	svc := newTestService(allocsRepo, engineersRepo, projectsRepo)
	alloc, err := svc.Allocate(ctx, allocation.AllocateRequest{
		EngineerID: "eng-1",
		ProjectID:  "proj-1",
		Percentage: 40,
		StartDate:  "2026-03-01",
		EndDate:    "2026-03-31",
	})
	require.NoError(t, err)
	require.Equal(t, 40, alloc.Percentage)
}

func TestAllocationService_AllocateDuplicateProject(t *testing.T) {
	ctx := context.Background()

	allocsRepo := &mocks.AllocationRepository{}
	engineersRepo := &mocks.EngineerRepository{}
	projectsRepo := &mocks.ProjectRepository{}

	expectReferences(ctx, engineersRepo, projectsRepo)
	allocsRepo.On("ListByEngineer", ctx, "eng-1").Return([]allocation.Allocation{
		{ID: "alloc-existing", EngineerID: "eng-1", ProjectID: "proj-1", Percentage: 20,
			StartDate: date(t, "2026-01-01"), EndDate: datePtr(t, "2026-12-31")},
	}, nil)

	svc := newTestService(allocsRepo, engineersRepo, projectsRepo)
	_, err := svc.Allocate(ctx, allocation.AllocateRequest{
		EngineerID: "eng-1",
		ProjectID:  "proj-1",
		Percentage: 20,
		StartDate:  "2026-06-01",
		EndDate:    "2026-06-30",
	})

	var dupErr *allocation.DuplicateAllocationError
	require.ErrorAs(t, err, &dupErr)
	require.Equal(t, "alloc-existing", dupErr.ExistingID)
}

func TestAllocationService_UpdatePercentageExcludesSelf(t *testing.T) {
	ctx := context.Background()

	current := &allocation.Allocation{
		ID: "alloc-1", EngineerID: "eng-1", ProjectID: "proj-1", Percentage: 60,
		StartDate: date(t, "2026-01-01"), EndDate: datePtr(t, "2026-06-30"),
	}

	allocsRepo := &mocks.AllocationRepository{}
	allocsRepo.On("Get", ctx, "alloc-1").Return(current, nil)
	allocsRepo.On("ListByEngineer", ctx, "eng-1").Return([]allocation.Allocation{*current}, nil)

	var replaced *allocation.Allocation
	allocsRepo.On("Replace", ctx, mock.Anything).Run(func(args mock.Arguments) {
		replaced = args.Get(1).(*allocation.Allocation)
	}).Return(nil)

	svc := newTestService(allocsRepo, &mocks.EngineerRepository{}, &mocks.ProjectRepository{})

	// 60 -> 100 passes because the allocation's own footprint is excluded.
	pct := 100
	alloc, err := svc.Update(ctx, allocation.UpdateRequest{ID: "alloc-1", Percentage: &pct})
	require.NoError(t, err)
	require.Equal(t, 100, alloc.Percentage)
	require.Equal(t, 100, replaced.Percentage)
	require.Equal(t, "2026-01-01", replaced.StartDate.Format(allocation.DateLayout), "omitted dates keep current values")
}

func TestAllocationService_UpdateOverCapacity(t *testing.T) {
	ctx := context.Background()

	current := &allocation.Allocation{
		ID: "alloc-1", EngineerID: "eng-1", ProjectID: "proj-1", Percentage: 40,
		StartDate: date(t, "2026-01-01"), EndDate: datePtr(t, "2026-06-30"),
	}
	other := allocation.Allocation{
		ID: "alloc-2", EngineerID: "eng-1", ProjectID: "proj-2", Percentage: 50,
		StartDate: date(t, "2026-01-01"), EndDate: datePtr(t, "2026-06-30"),
	}

	allocsRepo := &mocks.AllocationRepository{}
	allocsRepo.On("Get", ctx, "alloc-1").Return(current, nil)
	allocsRepo.On("ListByEngineer", ctx, "eng-1").Return([]allocation.Allocation{*current, other}, nil)

	svc := newTestService(allocsRepo, &mocks.EngineerRepository{}, &mocks.ProjectRepository{})

	pct := 60
	_, err := svc.Update(ctx, allocation.UpdateRequest{ID: "alloc-1", Percentage: &pct})

	var capErr *allocation.CapacityError
	require.ErrorAs(t, err, &capErr)
	require.Equal(t, []string{"alloc-2"}, capErr.Conflicting)
	allocsRepo.AssertNotCalled(t, "Replace", ctx, mock.Anything)
}

func TestAllocationService_UpdateNotFound(t *testing.T) {
	ctx := context.Background()

	allocsRepo := &mocks.AllocationRepository{}
	allocsRepo.On("Get", ctx, "ghost").Return(nil, repository.ErrNotFound)

	svc := newTestService(allocsRepo, &mocks.EngineerRepository{}, &mocks.ProjectRepository{})

	pct := 50
	_, err := svc.Update(ctx, allocation.UpdateRequest{ID: "ghost", Percentage: &pct})
	require.ErrorIs(t, err, allocation.ErrAllocationNotFound)
}

func TestAllocationService_UpdateKeepsOpenEnd(t *testing.T) {
	ctx := context.Background()

	current := &allocation.Allocation{
		ID: "alloc-1", EngineerID: "eng-1", ProjectID: "proj-1", Percentage: 60,
		StartDate: date(t, "2026-01-01"),
	}

	allocsRepo := &mocks.AllocationRepository{}
	allocsRepo.On("Get", ctx, "alloc-1").Return(current, nil)
	allocsRepo.On("ListByEngineer", ctx, "eng-1").Return([]allocation.Allocation{*current}, nil)
	allocsRepo.On("Replace", ctx, mock.Anything).Return(nil)

	svc := newTestService(allocsRepo, &mocks.EngineerRepository{}, &mocks.ProjectRepository{})

	pct := 40
	alloc, err := svc.Update(ctx, allocation.UpdateRequest{ID: "alloc-1", Percentage: &pct})
	require.NoError(t, err)
	require.Nil(t, alloc.EndDate, "open-ended stays open-ended when end_date is omitted")
}

func TestAllocationService_GetNotFound(t *testing.T) {
	ctx := context.Background()

	allocsRepo := &mocks.AllocationRepository{}
	allocsRepo.On("Get", ctx, "ghost").Return(nil, repository.ErrNotFound)

	svc := newTestService(allocsRepo, &mocks.EngineerRepository{}, &mocks.ProjectRepository{})
	_, err := svc.Get(ctx, "ghost")
	require.ErrorIs(t, err, allocation.ErrAllocationNotFound)
}

func TestAllocationService_AvailabilityOn(t *testing.T) {
	ctx := context.Background()

	allocsRepo := &mocks.AllocationRepository{}
	engineersRepo := &mocks.EngineerRepository{}

	engineersRepo.On("Get", ctx, "eng-1").Return(&engineer.Engineer{ID: "eng-1"}, nil)
	allocsRepo.On("ListByEngineer", ctx, "eng-1").Return([]allocation.Allocation{
		{ID: "a1", Percentage: 60, StartDate: date(t, "2026-01-01"), EndDate: datePtr(t, "2026-06-30")},
		{ID: "a2", Percentage: 20, StartDate: date(t, "2026-07-01")},
	}, nil)

	svc := newTestService(allocsRepo, engineersRepo, &mocks.ProjectRepository{})

	avail, err := svc.AvailabilityOn(ctx, "eng-1", date(t, "2026-03-15"))
	require.NoError(t, err)
	require.Equal(t, 60, avail.Allocated)
	require.Equal(t, 40, avail.Available)
	require.Len(t, avail.Allocations, 1)

	avail, err = svc.AvailabilityOn(ctx, "eng-1", date(t, "2026-08-01"))
	require.NoError(t, err)
	require.Equal(t, 20, avail.Allocated)
	require.Equal(t, 80, avail.Available)
}

func TestAllocationService_ListActive(t *testing.T) {
	ctx := context.Background()

	allocsRepo := &mocks.AllocationRepository{}
	allocsRepo.On("List", ctx).Return([]allocation.Allocation{
		{ID: "a1", StartDate: date(t, "2026-01-01"), EndDate: datePtr(t, "2026-01-31")},
		{ID: "a2", StartDate: date(t, "2026-01-15")},
	}, nil)

	svc := newTestService(allocsRepo, &mocks.EngineerRepository{}, &mocks.ProjectRepository{})

	active, err := svc.ListActive(ctx, date(t, "2026-02-15"))
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "a2", active[0].ID)
}
