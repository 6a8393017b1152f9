package integration_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/planlane/staffing-mcp/internal/domain/allocation"
	"github.com/planlane/staffing-mcp/internal/domain/audit"
	"github.com/planlane/staffing-mcp/internal/domain/engineer"
	"github.com/planlane/staffing-mcp/internal/domain/project"
	"github.com/planlane/staffing-mcp/internal/sqlite"
)

type testEnv struct {
	db             *sqlite.DB
	engineerRepo   *sqlite.EngineerRepository
	projectRepo    *sqlite.ProjectRepository
	allocationRepo *sqlite.AllocationRepository
	auditRepo      *sqlite.AuditRepository

	engineerSvc   *engineer.Service
	projectSvc    *project.Service
	allocationSvc *allocation.Service
	auditSvc      *audit.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	engineerRepo := sqlite.NewEngineerRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	allocationRepo := sqlite.NewAllocationRepository(db)
	auditRepo := sqlite.NewAuditRepository(db)

	engineerSvc := engineer.NewService(engineerRepo, nil)
	projectSvc := project.NewService(projectRepo, nil)
	auditSvc := audit.NewService(auditRepo, nil)
	allocationSvc := allocation.NewService(allocationRepo, engineerRepo, projectRepo, auditSvc, nil)

	return &testEnv{
		db:             db,
		engineerRepo:   engineerRepo,
		projectRepo:    projectRepo,
		allocationRepo: allocationRepo,
		auditRepo:      auditRepo,
		engineerSvc:    engineerSvc,
		projectSvc:     projectSvc,
		allocationSvc:  allocationSvc,
		auditSvc:       auditSvc,
	}
}

func (env *testEnv) seedRoster(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, env.engineerRepo.Insert(ctx, &engineer.Engineer{
		ID: "eng-1", Name: "Dana Reyes", Department: "Platform", Skills: []string{"go", "sql"},
	}))
	require.NoError(t, env.engineerRepo.Insert(ctx, &engineer.Engineer{
		ID: "eng-2", Name: "Lee Park", Department: "Web", Skills: []string{"react"},
	}))
	require.NoError(t, env.projectRepo.Insert(ctx, &project.Project{
		ID: "proj-1", Name: "Billing Rewrite", Status: project.StatusActive,
	}))
	require.NoError(t, env.projectRepo.Insert(ctx, &project.Project{
		ID: "proj-2", Name: "Search Revamp", Status: project.StatusPlanned,
	}))
}

func TestIntegration_AllocationWorkflow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedRoster(t)

	created, err := env.allocationSvc.Allocate(ctx, allocation.AllocateRequest{
		EngineerID: "eng-1",
		ProjectID:  "proj-1",
		Percentage: 60,
		StartDate:  "2026-01-01",
		EndDate:    "2026-06-30",
	})
	require.NoError(t, err)

	// Round-trips through the store intact
	fetched, err := env.allocationSvc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 60, fetched.Percentage)
	require.Equal(t, "2026-01-01", fetched.StartDate.Format(allocation.DateLayout))
	require.NotNil(t, fetched.EndDate)

	byEngineer, err := env.allocationSvc.ListByEngineer(ctx, "eng-1")
	require.NoError(t, err)
	require.Len(t, byEngineer, 1)

	pct := 40
	updated, err := env.allocationSvc.Update(ctx, allocation.UpdateRequest{
		ID:         created.ID,
		Percentage: &pct,
	})
	require.NoError(t, err)
	require.Equal(t, 40, updated.Percentage)

	entries, err := env.auditSvc.Recent(ctx, audit.ListOptions{EngineerID: "eng-1"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, audit.ActionUpdated, entries[0].Action)
	require.Equal(t, audit.ActionAllocated, entries[1].Action)
}

func TestIntegration_CapacityEnforcedAcrossStore(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedRoster(t)

	_, err := env.allocationSvc.Allocate(ctx, allocation.AllocateRequest{
		EngineerID: "eng-1",
		ProjectID:  "proj-1",
		Percentage: 70,
		StartDate:  "2026-01-01",
		EndDate:    "2026-12-31",
	})
	require.NoError(t, err)

	_, err = env.allocationSvc.Allocate(ctx, allocation.AllocateRequest{
		EngineerID: "eng-1",
		ProjectID:  "proj-2",
		Percentage: 50,
		StartDate:  "2026-06-01",
		EndDate:    "2026-06-30",
	})
	var capErr *allocation.CapacityError
	require.ErrorAs(t, err, &capErr)

	// The rejected write left nothing behind
	allocs, err := env.allocationSvc.ListByEngineer(ctx, "eng-1")
	require.NoError(t, err)
	require.Len(t, allocs, 1)

	// A different engineer is unaffected
	_, err = env.allocationSvc.Allocate(ctx, allocation.AllocateRequest{
		EngineerID: "eng-2",
		ProjectID:  "proj-2",
		Percentage: 100,
		StartDate:  "2026-06-01",
		EndDate:    "2026-06-30",
	})
	require.NoError(t, err)
}

func TestIntegration_ConcurrentAllocationsSerialize(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.seedRoster(t)

	// 10 workers race to book 30% each on the same engineer and window.
	// At most 3 can fit under 100%; run them and count survivors from the
	// store, not from the race outcome.
	const workers = 10
	var wg sync.WaitGroup
	projectIDs := make([]string, workers)
	for i := range projectIDs {
		id := fmt.Sprintf("proj-race-%d", i)
		projectIDs[i] = id
		require.NoError(t, env.projectRepo.Insert(ctx, &project.Project{
			ID: id, Name: fmt.Sprintf("Race %d", i), Status: project.StatusActive,
		}))
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(projectID string) {
			defer wg.Done()
			_, _ = env.allocationSvc.Allocate(ctx, allocation.AllocateRequest{
				EngineerID: "eng-1",
				ProjectID:  projectID,
				Percentage: 30,
				StartDate:  "2026-01-01",
				EndDate:    "2026-12-31",
			})
		}(projectIDs[i])
	}
	wg.Wait()

	allocs, err := env.allocationSvc.ListByEngineer(ctx, "eng-1")
	require.NoError(t, err)

	total := 0
	for _, a := range allocs {
		total += a.Percentage
	}
	require.LessOrEqual(t, total, 100)
	require.Len(t, allocs, 3)
}

func TestIntegration_SeedAndAllocate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	dir := t.TempDir()
	writeFixture(t, dir, "engineers.json", `[{"id": "eng-9", "name": "Sam Oak", "skills": ["python"]}]`)
	writeFixture(t, dir, "projects.json", `[{"id": "proj-9", "name": "Data Platform", "status": "active"}]`)
	writeFixture(t, dir, "allocations.json", `[
		{"id": "alloc-seed-1", "engineerId": "eng-9", "projectId": "proj-9",
		 "allocationPercentage": 50, "startDate": "2026-01-01", "endDate": "2026-03-31"}
	]`)

	seeder := sqlite.NewSeeder(env.engineerRepo, env.projectRepo, env.allocationRepo, nil)
	require.NoError(t, seeder.Load(ctx, dir))

	avail, err := env.allocationSvc.AvailabilityOn(ctx, "eng-9", mustDay(t, "2026-02-15"))
	require.NoError(t, err)
	require.Equal(t, 50, avail.Available)

	// Topping up past the seeded 50% is rejected in the seeded window
	_, err = env.allocationSvc.Allocate(ctx, allocation.AllocateRequest{
		EngineerID: "eng-9",
		ProjectID:  "proj-9",
		Percentage: 60,
		StartDate:  "2026-02-01",
		EndDate:    "2026-02-28",
	})
	require.Error(t, err)
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	day, err := allocation.ParseDate(s)
	require.NoError(t, err)
	return day
}
