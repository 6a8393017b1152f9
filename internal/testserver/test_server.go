package testserver

import (
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/planlane/staffing-mcp/internal/domain/allocation"
	"github.com/planlane/staffing-mcp/internal/domain/audit"
	"github.com/planlane/staffing-mcp/internal/domain/engineer"
	"github.com/planlane/staffing-mcp/internal/domain/project"
	"github.com/planlane/staffing-mcp/internal/mcp"
	"github.com/planlane/staffing-mcp/internal/repository"
	"github.com/planlane/staffing-mcp/internal/sqlite"
	"github.com/planlane/staffing-mcp/internal/transport"
)

// TestServer hosts the full stack (sqlite, domain services, MCP handler,
// chi transport) behind an httptest.Server for functional tests.
type TestServer struct {
	Server      *httptest.Server
	DB          *sqlite.DB
	Token       string
	Engineers   repository.EngineerRepository
	Projects    repository.ProjectRepository
	Allocations repository.AllocationRepository
}

func New(t *testing.T, token string) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	engineerRepo := sqlite.NewEngineerRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	allocationRepo := sqlite.NewAllocationRepository(db)
	auditRepo := sqlite.NewAuditRepository(db)

	engineerSvc := engineer.NewService(engineerRepo, logger)
	projectSvc := project.NewService(projectRepo, logger)
	auditSvc := audit.NewService(auditRepo, logger)
	allocationSvc := allocation.NewService(allocationRepo, engineerRepo, projectRepo, auditSvc, logger)

	handler := mcp.NewHandler(mcp.Services{
		Allocations: allocationSvc,
		Engineers:   engineerSvc,
		Projects:    projectSvc,
		Audit:       auditSvc,
	})

	server := httptest.NewServer(transport.NewServer(handler, transport.AuthMiddleware(transport.StaticToken(token))))

	ts := &TestServer{
		Server:      server,
		DB:          db,
		Token:       token,
		Engineers:   engineerRepo,
		Projects:    projectRepo,
		Allocations: allocationRepo,
	}

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}
