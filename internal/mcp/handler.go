package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/planlane/staffing-mcp/internal/domain/allocation"
	"github.com/planlane/staffing-mcp/internal/domain/audit"
	"github.com/planlane/staffing-mcp/internal/domain/engineer"
	"github.com/planlane/staffing-mcp/internal/domain/project"
)

// AllocationService defines allocation operations needed by MCP.
type AllocationService interface {
	List(ctx context.Context) ([]allocation.Allocation, error)
	ListActive(ctx context.Context, day time.Time) ([]allocation.Allocation, error)
	Get(ctx context.Context, id string) (*allocation.Allocation, error)
	ListByEngineer(ctx context.Context, engineerID string) ([]allocation.Allocation, error)
	ListByProject(ctx context.Context, projectID string) ([]allocation.Allocation, error)
	Allocate(ctx context.Context, req allocation.AllocateRequest) (*allocation.Allocation, error)
	Update(ctx context.Context, req allocation.UpdateRequest) (*allocation.Allocation, error)
	AvailabilityOn(ctx context.Context, engineerID string, day time.Time) (*allocation.Availability, error)
}

// EngineerService defines engineer operations needed by MCP.
type EngineerService interface {
	Get(ctx context.Context, id string) (*engineer.Engineer, error)
	List(ctx context.Context) ([]engineer.Engineer, error)
	ListBySkill(ctx context.Context, skill string) ([]engineer.Engineer, error)
}

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Project, error)
}

// AuditService defines audit log operations needed by MCP.
type AuditService interface {
	Recent(ctx context.Context, opts audit.ListOptions) ([]audit.Entry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Allocations AllocationService
	Engineers   EngineerService
	Projects    ProjectService
	Audit       AuditService
}

// Handler dispatches MCP commands to domain services.
type Handler struct {
	allocations AllocationService
	engineers   EngineerService
	projects    ProjectService
	audit       AuditService
}

// NewHandler creates a new MCP handler.
func NewHandler(services Services) *Handler {
	return &Handler{
		allocations: services.Allocations,
		engineers:   services.Engineers,
		projects:    services.Projects,
		audit:       services.Audit,
	}
}

const protocolVersion = "2025-03-26"

// Handle dispatches protocol methods and tool calls. Bare tool names are
// accepted as methods so the JSON-RPC test transport can call tools directly.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "initialize":
		var req InitializeParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		version := req.ProtocolVersion
		if version == "" {
			version = protocolVersion
		}
		return InitializeResult{
			ProtocolVersion: version,
			Capabilities: ServerCapabilities{
				Tools:     &ToolsCapability{},
				Resources: &ResourcesCapability{},
			},
			ServerInfo:   ImplementationInfo{Name: "staffing-mcp", Version: "0.1.0"},
			Instructions: serverInstructions,
		}, nil
	case "ping":
		return map[string]any{}, nil
	case "tools/list":
		return ToolsListResult{Tools: buildToolCatalog()}, nil
	case "tools/call":
		var req ToolCallParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		args, err := json.Marshal(req.Arguments)
		if err != nil {
			return nil, fmt.Errorf("encoding arguments: %w", err)
		}
		result, err := h.dispatch(ctx, req.Name, args)
		if err != nil {
			if apiErr, ok := errContent(err); ok {
				return ToolCallResult{Content: []ContentItem{apiErr}, IsError: true}, nil
			}
			return nil, err
		}
		content, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("encoding result: %w", err)
		}
		return ToolCallResult{
			Content: []ContentItem{{Type: "text", Text: string(content)}},
		}, nil
	default:
		return h.dispatch(ctx, method, params)
	}
}

// dispatch routes a tool call to the owning service. Domain errors come back
// as *APIError so callers can branch on the code.
func (h *Handler) dispatch(ctx context.Context, name string, args json.RawMessage) (any, error) {
	switch name {
	case "allocate_engineer":
		var req AllocateEngineerParams
		if err := decodeParams(args, &req); err != nil {
			return nil, err
		}
		alloc, err := h.allocations.Allocate(ctx, allocation.AllocateRequest{
			EngineerID: req.EngineerID,
			ProjectID:  req.ProjectID,
			Percentage: req.Percentage,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return newAllocationResponse(alloc), nil
	case "update_allocation":
		var req UpdateAllocationParams
		if err := decodeParams(args, &req); err != nil {
			return nil, err
		}
		alloc, err := h.allocations.Update(ctx, allocation.UpdateRequest{
			ID:         req.ID,
			Percentage: req.Percentage,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return newAllocationResponse(alloc), nil
	case "get_allocation_by_id":
		var req GetAllocationParams
		if err := decodeParams(args, &req); err != nil {
			return nil, err
		}
		alloc, err := h.allocations.Get(ctx, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return newAllocationResponse(alloc), nil
	case "list_allocations":
		var req ListAllocationsParams
		if err := decodeParams(args, &req); err != nil {
			return nil, err
		}
		if req.ActiveOn != "" {
			day, err := allocation.ParseDate(req.ActiveOn)
			if err != nil {
				return nil, mapError(&allocation.ValidationError{Field: "active_on", Reason: "must be a YYYY-MM-DD date"})
			}
			allocs, err := h.allocations.ListActive(ctx, day)
			if err != nil {
				return nil, mapError(err)
			}
			return newAllocationResponses(allocs), nil
		}
		allocs, err := h.allocations.List(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		return newAllocationResponses(allocs), nil
	case "get_allocations_by_engineer":
		var req AllocationsByEngineerParams
		if err := decodeParams(args, &req); err != nil {
			return nil, err
		}
		allocs, err := h.allocations.ListByEngineer(ctx, req.EngineerID)
		if err != nil {
			return nil, mapError(err)
		}
		return newAllocationResponses(allocs), nil
	case "get_allocations_by_project":
		var req AllocationsByProjectParams
		if err := decodeParams(args, &req); err != nil {
			return nil, err
		}
		allocs, err := h.allocations.ListByProject(ctx, req.ProjectID)
		if err != nil {
			return nil, mapError(err)
		}
		return newAllocationResponses(allocs), nil
	case "list_engineers":
		var req ListEngineersParams
		if err := decodeParams(args, &req); err != nil {
			return nil, err
		}
		if req.Skill != "" {
			engineers, err := h.engineers.ListBySkill(ctx, req.Skill)
			if err != nil {
				return nil, mapError(err)
			}
			return engineers, nil
		}
		engineers, err := h.engineers.List(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		return engineers, nil
	case "get_engineer_by_id":
		var req GetEngineerParams
		if err := decodeParams(args, &req); err != nil {
			return nil, err
		}
		eng, err := h.engineers.Get(ctx, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return eng, nil
	case "list_projects":
		projects, err := h.projects.List(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		return projects, nil
	case "get_project_by_id":
		var req GetProjectParams
		if err := decodeParams(args, &req); err != nil {
			return nil, err
		}
		proj, err := h.projects.Get(ctx, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return proj, nil
	case "get_engineer_availability":
		var req AvailabilityParams
		if err := decodeParams(args, &req); err != nil {
			return nil, err
		}
		day := allocation.Today()
		if req.Date != "" {
			parsed, err := allocation.ParseDate(req.Date)
			if err != nil {
				return nil, mapError(&allocation.ValidationError{Field: "date", Reason: "must be a YYYY-MM-DD date"})
			}
			day = parsed
		}
		avail, err := h.allocations.AvailabilityOn(ctx, req.EngineerID, day)
		if err != nil {
			return nil, mapError(err)
		}
		return AvailabilityResponse{
			EngineerID:  avail.EngineerID,
			Date:        avail.Day.Format(allocation.DateLayout),
			Allocated:   avail.Allocated,
			Available:   avail.Available,
			Allocations: newAllocationResponses(avail.Allocations),
		}, nil
	case "get_recent_activity":
		var req RecentActivityParams
		if err := decodeParams(args, &req); err != nil {
			return nil, err
		}
		entries, err := h.audit.Recent(ctx, audit.ListOptions{
			EngineerID: req.EngineerID,
			Limit:      req.Limit,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("unknown method: %s", name)
	}
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	return json.Unmarshal(params, out)
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

func errContent(err error) (ContentItem, bool) {
	apiErr := MapError(err)
	if apiErr == nil {
		var direct *APIError
		if !errors.As(err, &direct) {
			return ContentItem{}, false
		}
		apiErr = direct
	}
	data, merr := json.Marshal(apiErr)
	if merr != nil {
		return ContentItem{}, false
	}
	return ContentItem{Type: "text", Text: string(data)}, true
}
