package mcp

import (
	"time"

	"github.com/planlane/staffing-mcp/internal/domain/allocation"
)

type AllocateEngineerParams struct {
	EngineerID string `json:"engineer_id"`
	ProjectID  string `json:"project_id"`
	Percentage int    `json:"percentage"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}

type UpdateAllocationParams struct {
	ID         string  `json:"id"`
	Percentage *int    `json:"percentage,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
}

type GetAllocationParams struct {
	ID string `json:"id"`
}

type ListAllocationsParams struct {
	ActiveOn string `json:"active_on,omitempty"`
}

type AllocationsByEngineerParams struct {
	EngineerID string `json:"engineer_id"`
}

type AllocationsByProjectParams struct {
	ProjectID string `json:"project_id"`
}

type ListEngineersParams struct {
	Skill string `json:"skill,omitempty"`
}

type GetEngineerParams struct {
	ID string `json:"id"`
}

type GetProjectParams struct {
	ID string `json:"id"`
}

type AvailabilityParams struct {
	EngineerID string `json:"engineer_id"`
	Date       string `json:"date,omitempty"`
}

type RecentActivityParams struct {
	EngineerID string `json:"engineer_id,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// AllocationResponse is the wire shape of an allocation. Dates are plain
// YYYY-MM-DD strings; an empty end_date means open-ended.
type AllocationResponse struct {
	ID         string    `json:"id"`
	EngineerID string    `json:"engineer_id"`
	ProjectID  string    `json:"project_id"`
	Percentage int       `json:"percentage"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

func newAllocationResponse(a *allocation.Allocation) AllocationResponse {
	resp := AllocationResponse{
		ID:         a.ID,
		EngineerID: a.EngineerID,
		ProjectID:  a.ProjectID,
		Percentage: a.Percentage,
		StartDate:  a.StartDate.Format(allocation.DateLayout),
		CreatedAt:  a.CreatedAt,
		ModifiedAt: a.ModifiedAt,
	}
	if a.EndDate != nil {
		resp.EndDate = a.EndDate.Format(allocation.DateLayout)
	}
	return resp
}

func newAllocationResponses(allocs []allocation.Allocation) []AllocationResponse {
	resp := make([]AllocationResponse, 0, len(allocs))
	for i := range allocs {
		resp = append(resp, newAllocationResponse(&allocs[i]))
	}
	return resp
}

type AvailabilityResponse struct {
	EngineerID  string               `json:"engineer_id"`
	Date        string               `json:"date"`
	Allocated   int                  `json:"allocated_percentage"`
	Available   int                  `json:"available_percentage"`
	Allocations []AllocationResponse `json:"allocations"`
}
