package mcp

import (
	"errors"
	"fmt"

	"github.com/planlane/staffing-mcp/internal/domain/allocation"
	"github.com/planlane/staffing-mcp/internal/domain/engineer"
	"github.com/planlane/staffing-mcp/internal/domain/project"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Returns nil for errors
// that are not domain errors.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var refErr *allocation.ReferenceError
	var valErr *allocation.ValidationError
	var capErr *allocation.CapacityError
	var dupErr *allocation.DuplicateAllocationError

	switch {
	case errors.Is(err, allocation.ErrAllocationNotFound):
		return &APIError{Code: "ALLOCATION_NOT_FOUND", Message: "allocation not found", RecoveryHint: "Check the allocation ID, or call list_allocations"}
	case errors.Is(err, engineer.ErrEngineerNotFound):
		return &APIError{Code: "ENGINEER_NOT_FOUND", Message: "engineer not found", RecoveryHint: "Call list_engineers for valid IDs"}
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects for valid IDs"}
	case errors.As(err, &refErr):
		return &APIError{
			Code:         "INVALID_REFERENCE",
			Message:      refErr.Error(),
			Details:      map[string]any{"kind": string(refErr.Kind), "id": refErr.ID},
			RecoveryHint: fmt.Sprintf("Call list_%ss for valid IDs", refErr.Kind),
		}
	case errors.As(err, &valErr):
		return &APIError{
			Code:    "VALIDATION_FAILED",
			Message: valErr.Error(),
			Details: map[string]any{"field": valErr.Field, "reason": valErr.Reason},
		}
	case errors.As(err, &capErr):
		return &APIError{
			Code:    "OVER_CAPACITY",
			Message: capErr.Error(),
			Details: map[string]any{
				"engineer_id":             capErr.EngineerID,
				"requested_percentage":    capErr.Requested,
				"committed_percentage":    capErr.Committed,
				"overcommit_percentage":   capErr.Overcommit(),
				"conflicting_allocations": capErr.Conflicting,
			},
			RecoveryHint: "Lower the percentage, shift the dates, or end a conflicting allocation",
		}
	case errors.As(err, &dupErr):
		return &APIError{
			Code:    "DUPLICATE_ALLOCATION",
			Message: dupErr.Error(),
			Details: map[string]any{
				"existing_allocation_id": dupErr.ExistingID,
				"project_id":             dupErr.ProjectID,
				"range":                  dupErr.Range,
			},
			RecoveryHint: "Update the existing allocation instead of creating a new one",
		}
	default:
		return nil
	}
}
