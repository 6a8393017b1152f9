package audit

import "time"

// Action classifies an audit entry.
type Action string

const (
	ActionAllocated Action = "allocated"
	ActionUpdated   Action = "updated"
)

// Entry records one successful allocation mutation.
type Entry struct {
	ID           int64     `json:"id"`
	AllocationID string    `json:"allocation_id"`
	EngineerID   string    `json:"engineer_id"`
	ProjectID    string    `json:"project_id"`
	Action       Action    `json:"action"`
	Summary      string    `json:"summary"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListOptions filters audit queries.
type ListOptions struct {
	EngineerID string
	Limit      int
}
