package project

import "fmt"

// Status represents the lifecycle state of a project.
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusOnHold    Status = "on-hold"
)

// ParseStatus validates a status string from seed data or storage.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPlanned, StatusActive, StatusCompleted, StatusOnHold:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown project status %q", s)
}

// Project is a staffable initiative. Reference data: the allocation core
// reads projects but never creates or mutates them.
type Project struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status Status `json:"status"`
}
