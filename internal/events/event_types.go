package events

import (
	"time"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProjectCreated           EventType = "project_created"
	EventProjectStatusChanged     EventType = "project_status_changed"
	EventApplicationSubmitted     EventType = "application_submitted"
	EventApplicationStatusChanged EventType = "application_status_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID int64           `json:"user_id"`
	Role   domain.UserRole `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	ProjectID int64       `json:"project_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ProjectCreatedPayload payload.
type ProjectCreatedPayload struct {
	Name   string   `json:"name"`
	Salary float64  `json:"salary"`
	Roles  []string `json:"roles"`
}

// ProjectStatusChangedPayload payload.
type ProjectStatusChangedPayload struct {
	Open bool `json:"open"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	ApplicationID int64 `json:"application_id"`
	EmployeeID    int64 `json:"employee_id"`
	EmployerID    int64 `json:"employer_id"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	ApplicationID int64                    `json:"application_id"`
	EmployeeID    int64                    `json:"employee_id"`
	OldStatus     domain.ApplicationStatus `json:"old_status"`
	NewStatus     domain.ApplicationStatus `json:"new_status"`
}
