package domain

import "time"

// ApplicationStatus enumerates lifecycle states for applications.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Terminal reports whether the status admits no further transitions.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

// Decision reports whether the status is a valid review outcome.
func (s ApplicationStatus) Decision() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

// Application links one employee to one project. At most one application
// exists per (project, employee) pair.
type Application struct {
	ID         int64
	ProjectID  int64
	EmployeeID int64
	Status     ApplicationStatus
	AppliedAt  time.Time
	UpdatedAt  time.Time
}
