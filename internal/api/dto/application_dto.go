package dto

import "time"

// UpdateApplicationStatusRequest payload for employer decisions.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}

// ApplicationStatusResponse reports whether the caller has applied.
type ApplicationStatusResponse struct {
	HasApplied bool `json:"hasApplied"`
}

// MyApplicationResponse is one entry of an employee's application list.
type MyApplicationResponse struct {
	ApplicationID int64     `json:"applicationId"`
	ProjectID     int64     `json:"projectId"`
	ProjectName   string    `json:"projectName"`
	Company       *string   `json:"company,omitempty"`
	Role          string    `json:"role"`
	Salary        float64   `json:"salary"`
	EmployerEmail string    `json:"employerEmail"`
	AppliedAt     time.Time `json:"appliedAt"`
	Status        string    `json:"status"`
}

// ApplicantResponse is one entry of an employer's applicant list.
type ApplicantResponse struct {
	ApplicationID int64     `json:"applicationId"`
	ProjectID     int64     `json:"projectId"`
	ProjectName   string    `json:"projectName"`
	Role          string    `json:"role"`
	EmployeeID    int64     `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	JoinedAt      time.Time `json:"joinedAt"`
	Status        string    `json:"status"`
}
