package domain

import "time"

// DefaultRoleLabel is surfaced when a posting carries no role labels.
const DefaultRoleLabel = "General"

// Project is a job posting owned by an employer.
type Project struct {
	ID          int64
	Name        string
	Description string
	Salary      float64
	Open        bool
	Roles       []string
	EmployerID  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DisplayRole returns the first role label. Postings may carry several
// labels as data but only the first is surfaced operationally.
func (p *Project) DisplayRole() string {
	return RoleLabel(p.Roles)
}

// RoleLabel is the single place deciding which label represents a posting.
func RoleLabel(roles []string) string {
	if len(roles) == 0 {
		return DefaultRoleLabel
	}
	return roles[0]
}
