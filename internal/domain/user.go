package domain

import "time"

// UserRole distinguishes employer accounts from employee accounts.
type UserRole string

const (
	RoleEmployer UserRole = "employer"
	RoleEmployee UserRole = "employee"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	return r == RoleEmployer || r == RoleEmployee
}

// User is the domain model for registered identities. Employers own
// projects; employees apply to them. The role is fixed at registration.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Email        string
	Role         UserRole
	CompanyName  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
