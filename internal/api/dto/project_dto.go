package dto

// CreateProjectRequest payload for new postings.
type CreateProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Salary      float64  `json:"salary"`
	Roles       []string `json:"roles"`
}

// UpdateProjectRequest payload for partial posting updates.
type UpdateProjectRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Salary      *float64 `json:"salary"`
	Roles       []string `json:"roles"`
	Open        *bool    `json:"open"`
}

// ProjectResponse is a posting shaped for listings.
type ProjectResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Salary      float64  `json:"salary"`
	Open        bool     `json:"open"`
	Roles       []string `json:"roles"`
	Role        string   `json:"role"`
	EmployerID  int64    `json:"employerId"`
	Company     *string  `json:"company,omitempty"`
}

// ProjectDetailResponse additionally carries the employer contact email.
type ProjectDetailResponse struct {
	ProjectResponse
	EmployerEmail string `json:"employerEmail"`
}
