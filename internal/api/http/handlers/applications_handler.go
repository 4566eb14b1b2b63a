package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/api/dto"
	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/repository"
	"github.com/spec-kit/jobboard-service/internal/service"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// ApplicationsHandler manages the apply/review workflow endpoints.
type ApplicationsHandler struct {
	service *service.ApplicationService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{service: applicationService}
}

// Apply handles POST /api/projects/:id/apply.
func (h *ApplicationsHandler) Apply(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	projectID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	app, err := h.service.Apply(c.Context(), principal.User, projectID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"applicationId": app.ID,
		"projectId":     app.ProjectID,
		"status":        app.Status,
		"appliedAt":     app.AppliedAt,
	}})
}

// ApplicationStatus handles GET /api/projects/:id/application-status.
func (h *ApplicationsHandler) ApplicationStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	projectID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	applied, err := h.service.HasApplied(c.Context(), principal.User, projectID)
	if err != nil {
		return err
	}
	return c.JSON(dto.ApplicationStatusResponse{HasApplied: applied})
}

// MyApplications handles GET /api/projects/applications/my.
func (h *ApplicationsHandler) MyApplications(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	rows, err := h.service.ListForEmployee(c.Context(), principal.User)
	if err != nil {
		return err
	}
	items := make([]dto.MyApplicationResponse, 0, len(rows))
	for i := range rows {
		items = append(items, myApplicationResponse(&rows[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// AllApplicants handles GET /api/projects/applicants/all.
func (h *ApplicationsHandler) AllApplicants(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	rows, err := h.service.ListForEmployer(c.Context(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicantResponses(rows)})
}

// ProjectApplicants handles GET /api/projects/:id/employees.
func (h *ApplicationsHandler) ProjectApplicants(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	projectID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	rows, err := h.service.ListForProject(c.Context(), principal.User, projectID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicantResponses(rows)})
}

// UpdateStatus handles PUT /api/projects/applications/:id/status.
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	applicationID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	app, err := h.service.UpdateStatus(c.Context(), principal.User, applicationID, domain.ApplicationStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"applicationId": app.ID,
		"status":        app.Status,
	}})
}

func myApplicationResponse(row *repository.EmployeeApplicationRow) dto.MyApplicationResponse {
	return dto.MyApplicationResponse{
		ApplicationID: row.ApplicationID,
		ProjectID:     row.ProjectID,
		ProjectName:   row.ProjectName,
		Company:       row.CompanyName,
		Role:          domain.RoleLabel(row.Roles),
		Salary:        row.Salary,
		EmployerEmail: row.EmployerEmail,
		AppliedAt:     row.AppliedAt,
		Status:        string(row.Status),
	}
}

func applicantResponses(rows []repository.EmployerApplicantRow) []dto.ApplicantResponse {
	items := make([]dto.ApplicantResponse, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		items = append(items, dto.ApplicantResponse{
			ApplicationID: row.ApplicationID,
			ProjectID:     row.ProjectID,
			ProjectName:   row.ProjectName,
			Role:          domain.RoleLabel(row.Roles),
			EmployeeID:    row.EmployeeID,
			FirstName:     row.FirstName,
			LastName:      row.LastName,
			Email:         row.Email,
			JoinedAt:      row.AppliedAt,
			Status:        string(row.Status),
		})
	}
	return items
}
