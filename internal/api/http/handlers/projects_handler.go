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

// ProjectsHandler manages job posting endpoints.
type ProjectsHandler struct {
	service *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projectService *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{service: projectService}
}

// ListProjects handles GET /api/projects.
func (h *ProjectsHandler) ListProjects(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	summaries, err := h.service.List(c.Context(), principal.User)
	if err != nil {
		return err
	}
	items := make([]dto.ProjectResponse, 0, len(summaries))
	for i := range summaries {
		items = append(items, projectSummaryResponse(&summaries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListOwnProjects handles GET /api/projects/own.
func (h *ProjectsHandler) ListOwnProjects(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	projects, err := h.service.ListOwn(c.Context(), principal.User)
	if err != nil {
		return err
	}
	items := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		items = append(items, projectResponse(&projects[i], nil))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetProject handles GET /api/projects/:id.
func (h *ProjectsHandler) GetProject(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.service.Get(c.Context(), principal.User, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ProjectDetailResponse{
		ProjectResponse: projectResponse(&detail.Project, detail.CompanyName),
		EmployerEmail:   detail.EmployerEmail,
	}})
}

// CreateProject handles POST /api/projects.
func (h *ProjectsHandler) CreateProject(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.ProjectCreateInput{
		Name:        req.Name,
		Description: req.Description,
		Salary:      req.Salary,
		Roles:       req.Roles,
	}
	project, err := h.service.Create(c.Context(), principal.User, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": projectResponse(project, nil)})
}

// UpdateProject handles PUT /api/projects/:id.
func (h *ProjectsHandler) UpdateProject(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.ProjectUpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Salary:      req.Salary,
		Roles:       req.Roles,
		Open:        req.Open,
	}
	project, err := h.service.Update(c.Context(), principal.User, id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": projectResponse(project, nil)})
}

// DeleteProject handles DELETE /api/projects/:id.
func (h *ProjectsHandler) DeleteProject(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), principal.User, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "project deleted"}})
}

func projectResponse(project *domain.Project, company *string) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Salary:      project.Salary,
		Open:        project.Open,
		Roles:       project.Roles,
		Role:        project.DisplayRole(),
		EmployerID:  project.EmployerID,
		Company:     company,
	}
}

func projectSummaryResponse(summary *repository.ProjectSummary) dto.ProjectResponse {
	return projectResponse(&summary.Project, summary.CompanyName)
}
