package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/events"
	"github.com/spec-kit/jobboard-service/internal/repository"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// ProjectService coordinates job posting CRUD with ownership checks.
type ProjectService struct {
	projects   repository.ProjectRepository
	dispatcher events.Dispatcher
}

// ProjectDependencies bundles repositories for the project service.
type ProjectDependencies struct {
	ProjectRepo repository.ProjectRepository
	Dispatcher  events.Dispatcher
}

// ProjectCreateInput describes posting creation payload.
type ProjectCreateInput struct {
	Name        string
	Description string
	Salary      float64
	Roles       []string
}

// ProjectUpdateInput describes a partial posting update. Nil fields are
// left untouched; Open toggles the posting independently of the
// application flow.
type ProjectUpdateInput struct {
	Name        *string
	Description *string
	Salary      *float64
	Roles       []string
	Open        *bool
}

// NewProjectService constructs the service.
func NewProjectService(deps ProjectDependencies) *ProjectService {
	return &ProjectService{projects: deps.ProjectRepo, dispatcher: deps.Dispatcher}
}

// Create opens a new posting owned by the calling employer.
func (s *ProjectService) Create(ctx context.Context, caller *domain.User, input ProjectCreateInput) (*domain.Project, error) {
	if err := auth.RequireRole(caller, domain.RoleEmployer); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("name and description required", nil)
	}
	if input.Salary < 0 {
		return nil, apperrors.NewValidationError("salary must be non-negative", map[string]any{"salary": input.Salary})
	}

	project := &domain.Project{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Salary:      input.Salary,
		Open:        true,
		Roles:       input.Roles,
		EmployerID:  caller.ID,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventProjectCreated,
		ProjectID: project.ID,
		Actor:     events.Actor{UserID: caller.ID, Role: caller.Role},
		Payload: events.ProjectCreatedPayload{
			Name:   project.Name,
			Salary: project.Salary,
			Roles:  project.Roles,
		},
	})
	return project, nil
}

// List returns all postings with employer company names.
func (s *ProjectService) List(ctx context.Context, caller *domain.User) ([]repository.ProjectSummary, error) {
	if caller == nil {
		return nil, apperrors.NewUnauthorized("Not authenticated")
	}
	summaries, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return summaries, nil
}

// ListOwn returns the calling employer's postings.
func (s *ProjectService) ListOwn(ctx context.Context, caller *domain.User) ([]domain.Project, error) {
	if err := auth.RequireRole(caller, domain.RoleEmployer); err != nil {
		return nil, err
	}
	projects, err := s.projects.ListByEmployer(ctx, caller.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return projects, nil
}

// Get returns one posting with employer company and contact email.
func (s *ProjectService) Get(ctx context.Context, caller *domain.User, id int64) (*repository.ProjectDetail, error) {
	if caller == nil {
		return nil, apperrors.NewUnauthorized("Not authenticated")
	}
	detail, err := s.projects.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", map[string]any{"project_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return detail, nil
}

// Update mutates a posting owned by the caller, including the open flag.
// Closing a posting only blocks new applications; pending ones are kept.
func (s *ProjectService) Update(ctx context.Context, caller *domain.User, id int64, input ProjectUpdateInput) (*domain.Project, error) {
	if err := auth.RequireRole(caller, domain.RoleEmployer); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", map[string]any{"project_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.RequireOwnership(caller, project.EmployerID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperrors.NewValidationError("name cannot be empty", nil)
		}
		project.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		project.Description = strings.TrimSpace(*input.Description)
	}
	if input.Salary != nil {
		if *input.Salary < 0 {
			return nil, apperrors.NewValidationError("salary must be non-negative", map[string]any{"salary": *input.Salary})
		}
		project.Salary = *input.Salary
	}
	if input.Roles != nil {
		project.Roles = input.Roles
	}

	openChanged := false
	if input.Open != nil && *input.Open != project.Open {
		project.Open = *input.Open
		openChanged = true
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, apperrors.MapError(err)
	}

	if openChanged {
		s.publishEvent(ctx, events.Event{
			Type:      events.EventProjectStatusChanged,
			ProjectID: project.ID,
			Actor:     events.Actor{UserID: caller.ID, Role: caller.Role},
			Payload:   events.ProjectStatusChangedPayload{Open: project.Open},
		})
	}
	return project, nil
}

// Delete removes a posting owned by the caller.
func (s *ProjectService) Delete(ctx context.Context, caller *domain.User, id int64) error {
	if err := auth.RequireRole(caller, domain.RoleEmployer); err != nil {
		return err
	}

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("project", map[string]any{"project_id": id})
		}
		return apperrors.MapError(err)
	}
	if err := auth.RequireOwnership(caller, project.EmployerID); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *ProjectService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
