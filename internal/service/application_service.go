package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/events"
	"github.com/spec-kit/jobboard-service/internal/repository"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// ApplicationService owns the apply/review lifecycle. It is the only
// component that creates or mutates application records. Every operation
// takes the resolved caller explicitly; nothing here reads session state.
type ApplicationService struct {
	applications repository.ApplicationRepository
	projects     repository.ProjectRepository
	dispatcher   events.Dispatcher
}

// ApplicationDependencies bundles repositories for the workflow service.
type ApplicationDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	ProjectRepo     repository.ProjectRepository
	Dispatcher      events.Dispatcher
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	return &ApplicationService{
		applications: deps.ApplicationRepo,
		projects:     deps.ProjectRepo,
		dispatcher:   deps.Dispatcher,
	}
}

// Apply creates a pending application from the caller to an open project.
func (s *ApplicationService) Apply(ctx context.Context, caller *domain.User, projectID int64) (*domain.Application, error) {
	if err := auth.RequireRole(caller, domain.RoleEmployee); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", map[string]any{"project_id": projectID})
		}
		return nil, apperrors.MapError(err)
	}
	if !project.Open {
		return nil, apperrors.NewProjectClosed()
	}

	// Advisory pre-check; the unique constraint is the authoritative guard.
	if _, err := s.applications.FindByProjectAndEmployee(ctx, projectID, caller.ID); err == nil {
		return nil, apperrors.NewDuplicateApplication()
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	app := &domain.Application{
		ProjectID:  projectID,
		EmployeeID: caller.ID,
		Status:     domain.ApplicationStatusPending,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicateApplication) {
			return nil, apperrors.NewDuplicateApplication()
		}
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventApplicationSubmitted,
		ProjectID: projectID,
		Actor:     events.Actor{UserID: caller.ID, Role: caller.Role},
		Payload: events.ApplicationSubmittedPayload{
			ApplicationID: app.ID,
			EmployeeID:    caller.ID,
			EmployerID:    project.EmployerID,
		},
	})
	return app, nil
}

// HasApplied reports whether the caller has an application for the project,
// regardless of its status. The stored status is never exposed here.
func (s *ApplicationService) HasApplied(ctx context.Context, caller *domain.User, projectID int64) (bool, error) {
	if err := auth.RequireRole(caller, domain.RoleEmployee); err != nil {
		return false, err
	}

	if _, err := s.applications.FindByProjectAndEmployee(ctx, projectID, caller.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, apperrors.MapError(err)
	}
	return true, nil
}

// ListForEmployee returns the caller's applications joined with posting details.
func (s *ApplicationService) ListForEmployee(ctx context.Context, caller *domain.User) ([]repository.EmployeeApplicationRow, error) {
	if err := auth.RequireRole(caller, domain.RoleEmployee); err != nil {
		return nil, err
	}
	rows, err := s.applications.ListByEmployee(ctx, caller.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}

// ListForEmployer returns every application to projects the caller owns.
// Scoping is computed from the caller's identity; a client-supplied
// employer id is never trusted.
func (s *ApplicationService) ListForEmployer(ctx context.Context, caller *domain.User) ([]repository.EmployerApplicantRow, error) {
	if err := auth.RequireRole(caller, domain.RoleEmployer); err != nil {
		return nil, err
	}
	rows, err := s.applications.ListByEmployer(ctx, caller.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}

// ListForProject returns the applicants to one project the caller owns.
func (s *ApplicationService) ListForProject(ctx context.Context, caller *domain.User, projectID int64) ([]repository.EmployerApplicantRow, error) {
	if err := auth.RequireRole(caller, domain.RoleEmployer); err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("project", map[string]any{"project_id": projectID})
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.RequireOwnership(caller, project.EmployerID); err != nil {
		return nil, err
	}

	rows, err := s.applications.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}

// UpdateStatus records the employer's decision on a pending application.
// Accepted and rejected are terminal; deciding an already-decided
// application fails rather than silently overwriting.
func (s *ApplicationService) UpdateStatus(ctx context.Context, caller *domain.User, applicationID int64, status domain.ApplicationStatus) (*domain.Application, error) {
	if err := auth.RequireRole(caller, domain.RoleEmployer); err != nil {
		return nil, err
	}
	if !status.Decision() {
		return nil, apperrors.NewValidationError("status must be accepted or rejected", map[string]any{"status": status})
	}

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("application", map[string]any{"application_id": applicationID})
		}
		return nil, apperrors.MapError(err)
	}

	project, err := s.projects.GetByID(ctx, app.ProjectID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := auth.RequireOwnership(caller, project.EmployerID); err != nil {
		return nil, err
	}

	if app.Status.Terminal() {
		return nil, apperrors.NewInvalidTransition(string(app.Status))
	}

	oldStatus := app.Status
	if err := s.applications.UpdateStatus(ctx, app.ID, status); err != nil {
		return nil, apperrors.MapError(err)
	}
	app.Status = status

	s.publishEvent(ctx, events.Event{
		Type:      events.EventApplicationStatusChanged,
		ProjectID: app.ProjectID,
		Actor:     events.Actor{UserID: caller.ID, Role: caller.Role},
		Payload: events.ApplicationStatusChangedPayload{
			ApplicationID: app.ID,
			EmployeeID:    app.EmployeeID,
			OldStatus:     oldStatus,
			NewStatus:     status,
		},
	})
	return app, nil
}

func (s *ApplicationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
