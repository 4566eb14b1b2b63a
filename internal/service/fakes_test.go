package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/events"
	"github.com/spec-kit/jobboard-service/internal/repository"
)

// In-memory repository fakes mirroring the pgx-backed implementations:
// not-found is pgx.ErrNoRows and duplicate inserts surface
// repository.ErrDuplicateApplication, like the unique constraint would.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	nextID   int64
	projects map[int64]*domain.Project
	users    *fakeUserRepo
}

func newFakeProjectRepo(users *fakeUserRepo) *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[int64]*domain.Project), users: users}
}

func (r *fakeProjectRepo) Create(_ context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	project.ID = r.nextID
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	clone := *project
	r.projects[project.ID] = &clone
	return nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[project.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *project
	r.projects[project.ID] = &clone
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.projects, id)
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id int64) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	project, ok := r.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *project
	return &clone, nil
}

func (r *fakeProjectRepo) GetDetail(ctx context.Context, id int64) (*repository.ProjectDetail, error) {
	project, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	employer, err := r.users.GetByID(ctx, project.EmployerID)
	if err != nil {
		return nil, err
	}
	return &repository.ProjectDetail{
		Project:       *project,
		CompanyName:   employer.CompanyName,
		EmployerEmail: employer.Email,
	}, nil
}

func (r *fakeProjectRepo) ListAll(ctx context.Context) ([]repository.ProjectSummary, error) {
	r.mu.Lock()
	ids := make([]int64, 0, len(r.projects))
	for id := range r.projects {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	var result []repository.ProjectSummary
	for _, id := range ids {
		detail, err := r.GetDetail(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, repository.ProjectSummary{Project: detail.Project, CompanyName: detail.CompanyName})
	}
	return result, nil
}

func (r *fakeProjectRepo) ListByEmployer(_ context.Context, employerID int64) ([]domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Project
	for _, project := range r.projects {
		if project.EmployerID == employerID {
			result = append(result, *project)
		}
	}
	return result, nil
}

type fakeApplicationRepo struct {
	mu       sync.Mutex
	nextID   int64
	apps     map[int64]*domain.Application
	projects *fakeProjectRepo
	users    *fakeUserRepo
}

func newFakeApplicationRepo(projects *fakeProjectRepo, users *fakeUserRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[int64]*domain.Application), projects: projects, users: users}
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.ProjectID == app.ProjectID && existing.EmployeeID == app.EmployeeID {
			return repository.ErrDuplicateApplication
		}
	}
	r.nextID++
	app.ID = r.nextID
	app.AppliedAt = time.Now()
	app.UpdatedAt = app.AppliedAt
	clone := *app
	r.apps[app.ID] = &clone
	return nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id int64) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *app
	return &clone, nil
}

func (r *fakeApplicationRepo) FindByProjectAndEmployee(_ context.Context, projectID, employeeID int64) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.ProjectID == projectID && app.EmployeeID == employeeID {
			clone := *app
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeApplicationRepo) ListByEmployee(ctx context.Context, employeeID int64) ([]repository.EmployeeApplicationRow, error) {
	r.mu.Lock()
	apps := make([]domain.Application, 0, len(r.apps))
	for _, app := range r.apps {
		if app.EmployeeID == employeeID {
			apps = append(apps, *app)
		}
	}
	r.mu.Unlock()

	var result []repository.EmployeeApplicationRow
	for _, app := range apps {
		project, err := r.projects.GetByID(ctx, app.ProjectID)
		if err != nil {
			return nil, err
		}
		employer, err := r.users.GetByID(ctx, project.EmployerID)
		if err != nil {
			return nil, err
		}
		result = append(result, repository.EmployeeApplicationRow{
			ApplicationID: app.ID,
			ProjectID:     project.ID,
			ProjectName:   project.Name,
			CompanyName:   employer.CompanyName,
			Roles:         project.Roles,
			Salary:        project.Salary,
			EmployerEmail: employer.Email,
			AppliedAt:     app.AppliedAt,
			Status:        app.Status,
		})
	}
	return result, nil
}

func (r *fakeApplicationRepo) ListByEmployer(ctx context.Context, employerID int64) ([]repository.EmployerApplicantRow, error) {
	r.mu.Lock()
	apps := make([]domain.Application, 0, len(r.apps))
	for _, app := range r.apps {
		apps = append(apps, *app)
	}
	r.mu.Unlock()

	var result []repository.EmployerApplicantRow
	for _, app := range apps {
		project, err := r.projects.GetByID(ctx, app.ProjectID)
		if err != nil {
			return nil, err
		}
		if project.EmployerID != employerID {
			continue
		}
		row, err := r.applicantRow(ctx, app, project)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, nil
}

func (r *fakeApplicationRepo) ListByProject(ctx context.Context, projectID int64) ([]repository.EmployerApplicantRow, error) {
	r.mu.Lock()
	apps := make([]domain.Application, 0, len(r.apps))
	for _, app := range r.apps {
		if app.ProjectID == projectID {
			apps = append(apps, *app)
		}
	}
	r.mu.Unlock()

	var result []repository.EmployerApplicantRow
	for _, app := range apps {
		project, err := r.projects.GetByID(ctx, app.ProjectID)
		if err != nil {
			return nil, err
		}
		row, err := r.applicantRow(ctx, app, project)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, nil
}

func (r *fakeApplicationRepo) applicantRow(ctx context.Context, app domain.Application, project *domain.Project) (repository.EmployerApplicantRow, error) {
	employee, err := r.users.GetByID(ctx, app.EmployeeID)
	if err != nil {
		return repository.EmployerApplicantRow{}, err
	}
	return repository.EmployerApplicantRow{
		ApplicationID: app.ID,
		ProjectID:     project.ID,
		ProjectName:   project.Name,
		Roles:         project.Roles,
		EmployeeID:    employee.ID,
		FirstName:     employee.FirstName,
		LastName:      employee.LastName,
		Email:         employee.Email,
		AppliedAt:     app.AppliedAt,
		Status:        app.Status,
	}, nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id int64, status domain.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return pgx.ErrNoRows
	}
	app.Status = status
	app.UpdatedAt = time.Now()
	return nil
}

type fakePasswordResetRepo struct {
	mu     sync.Mutex
	nextID int64
	tokens map[int64]*repository.PasswordResetToken
}

func newFakePasswordResetRepo() *fakePasswordResetRepo {
	return &fakePasswordResetRepo{tokens: make(map[int64]*repository.PasswordResetToken)}
}

func (r *fakePasswordResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	token.ID = r.nextID
	token.CreatedAt = time.Now()
	clone := *token
	r.tokens[token.ID] = &clone
	return nil
}

func (r *fakePasswordResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, token := range r.tokens {
		if token.Token == tokenStr {
			clone := *token
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakePasswordResetRepo) MarkUsed(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	token.UsedAt = &now
	return nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) eventsOfType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []events.Event
	for _, event := range d.published {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}
