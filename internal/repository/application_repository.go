package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// ErrDuplicateApplication is returned when the (project, employee) unique
// constraint rejects an insert. The constraint is the authoritative guard
// against the concurrent double-apply race; the service pre-check only
// produces the friendly error in the common case.
var ErrDuplicateApplication = errors.New("application already exists")

const uniqueViolationCode = "23505"

// EmployeeApplicationRow is an application joined with posting and employer
// details, shaped for the employee's "my applications" view.
type EmployeeApplicationRow struct {
	ApplicationID int64
	ProjectID     int64
	ProjectName   string
	CompanyName   *string
	Roles         []string
	Salary        float64
	EmployerEmail string
	AppliedAt     time.Time
	Status        domain.ApplicationStatus
}

// EmployerApplicantRow is an application joined with employee and posting
// details, shaped for the employer's applicant views.
type EmployerApplicantRow struct {
	ApplicationID int64
	ProjectID     int64
	ProjectName   string
	Roles         []string
	EmployeeID    int64
	FirstName     string
	LastName      string
	Email         string
	AppliedAt     time.Time
	Status        domain.ApplicationStatus
}

// ApplicationRepository encapsulates application persistence.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id int64) (*domain.Application, error)
	FindByProjectAndEmployee(ctx context.Context, projectID, employeeID int64) (*domain.Application, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]EmployeeApplicationRow, error)
	ListByEmployer(ctx context.Context, employerID int64) ([]EmployerApplicantRow, error)
	ListByProject(ctx context.Context, projectID int64) ([]EmployerApplicantRow, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (project_id, employee_id, status)
        VALUES ($1, $2, $3)
        RETURNING id, applied_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		app.ProjectID,
		app.EmployeeID,
		app.Status,
	).Scan(&app.ID, &app.AppliedAt, &app.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	const query = `
        SELECT id, project_id, employee_id, status, applied_at, updated_at
        FROM applications WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *applicationRepository) FindByProjectAndEmployee(ctx context.Context, projectID, employeeID int64) (*domain.Application, error) {
	const query = `
        SELECT id, project_id, employee_id, status, applied_at, updated_at
        FROM applications WHERE project_id=$1 AND employee_id=$2`

	var app domain.Application
	if err := r.pool.QueryRow(ctx, query, projectID, employeeID).Scan(
		&app.ID,
		&app.ProjectID,
		&app.EmployeeID,
		&app.Status,
		&app.AppliedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Application, error) {
	var app domain.Application
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&app.ID,
		&app.ProjectID,
		&app.EmployeeID,
		&app.Status,
		&app.AppliedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]EmployeeApplicationRow, error) {
	const query = `
        SELECT a.id, a.project_id, p.name, u.company_name, p.roles, p.salary, u.email, a.applied_at, a.status
        FROM applications a
        JOIN projects p ON p.id = a.project_id
        JOIN users u ON u.id = p.employer_id
        WHERE a.employee_id=$1
        ORDER BY a.applied_at DESC`

	rows, err := r.pool.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []EmployeeApplicationRow
	for rows.Next() {
		var row EmployeeApplicationRow
		var rawRoles string
		if err := rows.Scan(
			&row.ApplicationID,
			&row.ProjectID,
			&row.ProjectName,
			&row.CompanyName,
			&rawRoles,
			&row.Salary,
			&row.EmployerEmail,
			&row.AppliedAt,
			&row.Status,
		); err != nil {
			return nil, err
		}
		row.Roles = decodeRoles(rawRoles)
		result = append(result, row)
	}
	return result, rows.Err()
}

// ListByEmployer returns applications to every project owned by the
// employer. Scoping by ownership happens here, in the JOIN, never by
// trusting a client-supplied employer id.
func (r *applicationRepository) ListByEmployer(ctx context.Context, employerID int64) ([]EmployerApplicantRow, error) {
	const query = applicantSelect + `
        WHERE p.employer_id=$1
        ORDER BY a.applied_at DESC`
	return r.listApplicants(ctx, query, employerID)
}

func (r *applicationRepository) ListByProject(ctx context.Context, projectID int64) ([]EmployerApplicantRow, error) {
	const query = applicantSelect + `
        WHERE a.project_id=$1
        ORDER BY a.applied_at DESC`
	return r.listApplicants(ctx, query, projectID)
}

const applicantSelect = `
        SELECT a.id, a.project_id, p.name, p.roles, u.id, u.first_name, u.last_name, u.email, a.applied_at, a.status
        FROM applications a
        JOIN projects p ON p.id = a.project_id
        JOIN users u ON u.id = a.employee_id`

func (r *applicationRepository) listApplicants(ctx context.Context, query string, arg any) ([]EmployerApplicantRow, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplicants(rows)
}

func scanApplicants(rows pgx.Rows) ([]EmployerApplicantRow, error) {
	var result []EmployerApplicantRow
	for rows.Next() {
		var row EmployerApplicantRow
		var rawRoles string
		if err := rows.Scan(
			&row.ApplicationID,
			&row.ProjectID,
			&row.ProjectName,
			&rawRoles,
			&row.EmployeeID,
			&row.FirstName,
			&row.LastName,
			&row.Email,
			&row.AppliedAt,
			&row.Status,
		); err != nil {
			return nil, err
		}
		row.Roles = decodeRoles(rawRoles)
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE applications SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
