package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/jobboard-service/internal/domain"
)

// ProjectSummary is a project joined with its employer's company name.
type ProjectSummary struct {
	domain.Project
	CompanyName *string
}

// ProjectDetail additionally carries the employer's contact email.
type ProjectDetail struct {
	domain.Project
	CompanyName   *string
	EmployerEmail string
}

// ProjectRepository encapsulates job posting persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	GetDetail(ctx context.Context, id int64) (*ProjectDetail, error)
	ListAll(ctx context.Context) ([]ProjectSummary, error)
	ListByEmployer(ctx context.Context, employerID int64) ([]domain.Project, error)
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository instantiates repository.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (name, description, salary, open, roles, employer_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		project.Name,
		project.Description,
		project.Salary,
		project.Open,
		encodeRoles(project.Roles),
		project.EmployerID,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `
        UPDATE projects SET name=$1, description=$2, salary=$3, open=$4, roles=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		project.Name,
		project.Description,
		project.Salary,
		project.Open,
		encodeRoles(project.Roles),
		project.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	const query = `
        SELECT id, name, description, salary, open, roles, employer_id, created_at, updated_at
        FROM projects WHERE id=$1`

	var project domain.Project
	var rawRoles string
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Salary,
		&project.Open,
		&rawRoles,
		&project.EmployerID,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return nil, err
	}
	project.Roles = decodeRoles(rawRoles)
	return &project, nil
}

func (r *projectRepository) GetDetail(ctx context.Context, id int64) (*ProjectDetail, error) {
	const query = `
        SELECT p.id, p.name, p.description, p.salary, p.open, p.roles, p.employer_id,
               p.created_at, p.updated_at, u.company_name, u.email
        FROM projects p
        JOIN users u ON u.id = p.employer_id
        WHERE p.id=$1`

	var detail ProjectDetail
	var rawRoles string
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.Name,
		&detail.Description,
		&detail.Salary,
		&detail.Open,
		&rawRoles,
		&detail.EmployerID,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.CompanyName,
		&detail.EmployerEmail,
	); err != nil {
		return nil, err
	}
	detail.Roles = decodeRoles(rawRoles)
	return &detail, nil
}

func (r *projectRepository) ListAll(ctx context.Context) ([]ProjectSummary, error) {
	const query = `
        SELECT p.id, p.name, p.description, p.salary, p.open, p.roles, p.employer_id,
               p.created_at, p.updated_at, u.company_name
        FROM projects p
        JOIN users u ON u.id = p.employer_id
        ORDER BY p.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ProjectSummary
	for rows.Next() {
		var summary ProjectSummary
		var rawRoles string
		if err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.Description,
			&summary.Salary,
			&summary.Open,
			&rawRoles,
			&summary.EmployerID,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&summary.CompanyName,
		); err != nil {
			return nil, err
		}
		summary.Roles = decodeRoles(rawRoles)
		result = append(result, summary)
	}
	return result, rows.Err()
}

func (r *projectRepository) ListByEmployer(ctx context.Context, employerID int64) ([]domain.Project, error) {
	const query = `
        SELECT id, name, description, salary, open, roles, employer_id, created_at, updated_at
        FROM projects WHERE employer_id=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, employerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Project
	for rows.Next() {
		var project domain.Project
		var rawRoles string
		if err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.Description,
			&project.Salary,
			&project.Open,
			&rawRoles,
			&project.EmployerID,
			&project.CreatedAt,
			&project.UpdatedAt,
		); err != nil {
			return nil, err
		}
		project.Roles = decodeRoles(rawRoles)
		result = append(result, project)
	}
	return result, rows.Err()
}
