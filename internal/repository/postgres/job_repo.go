package postgres

import (
	"context"
	"errors"
	"time"

	"recruiter-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `id, title, description, requirements, location, salary_range,
	job_type, experience_level, posted_by, is_active, created_at, updated_at`

func scanJob(row pgx.Row, j *domain.Job) error {
	return row.Scan(
		&j.ID, &j.Title, &j.Description, &j.Requirements, &j.Location,
		&j.SalaryRange, &j.JobType, &j.ExperienceLevel, &j.PostedBy,
		&j.IsActive, &j.CreatedAt, &j.UpdatedAt,
	)
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs
			(title, description, requirements, location, salary_range, job_type,
			 experience_level, posted_by, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	job.IsActive = true

	return r.db.QueryRow(ctx, query,
		job.Title, job.Description, job.Requirements, job.Location,
		job.SalaryRange, job.JobType, job.ExperienceLevel, job.PostedBy,
		job.IsActive, job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	var job domain.Job
	err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id), &job)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	query := `
		SELECT ` + jobColumns + `, COUNT(*) OVER() AS total
		FROM jobs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	return r.fetch(ctx, query, limit, offset)
}

func (r *jobRepo) FetchActive(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	query := `
		SELECT ` + jobColumns + `, COUNT(*) OVER() AS total
		FROM jobs
		WHERE is_active = TRUE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	return r.fetch(ctx, query, limit, offset)
}

func (r *jobRepo) fetch(ctx context.Context, query string, limit, offset int) ([]domain.Job, int64, error) {
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	var total int64
	for rows.Next() {
		var j domain.Job
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Description, &j.Requirements, &j.Location,
			&j.SalaryRange, &j.JobType, &j.ExperienceLevel, &j.PostedBy,
			&j.IsActive, &j.CreatedAt, &j.UpdatedAt, &total,
		); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	return jobs, total, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `
		UPDATE jobs
		SET title = $2, description = $3, requirements = $4, location = $5,
		    salary_range = $6, job_type = $7, experience_level = $8,
		    is_active = $9, updated_at = $10
		WHERE id = $1`

	job.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Requirements, job.Location,
		job.SalaryRange, job.JobType, job.ExperienceLevel, job.IsActive, job.UpdatedAt)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate soft-deletes the posting by clearing its active flag
func (r *jobRepo) Deactivate(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE jobs SET is_active = FALSE, updated_at = $2 WHERE id = $1`, id, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
