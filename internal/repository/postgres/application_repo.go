package postgres

import (
	"context"
	"errors"
	"time"

	"recruiter-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.JobApplication) error {
	query := `
		INSERT INTO job_applications
			(job_id, candidate_user_id, status, cover_letter, resume_url, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	now := time.Now()
	app.AppliedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.ApplicationStatusPending
	}

	return r.db.QueryRow(ctx, query,
		app.JobID, app.CandidateUserID, app.Status, app.CoverLetter,
		app.ResumeURL, app.AppliedAt, app.UpdatedAt,
	).Scan(&app.ID)
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.JobApplication, error) {
	query := `
		SELECT a.id, a.job_id, a.candidate_user_id, a.status, a.cover_letter,
		       a.resume_url, a.applied_at, a.updated_at,
		       j.title AS job_title,
		       u.full_name AS candidate_name
		FROM job_applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		LEFT JOIN users u ON a.candidate_user_id = u.id
		WHERE a.id = $1`

	var app domain.JobApplication
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.JobID, &app.CandidateUserID, &app.Status, &app.CoverLetter,
		&app.ResumeURL, &app.AppliedAt, &app.UpdatedAt,
		&app.JobTitle, &app.CandidateName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.JobApplication, error) {
	query := `
		SELECT a.id, a.job_id, a.candidate_user_id, a.status, a.cover_letter,
		       a.resume_url, a.applied_at, a.updated_at,
		       j.title AS job_title,
		       u.full_name AS candidate_name
		FROM job_applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		LEFT JOIN users u ON a.candidate_user_id = u.id
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC`

	return r.queryApplications(ctx, query, jobID)
}

func (r *applicationRepo) GetByUserID(ctx context.Context, userID string) ([]domain.JobApplication, error) {
	query := `
		SELECT a.id, a.job_id, a.candidate_user_id, a.status, a.cover_letter,
		       a.resume_url, a.applied_at, a.updated_at,
		       j.title AS job_title,
		       u.full_name AS candidate_name
		FROM job_applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		LEFT JOIN users u ON a.candidate_user_id = u.id
		WHERE a.candidate_user_id = $1
		ORDER BY a.applied_at DESC`

	return r.queryApplications(ctx, query, userID)
}

func (r *applicationRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.JobApplication, int64, error) {
	query := `
		SELECT a.id, a.job_id, a.candidate_user_id, a.status, a.cover_letter,
		       a.resume_url, a.applied_at, a.updated_at,
		       j.title AS job_title,
		       u.full_name AS candidate_name,
		       COUNT(*) OVER() AS total
		FROM job_applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		LEFT JOIN users u ON a.candidate_user_id = u.id
		ORDER BY a.applied_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var apps []domain.JobApplication
	var total int64
	for rows.Next() {
		var app domain.JobApplication
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.CandidateUserID, &app.Status, &app.CoverLetter,
			&app.ResumeURL, &app.AppliedAt, &app.UpdatedAt,
			&app.JobTitle, &app.CandidateName, &total,
		); err != nil {
			return nil, 0, err
		}
		apps = append(apps, app)
	}
	return apps, total, rows.Err()
}

func (r *applicationRepo) queryApplications(ctx context.Context, query string, arg any) ([]domain.JobApplication, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.JobApplication
	for rows.Next() {
		var app domain.JobApplication
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.CandidateUserID, &app.Status, &app.CoverLetter,
			&app.ResumeURL, &app.AppliedAt, &app.UpdatedAt,
			&app.JobTitle, &app.CandidateName,
		); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// CheckExists checks if an application already exists for the job/user combination
func (r *applicationRepo) CheckExists(ctx context.Context, jobID int64, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM job_applications WHERE job_id = $1 AND candidate_user_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, jobID, userID).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE job_applications SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
