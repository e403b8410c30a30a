package postgres

import (
	"context"

	"recruiter-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// matchRepo is read-only. Matches are written by the external matching
// pipeline; this service only lists them.
type matchRepo struct {
	db *pgxpool.Pool
}

func NewMatchRepository(db *pgxpool.Pool) domain.MatchRepository {
	return &matchRepo{db: db}
}

func (r *matchRepo) GetByUserID(ctx context.Context, userID string) ([]domain.JobMatch, error) {
	query := `
		SELECT m.id, m.job_id, m.candidate_user_id, m.match_score, m.created_at,
		       j.title AS job_title, j.location AS job_location
		FROM job_matches m
		LEFT JOIN jobs j ON m.job_id = j.id
		WHERE m.candidate_user_id = $1
		ORDER BY m.match_score DESC`

	return r.queryMatches(ctx, query, userID)
}

func (r *matchRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.JobMatch, int64, error) {
	query := `
		SELECT m.id, m.job_id, m.candidate_user_id, m.match_score, m.created_at,
		       j.title AS job_title, j.location AS job_location,
		       COUNT(*) OVER() AS total
		FROM job_matches m
		LEFT JOIN jobs j ON m.job_id = j.id
		ORDER BY m.created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var matches []domain.JobMatch
	var total int64
	for rows.Next() {
		var m domain.JobMatch
		if err := rows.Scan(
			&m.ID, &m.JobID, &m.CandidateUserID, &m.MatchScore, &m.CreatedAt,
			&m.JobTitle, &m.JobLocation, &total,
		); err != nil {
			return nil, 0, err
		}
		matches = append(matches, m)
	}
	return matches, total, rows.Err()
}

func (r *matchRepo) TopByUserID(ctx context.Context, userID string, limit int) ([]domain.JobMatch, error) {
	query := `
		SELECT m.id, m.job_id, m.candidate_user_id, m.match_score, m.created_at,
		       j.title AS job_title, j.location AS job_location
		FROM job_matches m
		LEFT JOIN jobs j ON m.job_id = j.id
		WHERE m.candidate_user_id = $1
		ORDER BY m.match_score DESC
		LIMIT $2`

	return r.queryMatches(ctx, query, userID, limit)
}

func (r *matchRepo) queryMatches(ctx context.Context, query string, args ...any) ([]domain.JobMatch, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []domain.JobMatch
	for rows.Next() {
		var m domain.JobMatch
		if err := rows.Scan(
			&m.ID, &m.JobID, &m.CandidateUserID, &m.MatchScore, &m.CreatedAt,
			&m.JobTitle, &m.JobLocation,
		); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
