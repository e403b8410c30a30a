package postgres

import (
	"context"
	"errors"
	"time"

	"recruiter-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type candidateRepo struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

// GetByUserID returns the profile with its nested skills and experiences
func (r *candidateRepo) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	query := `
		SELECT id, user_id, phone_number, location, current_position,
		       years_of_experience, skills, education, resume_url,
		       created_at, updated_at
		FROM candidate_profiles WHERE user_id = $1`

	var p domain.CandidateProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.PhoneNumber, &p.Location, &p.CurrentPosition,
		&p.YearsOfExperience, pq.Array(&p.Skills), &p.Education, &p.ResumeURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if p.SkillRecords, err = r.listSkills(ctx, p.ID); err != nil {
		return nil, err
	}
	if p.Experiences, err = r.listExperiences(ctx, p.ID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *candidateRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.CandidateProfile, int64, error) {
	query := `
		SELECT id, user_id, phone_number, location, current_position,
		       years_of_experience, skills, education, resume_url,
		       created_at, updated_at,
		       COUNT(*) OVER() AS total
		FROM candidate_profiles
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []domain.CandidateProfile
	var total int64
	for rows.Next() {
		var p domain.CandidateProfile
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.PhoneNumber, &p.Location, &p.CurrentPosition,
			&p.YearsOfExperience, pq.Array(&p.Skills), &p.Education, &p.ResumeURL,
			&p.CreatedAt, &p.UpdatedAt, &total,
		); err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}
	return profiles, total, rows.Err()
}

func (r *candidateRepo) Create(ctx context.Context, p *domain.CandidateProfile) error {
	query := `
		INSERT INTO candidate_profiles
			(user_id, phone_number, location, current_position, years_of_experience,
			 skills, education, resume_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	return r.db.QueryRow(ctx, query,
		p.UserID, p.PhoneNumber, p.Location, p.CurrentPosition, p.YearsOfExperience,
		pq.Array(p.Skills), p.Education, p.ResumeURL, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

func (r *candidateRepo) Update(ctx context.Context, p *domain.CandidateProfile) error {
	query := `
		UPDATE candidate_profiles
		SET phone_number = $2, location = $3, current_position = $4,
		    years_of_experience = $5, skills = $6, education = $7,
		    resume_url = $8, updated_at = $9
		WHERE user_id = $1`

	p.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		p.UserID, p.PhoneNumber, p.Location, p.CurrentPosition,
		p.YearsOfExperience, pq.Array(p.Skills), p.Education, p.ResumeURL, p.UpdatedAt)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *candidateRepo) AddSkill(ctx context.Context, s *domain.CandidateSkill) error {
	query := `
		INSERT INTO candidate_skills (profile_id, skill_name, skill_level, years_of_experience)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return r.db.QueryRow(ctx, query,
		s.ProfileID, s.SkillName, s.SkillLevel, s.YearsOfExperience).Scan(&s.ID)
}

func (r *candidateRepo) DeleteSkill(ctx context.Context, profileID, skillID int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM candidate_skills WHERE id = $1 AND profile_id = $2`, skillID, profileID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *candidateRepo) AddExperience(ctx context.Context, e *domain.CandidateExperience) error {
	query := `
		INSERT INTO candidate_experiences
			(profile_id, company_name, position, start_date, end_date, current_job, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	return r.db.QueryRow(ctx, query,
		e.ProfileID, e.CompanyName, e.Position, e.StartDate, e.EndDate,
		e.CurrentJob, e.Description).Scan(&e.ID)
}

func (r *candidateRepo) DeleteExperience(ctx context.Context, profileID, expID int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM candidate_experiences WHERE id = $1 AND profile_id = $2`, expID, profileID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *candidateRepo) listSkills(ctx context.Context, profileID int64) ([]domain.CandidateSkill, error) {
	query := `
		SELECT id, profile_id, skill_name, skill_level, years_of_experience
		FROM candidate_skills WHERE profile_id = $1
		ORDER BY skill_name`

	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []domain.CandidateSkill
	for rows.Next() {
		var s domain.CandidateSkill
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.SkillName, &s.SkillLevel, &s.YearsOfExperience); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

func (r *candidateRepo) listExperiences(ctx context.Context, profileID int64) ([]domain.CandidateExperience, error) {
	query := `
		SELECT id, profile_id, company_name, position, start_date, end_date, current_job, description
		FROM candidate_experiences WHERE profile_id = $1
		ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exps []domain.CandidateExperience
	for rows.Next() {
		var e domain.CandidateExperience
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.CompanyName, &e.Position,
			&e.StartDate, &e.EndDate, &e.CurrentJob, &e.Description); err != nil {
			return nil, err
		}
		exps = append(exps, e)
	}
	return exps, rows.Err()
}
