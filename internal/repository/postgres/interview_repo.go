package postgres

import (
	"context"
	"errors"
	"time"

	"recruiter-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type interviewRepo struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepo{db: db}
}

const uniqueViolation = "23505"

const interviewSelect = `
	SELECT i.id, i.candidate_user_id, i.interviewer_id, i.job_id,
	       i.scheduled_date, i.duration, i.status, i.interview_type,
	       i.meeting_link, i.notes, i.feedback, i.rating,
	       i.created_at, i.updated_at,
	       COALESCE(cu.full_name, ''), COALESCE(iu.full_name, ''), COALESCE(j.title, ''),
	       COALESCE(cu.email, ''), COALESCE(iu.email, '')
	FROM interviews i
	LEFT JOIN users cu ON i.candidate_user_id = cu.id
	LEFT JOIN users iu ON i.interviewer_id = iu.id
	LEFT JOIN jobs j ON i.job_id = j.id`

func scanInterview(row pgx.Row) (*domain.Interview, error) {
	var iv domain.Interview
	err := row.Scan(
		&iv.ID, &iv.CandidateUserID, &iv.InterviewerID, &iv.JobID,
		&iv.ScheduledDate, &iv.Duration, &iv.Status, &iv.InterviewType,
		&iv.MeetingLink, &iv.Notes, &iv.Feedback, &iv.Rating,
		&iv.CreatedAt, &iv.UpdatedAt,
		&iv.CandidateName, &iv.InterviewerName, &iv.JobTitle,
		&iv.CandidateEmail, &iv.InterviewerEmail,
	)
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

// Create inserts the interview inside a transaction that first locks the
// candidate's interview rows for the job, closing the read-then-write race
// on the one-active-interview invariant. A partial unique index on
// (candidate_user_id, job_id) WHERE status IN ('SCHEDULED','IN_PROGRESS')
// backstops the check.
func (r *interviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM interviews
			WHERE candidate_user_id = $1 AND job_id = $2
			  AND status IN ($3, $4)
			FOR UPDATE
		)`,
		iv.CandidateUserID, iv.JobID,
		domain.InterviewStatusScheduled, domain.InterviewStatusInProgress,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateActiveInterview
	}

	now := time.Now()
	iv.CreatedAt = now
	iv.UpdatedAt = now
	if iv.Status == "" {
		iv.Status = domain.InterviewStatusScheduled
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO interviews
			(candidate_user_id, interviewer_id, job_id, scheduled_date, duration,
			 status, interview_type, meeting_link, notes, feedback, rating,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		iv.CandidateUserID, iv.InterviewerID, iv.JobID, iv.ScheduledDate,
		iv.Duration, iv.Status, iv.InterviewType, iv.MeetingLink, iv.Notes,
		iv.Feedback, iv.Rating, iv.CreatedAt, iv.UpdatedAt,
	).Scan(&iv.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateActiveInterview
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *interviewRepo) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	iv, err := scanInterview(r.db.QueryRow(ctx, interviewSelect+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return iv, nil
}

func (r *interviewRepo) FetchAll(ctx context.Context) ([]domain.Interview, error) {
	return r.queryInterviews(ctx, interviewSelect+` ORDER BY i.scheduled_date DESC`)
}

// FetchForInterviewer returns interviews the user conducts or sits in as the candidate
func (r *interviewRepo) FetchForInterviewer(ctx context.Context, userID string) ([]domain.Interview, error) {
	query := interviewSelect + `
		WHERE i.interviewer_id = $1 OR i.candidate_user_id = $1
		ORDER BY i.scheduled_date DESC`
	return r.queryInterviews(ctx, query, userID)
}

func (r *interviewRepo) FetchForCandidate(ctx context.Context, userID string) ([]domain.Interview, error) {
	query := interviewSelect + `
		WHERE i.candidate_user_id = $1
		ORDER BY i.scheduled_date DESC`
	return r.queryInterviews(ctx, query, userID)
}

func (r *interviewRepo) FetchCompleted(ctx context.Context) ([]domain.Interview, error) {
	query := interviewSelect + `
		WHERE i.status = $1
		ORDER BY i.scheduled_date DESC`
	return r.queryInterviews(ctx, query, domain.InterviewStatusCompleted)
}

func (r *interviewRepo) queryInterviews(ctx context.Context, query string, args ...any) ([]domain.Interview, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []domain.Interview
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, *iv)
	}
	return interviews, rows.Err()
}

func (r *interviewRepo) Update(ctx context.Context, iv *domain.Interview) error {
	query := `
		UPDATE interviews
		SET scheduled_date = $2, duration = $3, status = $4, interview_type = $5,
		    meeting_link = $6, notes = $7, feedback = $8, rating = $9, updated_at = $10
		WHERE id = $1`

	iv.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		iv.ID, iv.ScheduledDate, iv.Duration, iv.Status, iv.InterviewType,
		iv.MeetingLink, iv.Notes, iv.Feedback, iv.Rating, iv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateActiveInterview
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *interviewRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE interviews SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *interviewRepo) AddQuestion(ctx context.Context, q *domain.InterviewQuestion) error {
	query := `
		INSERT INTO interview_questions
			(interview_id, question_text, question_type, expected_answer,
			 candidate_answer, score, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	return r.db.QueryRow(ctx, query,
		q.InterviewID, q.QuestionText, q.QuestionType, q.ExpectedAnswer,
		q.CandidateAnswer, q.Score, q.Notes).Scan(&q.ID)
}

func (r *interviewRepo) ListQuestions(ctx context.Context, interviewID int64) ([]domain.InterviewQuestion, error) {
	query := `
		SELECT id, interview_id, question_text, question_type, expected_answer,
		       candidate_answer, score, notes
		FROM interview_questions
		WHERE interview_id = $1
		ORDER BY question_type, id`

	rows, err := r.db.Query(ctx, query, interviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.InterviewQuestion
	for rows.Next() {
		var q domain.InterviewQuestion
		if err := rows.Scan(&q.ID, &q.InterviewID, &q.QuestionText, &q.QuestionType,
			&q.ExpectedAnswer, &q.CandidateAnswer, &q.Score, &q.Notes); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// CreateFeedback inserts the feedback record and, in the same transaction,
// copies the recommendation onto the interview and forces it COMPLETED.
// The unique constraint on interview_id keeps the 1:1 invariant under
// concurrent submissions.
func (r *interviewRepo) CreateFeedback(ctx context.Context, fb *domain.InterviewFeedback) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	fb.CreatedAt = now
	fb.UpdatedAt = now

	err = tx.QueryRow(ctx, `
		INSERT INTO interview_feedback
			(interview_id, strengths, weaknesses, overall_rating,
			 technical_skills_rating, communication_skills_rating,
			 problem_solving_rating, recommendation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		fb.InterviewID, fb.Strengths, fb.Weaknesses, fb.OverallRating,
		fb.TechnicalSkillsRating, fb.CommunicationSkillsRating,
		fb.ProblemSolvingRating, fb.Recommendation, fb.CreatedAt, fb.UpdatedAt,
	).Scan(&fb.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateFeedback
		}
		return err
	}

	result, err := tx.Exec(ctx, `
		UPDATE interviews SET feedback = $2, status = $3, updated_at = $4
		WHERE id = $1`,
		fb.InterviewID, fb.Recommendation, domain.InterviewStatusCompleted, now)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *interviewRepo) GetFeedback(ctx context.Context, interviewID int64) (*domain.InterviewFeedback, error) {
	query := `
		SELECT id, interview_id, strengths, weaknesses, overall_rating,
		       technical_skills_rating, communication_skills_rating,
		       problem_solving_rating, recommendation, created_at, updated_at
		FROM interview_feedback
		WHERE interview_id = $1`

	var fb domain.InterviewFeedback
	err := r.db.QueryRow(ctx, query, interviewID).Scan(
		&fb.ID, &fb.InterviewID, &fb.Strengths, &fb.Weaknesses, &fb.OverallRating,
		&fb.TechnicalSkillsRating, &fb.CommunicationSkillsRating,
		&fb.ProblemSolvingRating, &fb.Recommendation, &fb.CreatedAt, &fb.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &fb, nil
}

// DeleteCompletedBefore removes stale completed interviews. Questions and
// feedback go with them via ON DELETE CASCADE.
func (r *interviewRepo) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM interviews WHERE status = $1 AND updated_at < $2`,
		domain.InterviewStatusCompleted, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
