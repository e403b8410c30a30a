package domain

import (
	"context"
	"errors"
	"time"
)

// Interview workflow states. COMPLETED and CANCELLED are terminal.
const (
	InterviewStatusScheduled  = "SCHEDULED"
	InterviewStatusInProgress = "IN_PROGRESS"
	InterviewStatusCompleted  = "COMPLETED"
	InterviewStatusCancelled  = "CANCELLED"
)

// Interview types
const (
	InterviewTypePhone     = "PHONE"
	InterviewTypeVideo     = "VIDEO"
	InterviewTypeOnsite    = "ONSITE"
	InterviewTypeTechnical = "TECHNICAL"
)

// Question types
const (
	QuestionTypeTechnical      = "TECHNICAL"
	QuestionTypeBehavioral     = "BEHAVIORAL"
	QuestionTypeProblemSolving = "PROBLEM_SOLVING"
	QuestionTypeSystemDesign   = "SYSTEM_DESIGN"
)

// Duration bounds in minutes, inclusive
const (
	InterviewMinDuration = 15
	InterviewMaxDuration = 240
)

// Interview workflow errors surfaced by the repository layer. Both are
// backed by database uniqueness constraints, so concurrent writers cannot
// slip past the application-level checks.
var (
	ErrDuplicateActiveInterview = errors.New("candidate already has an active interview for this job")
	ErrDuplicateFeedback        = errors.New("feedback already exists for this interview")
)

type Interview struct {
	ID              int64     `json:"id"`
	CandidateUserID string    `json:"candidate_user_id" validate:"required"`
	InterviewerID   string    `json:"interviewer_id" validate:"required"`
	JobID           int64     `json:"job_id" validate:"required"`
	ScheduledDate   time.Time `json:"scheduled_date" validate:"required"`
	Duration        int       `json:"duration"` // minutes
	Status          string    `json:"status"`
	InterviewType   string    `json:"interview_type" validate:"required,oneof=PHONE VIDEO ONSITE TECHNICAL"`
	MeetingLink     string    `json:"meeting_link" validate:"omitempty,url"`
	Notes           string    `json:"notes"`
	Feedback        string    `json:"feedback"` // recommendation copy, set on feedback submission
	Rating          *int      `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Joined data for responses and notifications
	CandidateName    string `json:"candidate_name,omitempty"`
	InterviewerName  string `json:"interviewer_name,omitempty"`
	JobTitle         string `json:"job_title,omitempty"`
	CandidateEmail   string `json:"-"`
	InterviewerEmail string `json:"-"`

	// Nested collections, populated on detail reads
	Questions      []InterviewQuestion `json:"questions,omitempty"`
	FeedbackDetail *InterviewFeedback  `json:"interview_feedback,omitempty"`
}

// IsActive reports whether the interview occupies the one-active-per-
// (candidate, job) slot.
func (i *Interview) IsActive() bool {
	return i.Status == InterviewStatusScheduled || i.Status == InterviewStatusInProgress
}

type InterviewQuestion struct {
	ID              int64  `json:"id"`
	InterviewID     int64  `json:"interview_id"`
	QuestionText    string `json:"question_text" validate:"required"`
	QuestionType    string `json:"question_type" validate:"required,oneof=TECHNICAL BEHAVIORAL PROBLEM_SOLVING SYSTEM_DESIGN"`
	ExpectedAnswer  string `json:"expected_answer"`
	CandidateAnswer string `json:"candidate_answer"`
	Score           *int   `json:"score,omitempty" validate:"omitempty,gte=1,lte=10"`
	Notes           string `json:"notes"`
}

type InterviewFeedback struct {
	ID                        int64     `json:"id"`
	InterviewID               int64     `json:"interview_id"`
	Strengths                 string    `json:"strengths" validate:"required"`
	Weaknesses                string    `json:"weaknesses" validate:"required"`
	OverallRating             int       `json:"overall_rating" validate:"gte=1,lte=5"`
	TechnicalSkillsRating     int       `json:"technical_skills_rating" validate:"gte=1,lte=5"`
	CommunicationSkillsRating int       `json:"communication_skills_rating" validate:"gte=1,lte=5"`
	ProblemSolvingRating      int       `json:"problem_solving_rating" validate:"gte=1,lte=5"`
	Recommendation            string    `json:"recommendation" validate:"required"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// InterviewUpdate carries the mutable fields of a reschedule / partial update.
// Nil fields are left untouched.
type InterviewUpdate struct {
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	Duration      *int       `json:"duration,omitempty"`
	Status        *string    `json:"status,omitempty"`
	MeetingLink   *string    `json:"meeting_link,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	Rating        *int       `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
}

type InterviewRepository interface {
	// Create inserts the interview only if the candidate has no SCHEDULED or
	// IN_PROGRESS interview for the same job; otherwise it returns
	// ErrDuplicateActiveInterview.
	Create(ctx context.Context, interview *Interview) error
	GetByID(ctx context.Context, id int64) (*Interview, error)
	FetchAll(ctx context.Context) ([]Interview, error)
	FetchForInterviewer(ctx context.Context, userID string) ([]Interview, error)
	FetchForCandidate(ctx context.Context, userID string) ([]Interview, error)
	Update(ctx context.Context, interview *Interview) error
	UpdateStatus(ctx context.Context, id int64, status string) error

	AddQuestion(ctx context.Context, question *InterviewQuestion) error
	ListQuestions(ctx context.Context, interviewID int64) ([]InterviewQuestion, error)

	// CreateFeedback atomically inserts the feedback record, copies the
	// recommendation into the interview's feedback field and forces the
	// status to COMPLETED. Returns ErrDuplicateFeedback when feedback
	// already exists.
	CreateFeedback(ctx context.Context, feedback *InterviewFeedback) error
	GetFeedback(ctx context.Context, interviewID int64) (*InterviewFeedback, error)

	// DeleteCompletedBefore removes COMPLETED interviews last updated before
	// cutoff, cascading to their questions and feedback. Returns the number
	// of interviews removed.
	DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	FetchCompleted(ctx context.Context) ([]Interview, error)
}

type InterviewUsecase interface {
	Schedule(ctx context.Context, userID, role string, interview *Interview) error
	List(ctx context.Context, userID, role string) ([]Interview, error)
	Get(ctx context.Context, userID, role string, id int64) (*Interview, error)
	Update(ctx context.Context, userID, role string, id int64, update *InterviewUpdate) (*Interview, error)
	Start(ctx context.Context, userID, role string, id int64) error
	Cancel(ctx context.Context, userID, role string, id int64) error
	AddQuestion(ctx context.Context, userID, role string, interviewID int64, question *InterviewQuestion) error
	SubmitFeedback(ctx context.Context, userID, role string, interviewID int64, feedback *InterviewFeedback) error
	ExportReport(ctx context.Context, role, format string) ([]byte, string, error)
}
