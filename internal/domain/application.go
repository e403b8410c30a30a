package domain

import (
	"context"
	"time"
)

// Application status constants. Any status may follow any other; there is
// no transition-order enforcement for applications.
const (
	ApplicationStatusPending     = "PENDING"
	ApplicationStatusReviewing   = "REVIEWING"
	ApplicationStatusShortlisted = "SHORTLISTED"
	ApplicationStatusRejected    = "REJECTED"
	ApplicationStatusHired       = "HIRED"
)

// ValidApplicationStatus reports whether s is a known application status
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewing,
		ApplicationStatusShortlisted, ApplicationStatusRejected,
		ApplicationStatusHired:
		return true
	}
	return false
}

// JobApplication represents a candidate's application against a job posting
type JobApplication struct {
	ID              int64     `json:"id"`
	JobID           int64     `json:"job_id"`
	CandidateUserID string    `json:"candidate_user_id"`
	Status          string    `json:"status"`
	CoverLetter     string    `json:"cover_letter"`
	ResumeURL       string    `json:"resume_url"`
	AppliedAt       time.Time `json:"applied_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Joined data for list responses
	JobTitle      *string `json:"job_title,omitempty"`
	CandidateName *string `json:"candidate_name,omitempty"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *JobApplication) error
	GetByID(ctx context.Context, id int64) (*JobApplication, error)
	GetByJobID(ctx context.Context, jobID int64) ([]JobApplication, error)
	GetByUserID(ctx context.Context, userID string) ([]JobApplication, error)
	Fetch(ctx context.Context, limit, offset int) ([]JobApplication, int64, error)
	CheckExists(ctx context.Context, jobID int64, userID string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type ApplicationUsecase interface {
	// Candidate operations
	ApplyToJob(ctx context.Context, userID string, jobID int64, coverLetter, resumeURL string) (*JobApplication, error)
	GetMyApplications(ctx context.Context, userID string) ([]JobApplication, error)

	// Poster / staff operations
	ListByJobID(ctx context.Context, userID, role string, jobID int64) ([]JobApplication, error)
	ListApplications(ctx context.Context, userID, role string, page, pageSize int) ([]JobApplication, int64, error)
	GetApplication(ctx context.Context, userID, role string, id int64) (*JobApplication, error)
	UpdateApplicationStatus(ctx context.Context, role string, applicationID int64, status string) error
}
