package domain

import (
	"context"
	"time"
)

// JobMatch links a candidate to a job with an affinity score computed by an
// external matching process. This service only ever reads matches.
type JobMatch struct {
	ID              int64     `json:"id"`
	JobID           int64     `json:"job_id"`
	CandidateUserID string    `json:"candidate_user_id"`
	MatchScore      float64   `json:"match_score"`
	CreatedAt       time.Time `json:"created_at"`

	// Joined data for list responses
	JobTitle    *string `json:"job_title,omitempty"`
	JobLocation *string `json:"job_location,omitempty"`
}

type MatchRepository interface {
	GetByUserID(ctx context.Context, userID string) ([]JobMatch, error)
	Fetch(ctx context.Context, limit, offset int) ([]JobMatch, int64, error)
	TopByUserID(ctx context.Context, userID string, limit int) ([]JobMatch, error)
}

type MatchUsecase interface {
	ListMatches(ctx context.Context, userID, role string, page, pageSize int) ([]JobMatch, int64, error)
	RecommendedJobs(ctx context.Context, userID string) ([]JobMatch, error)
}
