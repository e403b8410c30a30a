package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

type Job struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title" validate:"required,max=200"`
	Description     string    `json:"description" validate:"required"`
	Requirements    string    `json:"requirements" validate:"required"`
	Location        string    `json:"location" validate:"required,max=100"`
	SalaryRange     string    `json:"salary_range" validate:"max=100"`
	JobType         string    `json:"job_type" validate:"required,max=50"` // Full-time, Part-time, Contract
	ExperienceLevel string    `json:"experience_level" validate:"max=50"`
	PostedBy        string    `json:"posted_by"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	Fetch(ctx context.Context, limit, offset int) ([]Job, int64, error)
	FetchActive(ctx context.Context, limit, offset int) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	Deactivate(ctx context.Context, id int64) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, userID string, job *Job) error
	GetJobDetails(ctx context.Context, id int64) (*Job, error)
	ListJobs(ctx context.Context, role string, page, pageSize int) ([]Job, int64, error)
	UpdateJob(ctx context.Context, userID, role string, job *Job) error
	DeleteJob(ctx context.Context, userID, role string, id int64) error
}
