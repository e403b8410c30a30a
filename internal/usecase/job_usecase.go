package usecase

import (
	"context"
	"errors"

	"recruiter-backend/internal/domain"
	"recruiter-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	validate *validator.Validate
}

func NewJobUsecase(jobRepo domain.JobRepository, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		validate: validate,
	}
}

// CreateJob records the posting under the caller's ownership
func (u *jobUsecase) CreateJob(ctx context.Context, userID string, job *domain.Job) error {
	job.PostedBy = userID

	if err := u.validate.Struct(job); err != nil {
		return apperror.BadRequest(err.Error())
	}

	return u.jobRepo.Create(ctx, job)
}

func (u *jobUsecase) GetJobDetails(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, err
	}
	return job, nil
}

// ListJobs returns active postings; staff also see deactivated ones
func (u *jobUsecase) ListJobs(ctx context.Context, role string, page, pageSize int) ([]domain.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	if domain.IsStaff(role) {
		return u.jobRepo.Fetch(ctx, pageSize, offset)
	}
	return u.jobRepo.FetchActive(ctx, pageSize, offset)
}

// UpdateJob is restricted to the posting owner or staff
func (u *jobUsecase) UpdateJob(ctx context.Context, userID, role string, job *domain.Job) error {
	existing, err := u.jobRepo.GetByID(ctx, job.ID)
	if err != nil {
		return apperror.NotFound("Job not found")
	}
	if existing.PostedBy != userID && !domain.IsStaff(role) {
		return apperror.Forbidden("Only the job poster or staff can update this job")
	}

	if err := u.validate.Struct(job); err != nil {
		return apperror.BadRequest(err.Error())
	}

	job.PostedBy = existing.PostedBy
	return u.jobRepo.Update(ctx, job)
}

// DeleteJob soft-deactivates the posting; owner or staff only
func (u *jobUsecase) DeleteJob(ctx context.Context, userID, role string, id int64) error {
	existing, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NotFound("Job not found")
	}
	if existing.PostedBy != userID && !domain.IsStaff(role) {
		return apperror.Forbidden("Only the job poster or staff can delete this job")
	}

	return u.jobRepo.Deactivate(ctx, id)
}
