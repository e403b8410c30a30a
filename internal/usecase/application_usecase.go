package usecase

import (
	"context"
	"errors"

	"recruiter-backend/internal/domain"
	"recruiter-backend/pkg/apperror"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
}

func NewApplicationUsecase(appRepo domain.ApplicationRepository, jobRepo domain.JobRepository) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
	}
}

// ApplyToJob creates a PENDING application for the caller against an active job
func (u *applicationUsecase) ApplyToJob(ctx context.Context, userID string, jobID int64, coverLetter, resumeURL string) (*domain.JobApplication, error) {
	if coverLetter == "" {
		return nil, apperror.BadRequest("Cover letter is required to submit an application")
	}
	if resumeURL == "" {
		return nil, apperror.BadRequest("Resume is required to submit an application")
	}

	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if !job.IsActive {
		return nil, apperror.BadRequest("Cannot apply to an inactive job")
	}

	exists, err := u.applicationRepo.CheckExists(ctx, jobID, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.BadRequest("You have already applied to this job")
	}

	app := &domain.JobApplication{
		JobID:           jobID,
		CandidateUserID: userID,
		Status:          domain.ApplicationStatusPending,
		CoverLetter:     coverLetter,
		ResumeURL:       resumeURL,
	}

	if err := u.applicationRepo.Create(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}
	return app, nil
}

func (u *applicationUsecase) GetMyApplications(ctx context.Context, userID string) ([]domain.JobApplication, error) {
	return u.applicationRepo.GetByUserID(ctx, userID)
}

// ListByJobID returns the applications against a job. Allowed for staff and
// the posting's owner.
func (u *applicationUsecase) ListByJobID(ctx context.Context, userID, role string, jobID int64) ([]domain.JobApplication, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.PostedBy != userID && !domain.IsStaff(role) {
		return nil, apperror.Forbidden("Only the job poster or staff can view these applications")
	}

	return u.applicationRepo.GetByJobID(ctx, jobID)
}

// ListApplications is the collection view: staff see everything, everyone
// else sees their own submissions.
func (u *applicationUsecase) ListApplications(ctx context.Context, userID, role string, page, pageSize int) ([]domain.JobApplication, int64, error) {
	if domain.IsStaff(role) {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			pageSize = 10
		}
		return u.applicationRepo.Fetch(ctx, pageSize, (page-1)*pageSize)
	}

	apps, err := u.applicationRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return apps, int64(len(apps)), nil
}

func (u *applicationUsecase) GetApplication(ctx context.Context, userID, role string, id int64) (*domain.JobApplication, error) {
	app, err := u.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, err
	}

	if app.CandidateUserID == userID || domain.IsStaff(role) {
		return app, nil
	}
	// The posting owner may also inspect applications against their job
	job, err := u.jobRepo.GetByID(ctx, app.JobID)
	if err == nil && job.PostedBy == userID {
		return app, nil
	}
	return nil, apperror.Forbidden("You cannot view this application")
}

// UpdateApplicationStatus is staff-only. Any known status may follow any
// other; there is no transition ordering for applications.
func (u *applicationUsecase) UpdateApplicationStatus(ctx context.Context, role string, applicationID int64, status string) error {
	if !domain.IsStaff(role) {
		return apperror.Forbidden("Only staff can update application status")
	}
	if !domain.ValidApplicationStatus(status) {
		return apperror.BadRequest("Invalid status. Must be: PENDING, REVIEWING, SHORTLISTED, REJECTED or HIRED")
	}

	if err := u.applicationRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
