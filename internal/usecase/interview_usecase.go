package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recruiter-backend/internal/domain"
	"recruiter-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type interviewUsecase struct {
	interviewRepo domain.InterviewRepository
	jobRepo       domain.JobRepository
	validate      *validator.Validate
	reminders     domain.ReminderScheduler
	notifier      domain.FeedbackNotifier
	reminderLead  time.Duration
}

func NewInterviewUsecase(
	interviewRepo domain.InterviewRepository,
	jobRepo domain.JobRepository,
	validate *validator.Validate,
	reminders domain.ReminderScheduler,
	notifier domain.FeedbackNotifier,
	reminderLead time.Duration,
) domain.InterviewUsecase {
	return &interviewUsecase{
		interviewRepo: interviewRepo,
		jobRepo:       jobRepo,
		validate:      validate,
		reminders:     reminders,
		notifier:      notifier,
		reminderLead:  reminderLead,
	}
}

// Schedule creates a SCHEDULED interview and queues its reminder
func (u *interviewUsecase) Schedule(ctx context.Context, userID, role string, iv *domain.Interview) error {
	if !domain.CanConductInterviews(role) {
		return apperror.Forbidden("Only interviewers or staff can schedule interviews")
	}

	if err := u.validate.Struct(iv); err != nil {
		return apperror.BadRequest(err.Error())
	}
	if iv.Duration < domain.InterviewMinDuration || iv.Duration > domain.InterviewMaxDuration {
		return apperror.BadRequest(fmt.Sprintf("Duration must be between %d and %d minutes",
			domain.InterviewMinDuration, domain.InterviewMaxDuration))
	}
	if !iv.ScheduledDate.After(time.Now()) {
		return apperror.BadRequest("Interview cannot be scheduled in the past")
	}

	if _, err := u.jobRepo.GetByID(ctx, iv.JobID); err != nil {
		return apperror.NotFound("Job not found")
	}

	iv.Status = domain.InterviewStatusScheduled
	if err := u.interviewRepo.Create(ctx, iv); err != nil {
		if errors.Is(err, domain.ErrDuplicateActiveInterview) {
			return apperror.Conflict("This candidate already has a scheduled or in-progress interview for this job")
		}
		return apperror.Internal(err)
	}

	// Scheduler failures are logged by the notification layer; the interview
	// itself is already committed.
	_ = u.reminders.Schedule(ctx, iv.ID, iv.ScheduledDate.Add(-u.reminderLead))
	return nil
}

// List applies the visibility policy: staff see everything, interviewers see
// interviews they conduct or sit in, candidates see only their own.
func (u *interviewUsecase) List(ctx context.Context, userID, role string) ([]domain.Interview, error) {
	switch {
	case domain.IsStaff(role):
		return u.interviewRepo.FetchAll(ctx)
	case role == domain.RoleInterviewer:
		return u.interviewRepo.FetchForInterviewer(ctx, userID)
	default:
		return u.interviewRepo.FetchForCandidate(ctx, userID)
	}
}

// Get returns the interview with its questions and feedback. Object-level
// read is restricted to the interview's interviewer, its candidate, or staff.
func (u *interviewUsecase) Get(ctx context.Context, userID, role string, id int64) (*domain.Interview, error) {
	iv, err := u.getInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.canRead(iv, userID, role) {
		return nil, apperror.Forbidden("You cannot view this interview")
	}

	if iv.Questions, err = u.interviewRepo.ListQuestions(ctx, id); err != nil {
		return nil, err
	}
	fb, err := u.interviewRepo.GetFeedback(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	iv.FeedbackDetail = fb
	return iv, nil
}

// Update applies a partial update (reschedule, notes, rating, link, status).
// COMPLETED and CANCELLED are terminal; setting COMPLETED requires feedback.
func (u *interviewUsecase) Update(ctx context.Context, userID, role string, id int64, update *domain.InterviewUpdate) (*domain.Interview, error) {
	iv, err := u.getInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.canMutate(iv, userID, role) {
		return nil, apperror.Forbidden("Only staff or the assigned interviewer can modify this interview")
	}

	rescheduled := false
	if update.ScheduledDate != nil && !update.ScheduledDate.Equal(iv.ScheduledDate) {
		if !update.ScheduledDate.After(time.Now()) {
			return nil, apperror.BadRequest("Interview cannot be scheduled in the past")
		}
		iv.ScheduledDate = *update.ScheduledDate
		rescheduled = true
	}
	if update.Duration != nil {
		if *update.Duration < domain.InterviewMinDuration || *update.Duration > domain.InterviewMaxDuration {
			return nil, apperror.BadRequest(fmt.Sprintf("Duration must be between %d and %d minutes",
				domain.InterviewMinDuration, domain.InterviewMaxDuration))
		}
		iv.Duration = *update.Duration
	}
	if update.MeetingLink != nil {
		iv.MeetingLink = *update.MeetingLink
	}
	if update.Notes != nil {
		iv.Notes = *update.Notes
	}
	if update.Rating != nil {
		if *update.Rating < 1 || *update.Rating > 5 {
			return nil, apperror.BadRequest("Rating must be between 1 and 5")
		}
		iv.Rating = update.Rating
	}
	if update.Status != nil && *update.Status != iv.Status {
		if err := u.checkStatusChange(ctx, iv, *update.Status); err != nil {
			return nil, err
		}
		iv.Status = *update.Status
	}

	if err := u.interviewRepo.Update(ctx, iv); err != nil {
		if errors.Is(err, domain.ErrDuplicateActiveInterview) {
			return nil, apperror.Conflict("This candidate already has a scheduled or in-progress interview for this job")
		}
		return nil, apperror.Internal(err)
	}

	switch {
	case !iv.IsActive():
		// Terminal now; a pending reminder must not fire
		_ = u.reminders.Cancel(ctx, iv.ID)
	case rescheduled:
		_ = u.reminders.Schedule(ctx, iv.ID, iv.ScheduledDate.Add(-u.reminderLead))
	}
	return iv, nil
}

func (u *interviewUsecase) checkStatusChange(ctx context.Context, iv *domain.Interview, next string) error {
	switch next {
	case domain.InterviewStatusScheduled, domain.InterviewStatusInProgress,
		domain.InterviewStatusCompleted, domain.InterviewStatusCancelled:
	default:
		return apperror.BadRequest("Unknown interview status")
	}

	if !iv.IsActive() {
		return apperror.BadRequest("Interview is in a terminal state and cannot change status")
	}
	if next == domain.InterviewStatusCompleted {
		if _, err := u.interviewRepo.GetFeedback(ctx, iv.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return apperror.BadRequest("Feedback is required before marking the interview as completed")
			}
			return err
		}
	}
	return nil
}

// Start transitions SCHEDULED -> IN_PROGRESS
func (u *interviewUsecase) Start(ctx context.Context, userID, role string, id int64) error {
	iv, err := u.getInterview(ctx, id)
	if err != nil {
		return err
	}
	if !u.canMutate(iv, userID, role) {
		return apperror.Forbidden("Only staff or the assigned interviewer can start this interview")
	}
	if iv.Status != domain.InterviewStatusScheduled {
		return apperror.BadRequest("Interview is not in scheduled state")
	}

	return u.interviewRepo.UpdateStatus(ctx, id, domain.InterviewStatusInProgress)
}

// Cancel transitions SCHEDULED or IN_PROGRESS -> CANCELLED and drops the
// pending reminder.
func (u *interviewUsecase) Cancel(ctx context.Context, userID, role string, id int64) error {
	iv, err := u.getInterview(ctx, id)
	if err != nil {
		return err
	}
	if !u.canMutate(iv, userID, role) {
		return apperror.Forbidden("Only staff or the assigned interviewer can cancel this interview")
	}
	if !iv.IsActive() {
		return apperror.BadRequest("Interview cannot be cancelled in its current state")
	}

	if err := u.interviewRepo.UpdateStatus(ctx, id, domain.InterviewStatusCancelled); err != nil {
		return apperror.Internal(err)
	}
	_ = u.reminders.Cancel(ctx, id)
	return nil
}

// AddQuestion appends a question; allowed in any interview state
func (u *interviewUsecase) AddQuestion(ctx context.Context, userID, role string, interviewID int64, q *domain.InterviewQuestion) error {
	iv, err := u.getInterview(ctx, interviewID)
	if err != nil {
		return err
	}
	if !u.canMutate(iv, userID, role) {
		return apperror.Forbidden("Only staff or the assigned interviewer can add questions")
	}

	q.InterviewID = interviewID
	if err := u.validate.Struct(q); err != nil {
		return apperror.BadRequest(err.Error())
	}

	return u.interviewRepo.AddQuestion(ctx, q)
}

// SubmitFeedback records the one-and-only feedback, copies its recommendation
// onto the interview, forces COMPLETED and fires the feedback notice.
func (u *interviewUsecase) SubmitFeedback(ctx context.Context, userID, role string, interviewID int64, fb *domain.InterviewFeedback) error {
	iv, err := u.getInterview(ctx, interviewID)
	if err != nil {
		return err
	}
	if !u.canMutate(iv, userID, role) {
		return apperror.Forbidden("Only staff or the assigned interviewer can submit feedback")
	}

	// Explicit duplicate check; the unique constraint still closes the race
	if _, err := u.interviewRepo.GetFeedback(ctx, interviewID); err == nil {
		return apperror.Conflict("Feedback has already been submitted for this interview")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	fb.InterviewID = interviewID
	if err := u.validate.Struct(fb); err != nil {
		return apperror.BadRequest(err.Error())
	}

	if err := u.interviewRepo.CreateFeedback(ctx, fb); err != nil {
		if errors.Is(err, domain.ErrDuplicateFeedback) {
			return apperror.Conflict("Feedback has already been submitted for this interview")
		}
		return apperror.Internal(err)
	}

	// The interview is COMPLETED now; its reminder must not fire
	_ = u.reminders.Cancel(ctx, interviewID)
	u.notifier.NotifyFeedback(interviewID)
	return nil
}

func (u *interviewUsecase) getInterview(ctx context.Context, id int64) (*domain.Interview, error) {
	iv, err := u.interviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Interview not found")
		}
		return nil, err
	}
	return iv, nil
}

func (u *interviewUsecase) canRead(iv *domain.Interview, userID, role string) bool {
	return domain.IsStaff(role) || iv.InterviewerID == userID || iv.CandidateUserID == userID
}

func (u *interviewUsecase) canMutate(iv *domain.Interview, userID, role string) bool {
	return domain.IsStaff(role) || iv.InterviewerID == userID
}
