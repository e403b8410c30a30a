package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"recruiter-backend/internal/domain"
	"recruiter-backend/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) Create(ctx context.Context, iv *domain.Interview) error {
	return m.Called(ctx, iv).Error(0)
}

func (m *MockInterviewRepo) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) FetchAll(ctx context.Context) ([]domain.Interview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) FetchForInterviewer(ctx context.Context, userID string) ([]domain.Interview, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) FetchForCandidate(ctx context.Context, userID string) ([]domain.Interview, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) Update(ctx context.Context, iv *domain.Interview) error {
	return m.Called(ctx, iv).Error(0)
}

func (m *MockInterviewRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockInterviewRepo) AddQuestion(ctx context.Context, q *domain.InterviewQuestion) error {
	return m.Called(ctx, q).Error(0)
}

func (m *MockInterviewRepo) ListQuestions(ctx context.Context, interviewID int64) ([]domain.InterviewQuestion, error) {
	args := m.Called(ctx, interviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterviewQuestion), args.Error(1)
}

func (m *MockInterviewRepo) CreateFeedback(ctx context.Context, fb *domain.InterviewFeedback) error {
	return m.Called(ctx, fb).Error(0)
}

func (m *MockInterviewRepo) GetFeedback(ctx context.Context, interviewID int64) (*domain.InterviewFeedback, error) {
	args := m.Called(ctx, interviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewFeedback), args.Error(1)
}

func (m *MockInterviewRepo) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInterviewRepo) FetchCompleted(ctx context.Context) ([]domain.Interview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Interview), args.Error(1)
}

// stubScheduler records reminder scheduling without a real queue
type stubScheduler struct {
	mu        sync.Mutex
	scheduled map[int64]time.Time
	cancelled []int64
}

func newStubScheduler() *stubScheduler {
	return &stubScheduler{scheduled: make(map[int64]time.Time)}
}

func (s *stubScheduler) Schedule(ctx context.Context, interviewID int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled[interviewID] = at
	return nil
}

func (s *stubScheduler) Cancel(ctx context.Context, interviewID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scheduled, interviewID)
	s.cancelled = append(s.cancelled, interviewID)
	return nil
}

type stubNotifier struct {
	mu       sync.Mutex
	notified []int64
}

func (n *stubNotifier) NotifyFeedback(interviewID int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notified = append(n.notified, interviewID)
}

const testReminderLead = 24 * time.Hour

func newInterviewFixture() (*MockInterviewRepo, *MockJobRepo, *stubScheduler, *stubNotifier, domain.InterviewUsecase) {
	ivRepo := new(MockInterviewRepo)
	jobRepo := new(MockJobRepo)
	scheduler := newStubScheduler()
	notifier := &stubNotifier{}
	uc := usecase.NewInterviewUsecase(ivRepo, jobRepo, validator.New(), scheduler, notifier, testReminderLead)
	return ivRepo, jobRepo, scheduler, notifier, uc
}

func validInterview() *domain.Interview {
	return &domain.Interview{
		CandidateUserID: "cand1",
		InterviewerID:   "int1",
		JobID:           3,
		ScheduledDate:   time.Now().Add(72 * time.Hour),
		Duration:        60,
		InterviewType:   domain.InterviewTypeVideo,
	}
}

func TestScheduleInterview(t *testing.T) {
	t.Run("Should reject candidates", func(t *testing.T) {
		_, _, _, _, uc := newInterviewFixture()
		err := uc.Schedule(context.Background(), "cand1", domain.RoleCandidate, validInterview())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only interviewers or staff")
	})

	t.Run("Should reject durations outside bounds", func(t *testing.T) {
		_, _, _, _, uc := newInterviewFixture()

		short := validInterview()
		short.Duration = 10
		err := uc.Schedule(context.Background(), "int1", domain.RoleInterviewer, short)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "between 15 and 240")

		long := validInterview()
		long.Duration = 250
		err = uc.Schedule(context.Background(), "int1", domain.RoleInterviewer, long)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "between 15 and 240")
	})

	t.Run("Should accept boundary durations", func(t *testing.T) {
		for _, duration := range []int{15, 240} {
			ivRepo, jobRepo, _, _, uc := newInterviewFixture()
			jobRepo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Job{ID: 3, IsActive: true}, nil).Once()
			ivRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Interview")).Return(nil).Once()

			iv := validInterview()
			iv.Duration = duration
			err := uc.Schedule(context.Background(), "int1", domain.RoleInterviewer, iv)
			assert.NoError(t, err)
		}
	})

	t.Run("Should reject past dates", func(t *testing.T) {
		_, _, _, _, uc := newInterviewFixture()
		iv := validInterview()
		iv.ScheduledDate = time.Now().Add(-time.Hour)
		err := uc.Schedule(context.Background(), "int1", domain.RoleInterviewer, iv)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "in the past")
	})

	t.Run("Should surface the duplicate-active conflict", func(t *testing.T) {
		ivRepo, jobRepo, _, _, uc := newInterviewFixture()
		jobRepo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Job{ID: 3, IsActive: true}, nil).Once()
		ivRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Interview")).Return(domain.ErrDuplicateActiveInterview).Once()

		err := uc.Schedule(context.Background(), "int1", domain.RoleInterviewer, validInterview())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already has a scheduled or in-progress interview")
	})

	t.Run("Should queue the reminder one lead window before the interview", func(t *testing.T) {
		ivRepo, jobRepo, scheduler, _, uc := newInterviewFixture()
		jobRepo.On("GetByID", mock.Anything, int64(3)).Return(&domain.Job{ID: 3, IsActive: true}, nil).Once()
		ivRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Interview")).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Interview).ID = 11
		}).Once()

		iv := validInterview()
		err := uc.Schedule(context.Background(), "int1", domain.RoleInterviewer, iv)
		assert.NoError(t, err)
		assert.Equal(t, domain.InterviewStatusScheduled, iv.Status)

		eta, ok := scheduler.scheduled[11]
		assert.True(t, ok)
		assert.WithinDuration(t, iv.ScheduledDate.Add(-testReminderLead), eta, time.Second)
	})
}

func TestInterviewVisibility(t *testing.T) {
	t.Run("Staff see everything", func(t *testing.T) {
		ivRepo, _, _, _, uc := newInterviewFixture()
		ivRepo.On("FetchAll", mock.Anything).Return([]domain.Interview{}, nil).Once()
		_, err := uc.List(context.Background(), "admin1", domain.RoleAdmin)
		assert.NoError(t, err)
		ivRepo.AssertExpectations(t)
	})

	t.Run("Interviewers see their own schedule", func(t *testing.T) {
		ivRepo, _, _, _, uc := newInterviewFixture()
		ivRepo.On("FetchForInterviewer", mock.Anything, "int1").Return([]domain.Interview{}, nil).Once()
		_, err := uc.List(context.Background(), "int1", domain.RoleInterviewer)
		assert.NoError(t, err)
		ivRepo.AssertExpectations(t)
	})

	t.Run("Candidates see only interviews they sit in", func(t *testing.T) {
		ivRepo, _, _, _, uc := newInterviewFixture()
		ivRepo.On("FetchForCandidate", mock.Anything, "cand1").Return([]domain.Interview{}, nil).Once()
		_, err := uc.List(context.Background(), "cand1", domain.RoleCandidate)
		assert.NoError(t, err)
		ivRepo.AssertExpectations(t)
	})

	t.Run("Unrelated candidate cannot read an interview", func(t *testing.T) {
		ivRepo, _, _, _, uc := newInterviewFixture()
		ivRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Interview{
			ID: 1, CandidateUserID: "cand1", InterviewerID: "int1", Status: domain.InterviewStatusScheduled,
		}, nil).Once()

		_, err := uc.Get(context.Background(), "stranger", domain.RoleCandidate, 1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot view this interview")
	})
}

func TestStartInterview(t *testing.T) {
	scheduled := func() *domain.Interview {
		return &domain.Interview{ID: 1, CandidateUserID: "cand1", InterviewerID: "int1", Status: domain.InterviewStatusScheduled}
	}

	t.Run("Should move SCHEDULED to IN_PROGRESS", func(t *testing.T) {
		ivRepo, _, _, _, uc := newInterviewFixture()
		ivRepo.On("GetByID", mock.Anything, int64(1)).Return(scheduled(), nil).Once()
		ivRepo.On("UpdateStatus", mock.Anything, int64(1), domain.InterviewStatusInProgress).Return(nil).Once()

		err := uc.Start(context.Background(), "int1", domain.RoleInterviewer, 1)
		assert.NoError(t, err)
		ivRepo.AssertExpectations(t)
	})

	t.Run("Should reject start from any other state", func(t *testing.T) {
		for _, status := range []string{
			domain.InterviewStatusInProgress,
			domain.InterviewStatusCompleted,
			domain.InterviewStatusCancelled,
		} {
			ivRepo, _, _, _, uc := newInterviewFixture()
			iv := scheduled()
			iv.Status = status
			ivRepo.On("GetByID", mock.Anything, int64(1)).Return(iv, nil).Once()

			err := uc.Start(context.Background(), "int1", domain.RoleInterviewer, 1)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "not in scheduled state")
		}
	})

	t.Run("Should reject the interview's own candidate", func(t *testing.T) {
		ivRepo, _, _, _, uc := newInterviewFixture()
		ivRepo.On("GetByID", mock.Anything, int64(1)).Return(scheduled(), nil).Once()

		err := uc.Start(context.Background(), "cand1", domain.RoleCandidate, 1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only staff or the assigned interviewer")
	})
}

func TestCancelInterview(t *testing.T) {
	t.Run("Should cancel active interviews and drop the reminder", func(t *testing.T) {
		for _, status := range []string{domain.InterviewStatusScheduled, domain.InterviewStatusInProgress} {
			ivRepo, _, scheduler, _, uc := newInterviewFixture()
			ivRepo.On("GetByID", mock.Anything, int64(2)).Return(&domain.Interview{
				ID: 2, InterviewerID: "int1", Status: status,
			}, nil).Once()
			ivRepo.On("UpdateStatus", mock.Anything, int64(2), domain.InterviewStatusCancelled).Return(nil).Once()

			err := uc.Cancel(context.Background(), "int1", domain.RoleInterviewer, 2)
			assert.NoError(t, err)
			assert.Contains(t, scheduler.cancelled, int64(2))
		}
	})

	t.Run("Should reject cancelling terminal interviews", func(t *testing.T) {
		for _, status := range []string{domain.InterviewStatusCompleted, domain.InterviewStatusCancelled} {
			ivRepo, _, _, _, uc := newInterviewFixture()
			ivRepo.On("GetByID", mock.Anything, int64(2)).Return(&domain.Interview{
				ID: 2, InterviewerID: "int1", Status: status,
			}, nil).Once()

			err := uc.Cancel(context.Background(), "int1", domain.RoleInterviewer, 2)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "cannot be cancelled")
		}
	})
}

func TestUpdateInterview(t *testing.T) {
	active := func() *domain.Interview {
		return &domain.Interview{
			ID:            4,
			InterviewerID: "int1",
			Status:        domain.InterviewStatusScheduled,
			ScheduledDate: time.Now().Add(48 * time.Hour),
			Duration:      60,
		}
	}

	t.Run("Should reject status changes on terminal interviews", func(t *testing.T) {
		ivRepo, _, _, _, uc := newInterviewFixture()
		iv := active()
		iv.Status = domain.InterviewStatusCancelled
		ivRepo.On("GetByID", mock.Anything, int64(4)).Return(iv, nil).Once()

		next := domain.InterviewStatusScheduled
		_, err := uc.Update(context.Background(), "int1", domain.RoleInterviewer, 4, &domain.InterviewUpdate{Status: &next})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "terminal state")
	})

	t.Run("Should require feedback before COMPLETED", func(t *testing.T) {
		ivRepo, _, _, _, uc := newInterviewFixture()
		ivRepo.On("GetByID", mock.Anything, int64(4)).Return(active(), nil).Once()
		ivRepo.On("GetFeedback", mock.Anything, int64(4)).Return(nil, domain.ErrNotFound).Once()

		next := domain.InterviewStatusCompleted
		_, err := uc.Update(context.Background(), "int1", domain.RoleInterviewer, 4, &domain.InterviewUpdate{Status: &next})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Feedback is required")
	})

	t.Run("Should requeue the reminder on reschedule", func(t *testing.T) {
		ivRepo, _, scheduler, _, uc := newInterviewFixture()
		ivRepo.On("GetByID", mock.Anything, int64(4)).Return(active(), nil).Once()
		ivRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Interview")).Return(nil).Once()

		newDate := time.Now().Add(96 * time.Hour)
		iv, err := uc.Update(context.Background(), "int1", domain.RoleInterviewer, 4, &domain.InterviewUpdate{ScheduledDate: &newDate})
		assert.NoError(t, err)
		assert.True(t, newDate.Equal(iv.ScheduledDate))

		eta, ok := scheduler.scheduled[4]
		assert.True(t, ok)
		assert.WithinDuration(t, newDate.Add(-testReminderLead), eta, time.Second)
	})

	t.Run("Should reject out-of-range duration updates", func(t *testing.T) {
		ivRepo, _, _, _, uc := newInterviewFixture()
		ivRepo.On("GetByID", mock.Anything, int64(4)).Return(active(), nil).Once()

		short := 5
		_, err := uc.Update(context.Background(), "int1", domain.RoleInterviewer, 4, &domain.InterviewUpdate{Duration: &short})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "between 15 and 240")
	})
}

func validFeedback() *domain.InterviewFeedback {
	return &domain.InterviewFeedback{
		Strengths:                 "Strong fundamentals",
		Weaknesses:                "Limited system design exposure",
		OverallRating:             4,
		TechnicalSkillsRating:     4,
		CommunicationSkillsRating: 5,
		ProblemSolvingRating:      4,
		Recommendation:            "Hire",
	}
}

func TestSubmitFeedback(t *testing.T) {
	inProgress := func() *domain.Interview {
		return &domain.Interview{ID: 6, CandidateUserID: "cand1", InterviewerID: "int1", Status: domain.InterviewStatusInProgress}
	}

	t.Run("Should complete the interview and fire the notice", func(t *testing.T) {
		ivRepo, _, scheduler, notifier, uc := newInterviewFixture()
		ivRepo.On("GetByID", mock.Anything, int64(6)).Return(inProgress(), nil).Once()
		ivRepo.On("GetFeedback", mock.Anything, int64(6)).Return(nil, domain.ErrNotFound).Once()
		ivRepo.On("CreateFeedback", mock.Anything, mock.AnythingOfType("*domain.InterviewFeedback")).Return(nil).Run(func(args mock.Arguments) {
			fb := args.Get(1).(*domain.InterviewFeedback)
			assert.Equal(t, int64(6), fb.InterviewID)
		}).Once()

		err := uc.SubmitFeedback(context.Background(), "int1", domain.RoleInterviewer, 6, validFeedback())
		assert.NoError(t, err)
		assert.Contains(t, scheduler.cancelled, int64(6))
		assert.Contains(t, notifier.notified, int64(6))
		ivRepo.AssertExpectations(t)
	})

	t.Run("Should reject a second feedback", func(t *testing.T) {
		ivRepo, _, _, _, uc := newInterviewFixture()
		ivRepo.On("GetByID", mock.Anything, int64(6)).Return(inProgress(), nil).Once()
		ivRepo.On("GetFeedback", mock.Anything, int64(6)).Return(&domain.InterviewFeedback{ID: 1, InterviewID: 6}, nil).Once()

		err := uc.SubmitFeedback(context.Background(), "int1", domain.RoleInterviewer, 6, validFeedback())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already been submitted")
	})

	t.Run("Should surface the unique-constraint race as the same conflict", func(t *testing.T) {
		ivRepo, _, _, _, uc := newInterviewFixture()
		ivRepo.On("GetByID", mock.Anything, int64(6)).Return(inProgress(), nil).Once()
		ivRepo.On("GetFeedback", mock.Anything, int64(6)).Return(nil, domain.ErrNotFound).Once()
		ivRepo.On("CreateFeedback", mock.Anything, mock.AnythingOfType("*domain.InterviewFeedback")).Return(domain.ErrDuplicateFeedback).Once()

		err := uc.SubmitFeedback(context.Background(), "int1", domain.RoleInterviewer, 6, validFeedback())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already been submitted")
	})

	t.Run("Should reject candidates", func(t *testing.T) {
		ivRepo, _, _, _, uc := newInterviewFixture()
		ivRepo.On("GetByID", mock.Anything, int64(6)).Return(inProgress(), nil).Once()

		err := uc.SubmitFeedback(context.Background(), "cand1", domain.RoleCandidate, 6, validFeedback())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only staff or the assigned interviewer")
	})

	t.Run("Should reject incomplete ratings", func(t *testing.T) {
		ivRepo, _, _, _, uc := newInterviewFixture()
		ivRepo.On("GetByID", mock.Anything, int64(6)).Return(inProgress(), nil).Once()
		ivRepo.On("GetFeedback", mock.Anything, int64(6)).Return(nil, domain.ErrNotFound).Once()

		fb := validFeedback()
		fb.OverallRating = 9
		err := uc.SubmitFeedback(context.Background(), "int1", domain.RoleInterviewer, 6, fb)
		assert.Error(t, err)
	})
}

func TestAddQuestion(t *testing.T) {
	t.Run("Should attach the question to the interview", func(t *testing.T) {
		ivRepo, _, _, _, uc := newInterviewFixture()
		ivRepo.On("GetByID", mock.Anything, int64(8)).Return(&domain.Interview{
			ID: 8, InterviewerID: "int1", Status: domain.InterviewStatusInProgress,
		}, nil).Once()
		ivRepo.On("AddQuestion", mock.Anything, mock.AnythingOfType("*domain.InterviewQuestion")).Return(nil).Run(func(args mock.Arguments) {
			q := args.Get(1).(*domain.InterviewQuestion)
			assert.Equal(t, int64(8), q.InterviewID)
		}).Once()

		err := uc.AddQuestion(context.Background(), "int1", domain.RoleInterviewer, 8, &domain.InterviewQuestion{
			QuestionText: "Explain goroutine scheduling",
			QuestionType: domain.QuestionTypeTechnical,
		})
		assert.NoError(t, err)
		ivRepo.AssertExpectations(t)
	})

	t.Run("Should reject unknown question types", func(t *testing.T) {
		ivRepo, _, _, _, uc := newInterviewFixture()
		ivRepo.On("GetByID", mock.Anything, int64(8)).Return(&domain.Interview{
			ID: 8, InterviewerID: "int1", Status: domain.InterviewStatusInProgress,
		}, nil).Once()

		err := uc.AddQuestion(context.Background(), "int1", domain.RoleInterviewer, 8, &domain.InterviewQuestion{
			QuestionText: "Any",
			QuestionType: "TRIVIA",
		})
		assert.Error(t, err)
	})
}
