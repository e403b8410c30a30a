package usecase_test

import (
	"context"
	"testing"

	"recruiter-backend/internal/domain"
	"recruiter-backend/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}

func (m *MockCandidateRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.CandidateProfile, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.CandidateProfile), args.Get(1).(int64), args.Error(2)
}

func (m *MockCandidateRepo) Create(ctx context.Context, profile *domain.CandidateProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockCandidateRepo) Update(ctx context.Context, profile *domain.CandidateProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockCandidateRepo) AddSkill(ctx context.Context, skill *domain.CandidateSkill) error {
	return m.Called(ctx, skill).Error(0)
}

func (m *MockCandidateRepo) DeleteSkill(ctx context.Context, profileID, skillID int64) error {
	return m.Called(ctx, profileID, skillID).Error(0)
}

func (m *MockCandidateRepo) AddExperience(ctx context.Context, exp *domain.CandidateExperience) error {
	return m.Called(ctx, exp).Error(0)
}

func (m *MockCandidateRepo) DeleteExperience(ctx context.Context, profileID, expID int64) error {
	return m.Called(ctx, profileID, expID).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) FetchActive(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) Deactivate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.JobApplication) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.JobApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobApplication), args.Error(1)
}

func (m *MockApplicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.JobApplication, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobApplication), args.Error(1)
}

func (m *MockApplicationRepo) GetByUserID(ctx context.Context, userID string) ([]domain.JobApplication, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobApplication), args.Error(1)
}

func (m *MockApplicationRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.JobApplication, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.JobApplication), args.Get(1).(int64), args.Error(2)
}

func (m *MockApplicationRepo) CheckExists(ctx context.Context, jobID int64, userID string) (bool, error) {
	args := m.Called(ctx, jobID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func TestCandidateIDOR(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	validate := validator.New()
	uc := usecase.NewCandidateUsecase(mockRepo, validate)

	t.Run("Should fail when Context UserID does not match Argument UserID", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), domain.KeyUserID, "user1")
		ctx = context.WithValue(ctx, domain.KeyUserRole, domain.RoleCandidate)
		_, err := uc.GetProfile(ctx, "user2")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only view your own profile")
	})

	t.Run("Should allow staff to view any profile", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), domain.KeyUserID, "admin1")
		ctx = context.WithValue(ctx, domain.KeyUserRole, domain.RoleAdmin)
		mockRepo.On("GetByUserID", ctx, "user2").Return(&domain.CandidateProfile{UserID: "user2"}, nil).Once()

		profile, err := uc.GetProfile(ctx, "user2")
		assert.NoError(t, err)
		assert.Equal(t, "user2", profile.UserID)
	})

	t.Run("Should fail safely when Context UserID is nil", func(t *testing.T) {
		ctx := context.Background() // keys missing
		_, err := uc.GetProfile(ctx, "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User not authenticated")
	})
}

func TestCandidateUpsertProfile(t *testing.T) {
	t.Run("Should force UserID from context", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(mockRepo, validator.New())

		ctx := context.WithValue(context.Background(), domain.KeyUserID, "user1")
		profile := &domain.CandidateProfile{
			UserID:      "hacker_try",
			PhoneNumber: "+6281234567890",
			Location:    "Jakarta",
		}

		mockRepo.On("GetByUserID", ctx, "user1").Return(nil, domain.ErrNotFound).Once()
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.CandidateProfile")).Return(nil).Run(func(args mock.Arguments) {
			p := args.Get(1).(*domain.CandidateProfile)
			assert.Equal(t, "user1", p.UserID)
		}).Once()

		err := uc.UpsertProfile(ctx, profile)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should fail if required fields are missing", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(mockRepo, validator.New())

		ctx := context.WithValue(context.Background(), domain.KeyUserID, "user1")
		err := uc.UpsertProfile(ctx, &domain.CandidateProfile{})
		assert.Error(t, err)
	})

	t.Run("Should update existing profile in place", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(mockRepo, validator.New())

		ctx := context.WithValue(context.Background(), domain.KeyUserID, "user1")
		existing := &domain.CandidateProfile{ID: 42, UserID: "user1"}
		mockRepo.On("GetByUserID", ctx, "user1").Return(existing, nil).Once()
		mockRepo.On("Update", ctx, mock.AnythingOfType("*domain.CandidateProfile")).Return(nil).Run(func(args mock.Arguments) {
			p := args.Get(1).(*domain.CandidateProfile)
			assert.Equal(t, int64(42), p.ID)
		}).Once()

		err := uc.UpsertProfile(ctx, &domain.CandidateProfile{
			PhoneNumber: "+6281234567890",
			Location:    "Jakarta",
		})
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestCandidateSkillOwnership(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(mockRepo, validator.New())

	t.Run("Should scope skill deletion to the caller's profile", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), domain.KeyUserID, "user1")
		mockRepo.On("GetByUserID", ctx, "user1").Return(&domain.CandidateProfile{ID: 7, UserID: "user1"}, nil).Once()
		mockRepo.On("DeleteSkill", ctx, int64(7), int64(99)).Return(domain.ErrNotFound).Once()

		err := uc.RemoveSkill(ctx, 99)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Skill not found")
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should require a profile before adding skills", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), domain.KeyUserID, "user2")
		mockRepo.On("GetByUserID", ctx, "user2").Return(nil, domain.ErrNotFound).Once()

		_, err := uc.AddSkill(ctx, &domain.CandidateSkill{
			SkillName:  "Go",
			SkillLevel: domain.SkillLevelAdvanced,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Create your profile")
	})
}

func TestJobOwnership(t *testing.T) {
	job := func() *domain.Job {
		return &domain.Job{
			ID:           1,
			Title:        "Backend Engineer",
			Description:  "Build services",
			Requirements: "Go",
			Location:     "Remote",
			JobType:      "Full-time",
			PostedBy:     "owner1",
		}
	}

	t.Run("Should reject update from non-owner", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validator.New())
		mockRepo.On("GetByID", mock.Anything, int64(1)).Return(job(), nil).Once()

		err := uc.UpdateJob(context.Background(), "intruder", domain.RoleInterviewer, job())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only the job poster or staff")
	})

	t.Run("Should allow staff to update any job", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validator.New())
		mockRepo.On("GetByID", mock.Anything, int64(1)).Return(job(), nil).Once()
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Job")).Return(nil).Once()

		err := uc.UpdateJob(context.Background(), "admin1", domain.RoleAdmin, job())
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should preserve the original poster on update", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validator.New())
		mockRepo.On("GetByID", mock.Anything, int64(1)).Return(job(), nil).Once()
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Job")).Return(nil).Run(func(args mock.Arguments) {
			j := args.Get(1).(*domain.Job)
			assert.Equal(t, "owner1", j.PostedBy)
		}).Once()

		tampered := job()
		tampered.PostedBy = "someone_else"
		err := uc.UpdateJob(context.Background(), "owner1", domain.RoleInterviewer, tampered)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should soft-delete via deactivation", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validator.New())
		mockRepo.On("GetByID", mock.Anything, int64(1)).Return(job(), nil).Once()
		mockRepo.On("Deactivate", mock.Anything, int64(1)).Return(nil).Once()

		err := uc.DeleteJob(context.Background(), "owner1", domain.RoleInterviewer, 1)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestJobListVisibility(t *testing.T) {
	t.Run("Staff see all postings", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validator.New())
		mockRepo.On("Fetch", mock.Anything, 10, 0).Return([]domain.Job{}, int64(0), nil).Once()

		_, _, err := uc.ListJobs(context.Background(), domain.RoleAdmin, 1, 10)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Candidates only see active postings", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validator.New())
		mockRepo.On("FetchActive", mock.Anything, 10, 0).Return([]domain.Job{}, int64(0), nil).Once()

		_, _, err := uc.ListJobs(context.Background(), domain.RoleCandidate, 1, 10)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestApplyToJob(t *testing.T) {
	activeJob := &domain.Job{ID: 5, PostedBy: "owner1", IsActive: true}

	t.Run("Should require cover letter and resume", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo))

		_, err := uc.ApplyToJob(context.Background(), "user1", 5, "", "https://cv.example.com/u1.pdf")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Cover letter is required")

		_, err = uc.ApplyToJob(context.Background(), "user1", 5, "Hello", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Resume is required")
	})

	t.Run("Should reject applications against inactive jobs", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), mockJobs)
		mockJobs.On("GetByID", mock.Anything, int64(5)).Return(&domain.Job{ID: 5, IsActive: false}, nil).Once()

		_, err := uc.ApplyToJob(context.Background(), "user1", 5, "Hello", "https://cv.example.com/u1.pdf")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "inactive job")
	})

	t.Run("Should reject duplicate applications", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs)
		mockJobs.On("GetByID", mock.Anything, int64(5)).Return(activeJob, nil).Once()
		mockApps.On("CheckExists", mock.Anything, int64(5), "user1").Return(true, nil).Once()

		_, err := uc.ApplyToJob(context.Background(), "user1", 5, "Hello", "https://cv.example.com/u1.pdf")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already applied")
	})

	t.Run("Should create a PENDING application", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs)
		mockJobs.On("GetByID", mock.Anything, int64(5)).Return(activeJob, nil).Once()
		mockApps.On("CheckExists", mock.Anything, int64(5), "user1").Return(false, nil).Once()
		mockApps.On("Create", mock.Anything, mock.AnythingOfType("*domain.JobApplication")).Return(nil).Once()

		app, err := uc.ApplyToJob(context.Background(), "user1", 5, "Hello", "https://cv.example.com/u1.pdf")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
		assert.Equal(t, "user1", app.CandidateUserID)
		mockApps.AssertExpectations(t)
	})
}

func TestApplicationStatusUpdate(t *testing.T) {
	t.Run("Should be staff-only", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo))
		err := uc.UpdateApplicationStatus(context.Background(), domain.RoleInterviewer, 1, domain.ApplicationStatusReviewing)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only staff")
	})

	t.Run("Should reject unknown statuses", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo))
		err := uc.UpdateApplicationStatus(context.Background(), domain.RoleAdmin, 1, "ARCHIVED")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid status")
	})

	t.Run("Should allow any transition between known statuses", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(mockApps, new(MockJobRepo))
		mockApps.On("UpdateStatus", mock.Anything, int64(1), domain.ApplicationStatusHired).Return(nil).Once()

		err := uc.UpdateApplicationStatus(context.Background(), domain.RoleAdmin, 1, domain.ApplicationStatusHired)
		assert.NoError(t, err)
		mockApps.AssertExpectations(t)
	})
}

func TestApplicationVisibility(t *testing.T) {
	t.Run("Job applications list is restricted to poster or staff", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), mockJobs)
		mockJobs.On("GetByID", mock.Anything, int64(5)).Return(&domain.Job{ID: 5, PostedBy: "owner1"}, nil).Once()

		_, err := uc.ListByJobID(context.Background(), "stranger", domain.RoleCandidate, 5)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only the job poster or staff")
	})

	t.Run("Applicant can read their own application", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(mockApps, new(MockJobRepo))
		mockApps.On("GetByID", mock.Anything, int64(9)).Return(&domain.JobApplication{ID: 9, CandidateUserID: "user1", JobID: 5}, nil).Once()

		app, err := uc.GetApplication(context.Background(), "user1", domain.RoleCandidate, 9)
		assert.NoError(t, err)
		assert.Equal(t, int64(9), app.ID)
	})

	t.Run("Stranger cannot read another user's application", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs)
		mockApps.On("GetByID", mock.Anything, int64(9)).Return(&domain.JobApplication{ID: 9, CandidateUserID: "user1", JobID: 5}, nil).Once()
		mockJobs.On("GetByID", mock.Anything, int64(5)).Return(&domain.Job{ID: 5, PostedBy: "owner1"}, nil).Once()

		_, err := uc.GetApplication(context.Background(), "stranger", domain.RoleCandidate, 9)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot view this application")
	})
}
