package usecase

import (
	"context"
	"errors"

	"recruiter-backend/internal/domain"
	"recruiter-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type candidateUsecase struct {
	repo     domain.CandidateRepository
	validate *validator.Validate
}

func NewCandidateUsecase(repo domain.CandidateRepository, validate *validator.Validate) domain.CandidateUsecase {
	return &candidateUsecase{
		repo:     repo,
		validate: validate,
	}
}

func (u *candidateUsecase) GetProfile(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	// Security: Ownership Check
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	if ctxUserID != userID {
		role, _ := ctx.Value(domain.KeyUserRole).(string)
		if !domain.IsStaff(role) {
			return nil, apperror.Forbidden("You can only view your own profile")
		}
	}

	profile, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Candidate profile not found")
		}
		return nil, err
	}
	return profile, nil
}

// UpsertProfile creates the profile on first save and updates it afterwards.
// The profile is always written under the authenticated user's ID.
func (u *candidateUsecase) UpsertProfile(ctx context.Context, profile *domain.CandidateProfile) error {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return apperror.Unauthorized("User not authenticated")
	}

	// Force the UserID to the context user so nobody can write someone else's profile
	profile.UserID = ctxUserID

	if err := u.validate.Struct(profile); err != nil {
		return apperror.BadRequest(err.Error())
	}

	existing, err := u.repo.GetByUserID(ctx, ctxUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return u.repo.Create(ctx, profile)
		}
		return err
	}

	profile.ID = existing.ID
	return u.repo.Update(ctx, profile)
}

// ListProfiles is a staff-only view over all candidate profiles
func (u *candidateUsecase) ListProfiles(ctx context.Context, page, pageSize int) ([]domain.CandidateProfile, int64, error) {
	role, _ := ctx.Value(domain.KeyUserRole).(string)
	if !domain.IsStaff(role) {
		return nil, 0, apperror.Forbidden("Only staff can list candidate profiles")
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	return u.repo.Fetch(ctx, pageSize, offset)
}

func (u *candidateUsecase) AddSkill(ctx context.Context, skill *domain.CandidateSkill) (*domain.CandidateSkill, error) {
	profile, err := u.ownProfile(ctx)
	if err != nil {
		return nil, err
	}

	skill.ProfileID = profile.ID
	if err := u.validate.Struct(skill); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	if err := u.repo.AddSkill(ctx, skill); err != nil {
		return nil, apperror.Internal(err)
	}
	return skill, nil
}

func (u *candidateUsecase) RemoveSkill(ctx context.Context, skillID int64) error {
	profile, err := u.ownProfile(ctx)
	if err != nil {
		return err
	}

	// Scoped to the caller's profile so foreign skill IDs come back not found
	if err := u.repo.DeleteSkill(ctx, profile.ID, skillID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Skill not found")
		}
		return err
	}
	return nil
}

func (u *candidateUsecase) AddExperience(ctx context.Context, exp *domain.CandidateExperience) (*domain.CandidateExperience, error) {
	profile, err := u.ownProfile(ctx)
	if err != nil {
		return nil, err
	}

	exp.ProfileID = profile.ID
	if err := u.validate.Struct(exp); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}
	if exp.CurrentJob {
		exp.EndDate = nil
	}

	if err := u.repo.AddExperience(ctx, exp); err != nil {
		return nil, apperror.Internal(err)
	}
	return exp, nil
}

func (u *candidateUsecase) RemoveExperience(ctx context.Context, expID int64) error {
	profile, err := u.ownProfile(ctx)
	if err != nil {
		return err
	}

	if err := u.repo.DeleteExperience(ctx, profile.ID, expID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Experience not found")
		}
		return err
	}
	return nil
}

func (u *candidateUsecase) ownProfile(ctx context.Context) (*domain.CandidateProfile, error) {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	profile, err := u.repo.GetByUserID(ctx, ctxUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Create your profile before editing skills or experience")
		}
		return nil, err
	}
	return profile, nil
}
