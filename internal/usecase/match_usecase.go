package usecase

import (
	"context"

	"recruiter-backend/internal/domain"
)

// recommendedJobsLimit caps the recommended_jobs listing
const recommendedJobsLimit = 10

type matchUsecase struct {
	matchRepo domain.MatchRepository
}

func NewMatchUsecase(matchRepo domain.MatchRepository) domain.MatchUsecase {
	return &matchUsecase{matchRepo: matchRepo}
}

// ListMatches returns the caller's matches; staff see all matches paginated
func (u *matchUsecase) ListMatches(ctx context.Context, userID, role string, page, pageSize int) ([]domain.JobMatch, int64, error) {
	if domain.IsStaff(role) {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			pageSize = 10
		}
		return u.matchRepo.Fetch(ctx, pageSize, (page-1)*pageSize)
	}

	matches, err := u.matchRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return matches, int64(len(matches)), nil
}

// RecommendedJobs returns the caller's top matches by descending score
func (u *matchUsecase) RecommendedJobs(ctx context.Context, userID string) ([]domain.JobMatch, error) {
	return u.matchRepo.TopByUserID(ctx, userID, recommendedJobsLimit)
}
