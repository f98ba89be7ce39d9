package usecase

import (
	"context"
	"time"

	"github.com/fardannozami/leetcode-tracker/internal/domain"
)

type GetStatsUsecase struct {
	repo domain.ActivityRepository
}

func NewGetStatsUsecase(repo domain.ActivityRepository) *GetStatsUsecase {
	return &GetStatsUsecase{repo: repo}
}

// Execute sums the user's activity for the week (from Monday), the month and all time.
func (uc *GetStatsUsecase) Execute(ctx context.Context, userID string, today time.Time) (domain.StatsSummary, error) {
	var summary domain.StatsSummary
	var err error

	if summary.Weekly, err = uc.repo.SumActivity(ctx, userID, domain.StartOfWeek(today)); err != nil {
		return domain.StatsSummary{}, err
	}
	if summary.Monthly, err = uc.repo.SumActivity(ctx, userID, domain.StartOfMonth(today)); err != nil {
		return domain.StatsSummary{}, err
	}
	if summary.AllTime, err = uc.repo.SumActivity(ctx, userID, time.Time{}); err != nil {
		return domain.StatsSummary{}, err
	}
	return summary, nil
}
