package usecase

import (
	"context"
	"time"

	"github.com/fardannozami/leetcode-tracker/internal/domain"
)

type GetStreakUsecase struct {
	repo domain.ActivityRepository
}

func NewGetStreakUsecase(repo domain.ActivityRepository) *GetStreakUsecase {
	return &GetStreakUsecase{repo: repo}
}

// Execute counts consecutive active days ending at today. Yesterday and the
// days before it are walked backwards until the first day without solved
// problems; today adds one more when it is active. A missing today does not
// break the streak, the day is still open.
//
// The walk has no lookback limit, so its cost is bounded by the length of
// the user's unbroken run, not by their whole history.
func (uc *GetStreakUsecase) Execute(ctx context.Context, userID string, today time.Time) (domain.Streak, error) {
	today = domain.Day(today)

	todayRecord, err := uc.repo.FindActivity(ctx, userID, today)
	if err != nil {
		return domain.Streak{}, err
	}
	hasActivityToday := todayRecord.Active()

	streak := 0
	for cursor := today.AddDate(0, 0, -1); ; cursor = cursor.AddDate(0, 0, -1) {
		if err := ctx.Err(); err != nil {
			return domain.Streak{}, err
		}
		record, err := uc.repo.FindActivity(ctx, userID, cursor)
		if err != nil {
			return domain.Streak{}, err
		}
		if !record.Active() {
			break
		}
		streak++
	}

	if hasActivityToday {
		streak++
	}

	return domain.Streak{CurrentStreak: streak, HasActivityToday: hasActivityToday}, nil
}
