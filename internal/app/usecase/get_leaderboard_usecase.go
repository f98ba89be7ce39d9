package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fardannozami/leetcode-tracker/internal/domain"
)

type GetLeaderboardUsecase struct {
	repo   domain.ActivityRepository
	streak *GetStreakUsecase
}

func NewGetLeaderboardUsecase(repo domain.ActivityRepository) *GetLeaderboardUsecase {
	return &GetLeaderboardUsecase{repo: repo, streak: NewGetStreakUsecase(repo)}
}

// Execute ranks members by problems solved since Monday. Ties are broken by
// hard, then medium problems; the repository already returns that order.
func (uc *GetLeaderboardUsecase) Execute(ctx context.Context, today time.Time) (string, error) {
	weekStart := domain.StartOfWeek(today)
	entries, err := uc.repo.TotalsSince(ctx, weekStart)
	if err != nil {
		return "", err
	}

	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("LeetCode Weekly Leaderboard – week of %s\n\n", weekStart.Format("02-01-2006")))

	if len(entries) == 0 {
		sb.WriteString("No one has logged a solve yet. Send #solved <slug> to get on the board 💪")
		return sb.String(), nil
	}

	keepStreak := 0
	for i, e := range entries {
		streak, err := uc.streak.Execute(ctx, e.UserID, today)
		if err != nil {
			return "", err
		}

		marker := "💔"
		if streak.CurrentStreak > 0 {
			marker = "🔥"
			keepStreak++
		}
		sb.WriteString(fmt.Sprintf("%d. %s - %d solved (E%d/M%d/H%d) - %d days streak %s\n",
			i+1, e.Name, e.Problems, e.Easy, e.Medium, e.Hard, streak.CurrentStreak, marker))
	}

	sb.WriteString(fmt.Sprintf("\n%d of %d keep the streak 🔥\nSemangat!", keepStreak, len(entries)))
	return sb.String(), nil
}
