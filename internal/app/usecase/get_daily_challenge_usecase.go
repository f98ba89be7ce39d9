package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fardannozami/leetcode-tracker/internal/domain"
)

type GetDailyChallengeUsecase struct {
	repo domain.ProblemRepository
}

func NewGetDailyChallengeUsecase(repo domain.ProblemRepository) *GetDailyChallengeUsecase {
	return &GetDailyChallengeUsecase{repo: repo}
}

// Execute returns nil, nil when no challenge was synced for the day.
func (uc *GetDailyChallengeUsecase) Execute(ctx context.Context, today time.Time) (*domain.DailyChallenge, error) {
	return uc.repo.GetDailyChallenge(ctx, domain.Day(today))
}

// FormatDailyChallenge renders a challenge as a chat message.
func FormatDailyChallenge(c *domain.DailyChallenge) string {
	if c == nil || c.Problem == nil {
		return "Today's daily challenge hasn't been synced yet. Check back later ⏳"
	}
	p := c.Problem
	msg := fmt.Sprintf("📅 Daily challenge %s\n%d. %s (%s)\nhttps://leetcode.com/problems/%s/",
		c.Date.Format(domain.DateLayout), p.ExternalID, p.Title, p.Difficulty, p.Slug)
	if p.IsPremium {
		msg += "\n🔒 Premium only"
	}
	return msg
}
