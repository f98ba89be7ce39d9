package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fardannozami/leetcode-tracker/internal/domain"
)

type RecordSolveUsecase struct {
	activity domain.ActivityRepository
	problems domain.ProblemRepository
	streak   *GetStreakUsecase
}

func NewRecordSolveUsecase(activity domain.ActivityRepository, problems domain.ProblemRepository) *RecordSolveUsecase {
	return &RecordSolveUsecase{
		activity: activity,
		problems: problems,
		streak:   NewGetStreakUsecase(activity),
	}
}

// Execute adds one solved problem to the user's activity for today.
func (uc *RecordSolveUsecase) Execute(ctx context.Context, userID, name, slug string, today time.Time) (string, error) {
	slug = strings.Trim(strings.ToLower(strings.TrimSpace(slug)), "/")
	if slug == "" {
		return "Usage: #solved <problem-slug>, e.g. #solved two-sum", nil
	}

	problem, err := uc.problems.FindBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if problem == nil {
		return fmt.Sprintf("I don't know %q yet, %s. Use the slug from the problem URL 🧐", slug, name), nil
	}

	if err := uc.activity.SaveMember(ctx, domain.Member{UserID: userID, Name: name}); err != nil {
		return "", err
	}

	today = domain.Day(today)
	yesterday, err := uc.activity.FindActivity(ctx, userID, today.AddDate(0, 0, -1))
	if err != nil {
		return "", err
	}

	// Messages are handled concurrently, so the counters are bumped in the store.
	record, err := uc.activity.IncrementActivity(ctx, userID, today, problem.Difficulty, yesterday.Active())
	if err != nil {
		return "", err
	}

	streak, err := uc.streak.Execute(ctx, userID, today)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Nice one, %s! %s (%s) logged. %d solved today, %d day streak 🔥",
		name, problem.Title, problem.Difficulty, record.ProblemsSolved, streak.CurrentStreak), nil
}
