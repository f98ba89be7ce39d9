package usecase

import (
	"context"
	"fmt"
	"time"

	walog "go.mau.fi/whatsmeow/util/log"

	"github.com/fardannozami/leetcode-tracker/internal/domain"
)

type SyncDailyChallengeUsecase struct {
	source domain.ProblemSource
	repo   domain.ProblemRepository
	log    walog.Logger
}

func NewSyncDailyChallengeUsecase(source domain.ProblemSource, repo domain.ProblemRepository, logger walog.Logger) *SyncDailyChallengeUsecase {
	return &SyncDailyChallengeUsecase{source: source, repo: repo, log: logger}
}

// Execute stores the remote question of the day under the date the remote
// reports. It returns nil, nil when the remote has no data or the problem
// would have to be created but its detail is unavailable. A malformed remote
// date fails with domain.ErrInvalidChallengeDate before anything is written.
//
// today is only compared against the remote date; a mismatch is logged.
func (uc *SyncDailyChallengeUsecase) Execute(ctx context.Context, today time.Time) (*domain.DailyChallenge, error) {
	daily := uc.source.GetDailyChallenge(ctx)
	if daily == nil {
		uc.log.Warnf("No daily challenge returned by remote")
		return nil, nil
	}

	date, err := domain.ParseDay(daily.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", domain.ErrInvalidChallengeDate, daily.Date, err)
	}
	if !date.Equal(domain.Day(today)) {
		uc.log.Warnf("Daily challenge date %s differs from today %s", daily.Date, domain.Day(today).Format(domain.DateLayout))
	}

	question := daily.Question
	problem, err := uc.repo.FindByExternalID(ctx, question.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("find problem %d: %w", question.ExternalID, err)
	}

	if problem == nil {
		detail := uc.source.GetDetail(ctx, question.Slug)
		if detail == nil {
			uc.log.Warnf("No detail for daily challenge problem %s", question.Slug)
			return nil, nil
		}

		// The daily payload carries no acceptance rate and no tags.
		problem = newProblem(question, detail, detail.Tags, 0)
		if _, err := uc.repo.CreateProblem(ctx, problem, examplesFromTestcases(detail.ExampleTestcases)); err != nil {
			return nil, fmt.Errorf("create problem %s: %w", question.Slug, err)
		}
		uc.log.Infof("Added problem: %s", problem.Title)
	}

	challenge, err := uc.repo.UpsertDailyChallenge(ctx, date, problem)
	if err != nil {
		return nil, fmt.Errorf("upsert daily challenge %s: %w", daily.Date, err)
	}
	return challenge, nil
}
