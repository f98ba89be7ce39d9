package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	walog "go.mau.fi/whatsmeow/util/log"

	"github.com/fardannozami/leetcode-tracker/internal/domain"
)

// Throttle paces remote calls. *rate.Limiter satisfies it.
type Throttle interface {
	Wait(ctx context.Context) error
}

type SyncProblemsUsecase struct {
	source   domain.ProblemSource
	repo     domain.ProblemRepository
	throttle Throttle
	log      walog.Logger
}

func NewSyncProblemsUsecase(source domain.ProblemSource, repo domain.ProblemRepository, throttle Throttle, logger walog.Logger) *SyncProblemsUsecase {
	return &SyncProblemsUsecase{source: source, repo: repo, throttle: throttle, log: logger}
}

// Execute reconciles the remote catalog into the repository and returns how
// many problems were created. Known problems only get title, difficulty,
// success rate and premium flag refreshed. Unknown problems whose detail
// cannot be fetched are skipped.
//
// Every problem is stored on its own. When the run stops early, problems
// reconciled before the failure stay stored and the count so far is returned
// with the error.
func (uc *SyncProblemsUsecase) Execute(ctx context.Context) (int, error) {
	runID := uuid.NewString()
	summaries := uc.source.ListProblems(ctx)
	uc.log.Infof("[%s] Syncing %d problems", runID, len(summaries))

	created := 0
	for _, summary := range summaries {
		if err := uc.throttle.Wait(ctx); err != nil {
			return created, err
		}

		problem, err := uc.repo.FindByExternalID(ctx, summary.ExternalID)
		if err != nil {
			return created, fmt.Errorf("find problem %d: %w", summary.ExternalID, err)
		}

		if problem != nil {
			problem.Title = summary.Title
			problem.Difficulty = summary.Difficulty
			problem.SuccessRate = summary.AcceptanceRate
			problem.IsPremium = summary.PaidOnly
			if err := uc.repo.UpdateProblem(ctx, problem); err != nil {
				return created, fmt.Errorf("update problem %s: %w", summary.Slug, err)
			}
			continue
		}

		detail := uc.source.GetDetail(ctx, summary.Slug)
		if detail == nil {
			uc.log.Warnf("[%s] Skipping %s: no detail available", runID, summary.Slug)
			continue
		}

		problem = newProblem(summary, detail, summary.Tags, summary.AcceptanceRate)
		if _, err := uc.repo.CreateProblem(ctx, problem, examplesFromTestcases(detail.ExampleTestcases)); err != nil {
			return created, fmt.Errorf("create problem %s: %w", summary.Slug, err)
		}
		created++
		uc.log.Infof("[%s] Added problem: %s", runID, problem.Title)
	}

	uc.log.Infof("[%s] Synced %d new problems", runID, created)
	return created, nil
}
