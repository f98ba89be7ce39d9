package main

import (
	"context"
	"time"

	walog "go.mau.fi/whatsmeow/util/log"

	"github.com/fardannozami/leetcode-tracker/internal/app/usecase"
	"github.com/fardannozami/leetcode-tracker/internal/domain"
)

type dailySyncer interface {
	Execute(ctx context.Context, today time.Time) (*domain.DailyChallenge, error)
}

// dailyJob syncs the question of the day and announces each date once.
type dailyJob struct {
	sync      dailySyncer
	send      func(ctx context.Context, chatJID, text string) error
	groupID   string
	announce  bool
	today     func() time.Time
	log       walog.Logger
	announced string
}

func (j *dailyJob) run(ctx context.Context) {
	challenge, err := j.sync.Execute(ctx, j.today())
	if err != nil {
		j.log.Errorf("Daily challenge sync failed: %v", err)
		return
	}
	if challenge == nil {
		j.log.Warnf("Daily challenge not available yet")
		return
	}

	date := challenge.Date.Format(domain.DateLayout)
	j.log.Infof("Synced daily challenge %s for %s", challenge.Problem.Slug, date)

	if !j.announce || j.groupID == "" || j.announced == date {
		return
	}
	if err := j.send(ctx, j.groupID, usecase.FormatDailyChallenge(challenge)); err != nil {
		j.log.Warnf("Failed to announce daily challenge: %v", err)
		return
	}
	j.announced = date
}

// loop runs the job immediately and then on every tick until ctx is done.
func (j *dailyJob) loop(ctx context.Context, interval time.Duration) {
	j.run(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.run(ctx)
		}
	}
}
