package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fardannozami/leetcode-tracker/internal/domain"
)

type SolveRecorder interface {
	Execute(ctx context.Context, userID, name, slug string, today time.Time) (string, error)
}

type StreakGetter interface {
	Execute(ctx context.Context, userID string, today time.Time) (domain.Streak, error)
}

type StatsGetter interface {
	Execute(ctx context.Context, userID string, today time.Time) (domain.StatsSummary, error)
}

type DailyChallengeGetter interface {
	Execute(ctx context.Context, today time.Time) (*domain.DailyChallenge, error)
}

type LeaderboardRenderer interface {
	Execute(ctx context.Context, today time.Time) (string, error)
}

const helpMessage = `Commands:
#solved <slug> - log a solved problem
#streak - your current streak
#stats - problems solved this week, month and all time
#daily - today's daily challenge
#leaderboard - this week's ranking`

type HandleMessageUsecase struct {
	solve       SolveRecorder
	streak      StreakGetter
	stats       StatsGetter
	daily       DailyChallengeGetter
	leaderboard LeaderboardRenderer
}

func NewHandleMessageUsecase(solve SolveRecorder, streak StreakGetter, stats StatsGetter, daily DailyChallengeGetter, leaderboard LeaderboardRenderer) *HandleMessageUsecase {
	return &HandleMessageUsecase{
		solve:       solve,
		streak:      streak,
		stats:       stats,
		daily:       daily,
		leaderboard: leaderboard,
	}
}

// Execute routes a chat message to its command. Messages that are not
// commands produce an empty reply.
func (uc *HandleMessageUsecase) Execute(ctx context.Context, userID, name, msg string, today time.Time) (string, error) {
	fields := strings.Fields(msg)
	if len(fields) == 0 {
		return "", nil
	}

	switch strings.ToLower(fields[0]) {
	case "#solved":
		slug := ""
		if len(fields) > 1 {
			slug = fields[1]
		}
		return uc.solve.Execute(ctx, userID, name, slug, today)

	case "#streak":
		streak, err := uc.streak.Execute(ctx, userID, today)
		if err != nil {
			return "", err
		}
		return formatStreak(name, streak), nil

	case "#stats":
		summary, err := uc.stats.Execute(ctx, userID, today)
		if err != nil {
			return "", err
		}
		return formatStats(name, summary), nil

	case "#daily":
		challenge, err := uc.daily.Execute(ctx, today)
		if err != nil {
			return "", err
		}
		return FormatDailyChallenge(challenge), nil

	case "#leaderboard":
		return uc.leaderboard.Execute(ctx, today)

	case "#help":
		return helpMessage, nil
	}

	return "", nil
}

func formatStreak(name string, s domain.Streak) string {
	switch {
	case s.CurrentStreak == 0:
		return fmt.Sprintf("%s, no streak yet. Solve one today to start 💪", name)
	case s.HasActivityToday:
		return fmt.Sprintf("%s is on a %d day streak 🔥", name, s.CurrentStreak)
	default:
		return fmt.Sprintf("%s is on a %d day streak, solve one today to keep it ⏳", name, s.CurrentStreak)
	}
}

func formatStats(name string, s domain.StatsSummary) string {
	line := func(label string, t domain.ActivityTotals) string {
		return fmt.Sprintf("%s: %d solved (E%d/M%d/H%d) in %d days\n", label, t.Problems, t.Easy, t.Medium, t.Hard, t.Days)
	}
	return "📊 Stats for " + name + "\n" +
		line("This week", s.Weekly) +
		line("This month", s.Monthly) +
		strings.TrimSuffix(line("All time", s.AllTime), "\n")
}
