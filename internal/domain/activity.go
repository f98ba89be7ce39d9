package domain

import (
	"context"
	"time"
)

// ActivityRecord is one user's practice activity for one calendar day.
// There is at most one record per (UserID, Date).
type ActivityRecord struct {
	UserID           string    `json:"user_id" db:"user_id"`
	Date             time.Time `json:"date" db:"date"`
	ProblemsSolved   int       `json:"problems_solved" db:"problems_solved"`
	EasySolved       int       `json:"easy_solved" db:"easy_solved"`
	MediumSolved     int       `json:"medium_solved" db:"medium_solved"`
	HardSolved       int       `json:"hard_solved" db:"hard_solved"`
	TotalSubmissions int       `json:"total_submissions" db:"total_submissions"`
	StreakMaintained bool      `json:"streak_maintained" db:"streak_maintained"`
}

// Active reports whether the record counts towards a streak.
func (a *ActivityRecord) Active() bool {
	return a != nil && a.ProblemsSolved > 0
}

type Streak struct {
	CurrentStreak    int  `json:"current_streak"`
	HasActivityToday bool `json:"has_activity_today"`
}

type ActivityTotals struct {
	Problems int `json:"problems"`
	Easy     int `json:"easy"`
	Medium   int `json:"medium"`
	Hard     int `json:"hard"`
	Days     int `json:"days"`
}

type StatsSummary struct {
	Weekly  ActivityTotals `json:"weekly"`
	Monthly ActivityTotals `json:"monthly"`
	AllTime ActivityTotals `json:"all_time"`
}

type Member struct {
	UserID string `json:"user_id" db:"user_id"`
	Name   string `json:"name" db:"name"`
}

type LeaderboardEntry struct {
	Member
	ActivityTotals
}

type ActivityRepository interface {
	// FindActivity returns nil, nil when no record exists for the day.
	FindActivity(ctx context.Context, userID string, date time.Time) (*ActivityRecord, error)
	UpsertActivity(ctx context.Context, record *ActivityRecord) error
	// IncrementActivity adds one solved problem of the given difficulty to the
	// day's record in a single atomic write and returns the updated record.
	IncrementActivity(ctx context.Context, userID string, date time.Time, difficulty Difficulty, streakMaintained bool) (*ActivityRecord, error)
	// SumActivity totals every record on or after from. A zero from means all time.
	SumActivity(ctx context.Context, userID string, from time.Time) (ActivityTotals, error)
	SaveMember(ctx context.Context, member Member) error
	// TotalsSince returns one entry per known member, including members without activity.
	TotalsSince(ctx context.Context, from time.Time) ([]LeaderboardEntry, error)
}
