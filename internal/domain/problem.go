package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty accepts the remote spelling ("Easy") as well as the stored one ("easy").
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", fmt.Errorf("unknown problem difficulty %q", s)
	}
}

// ErrInvalidChallengeDate is returned when the remote daily challenge date
// does not match DateLayout.
var ErrInvalidChallengeDate = errors.New("invalid daily challenge date")

type Problem struct {
	ID          int64      `json:"id" db:"id"`
	ExternalID  int        `json:"leetcode_id" db:"external_id"`
	Title       string     `json:"title" db:"title"`
	Slug        string     `json:"slug" db:"slug"`
	Description string     `json:"description" db:"description"`
	Difficulty  Difficulty `json:"difficulty" db:"difficulty"`
	Category    string     `json:"category" db:"category"`
	Tags        []string   `json:"tags" db:"tags"`
	SuccessRate float64    `json:"success_rate" db:"success_rate"`
	IsPremium   bool       `json:"is_premium" db:"is_premium"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// ProblemExample belongs to exactly one Problem and is deleted with it.
type ProblemExample struct {
	ID          int64  `json:"id" db:"id"`
	ProblemID   int64  `json:"problem_id" db:"problem_id"`
	Input       string `json:"input" db:"input"`
	Output      string `json:"output" db:"output"`
	Explanation string `json:"explanation" db:"explanation"`
	Order       int    `json:"order" db:"sort_order"`
}

type DailyChallenge struct {
	ID      int64     `json:"id" db:"id"`
	Date    time.Time `json:"date" db:"date"`
	Problem *Problem  `json:"problem"`
}

// ProblemFilter narrows a problem listing. Zero fields match everything.
// Search matches title, description, category or tags, ignoring case.
type ProblemFilter struct {
	Difficulty Difficulty
	Search     string
}

type ProblemRepository interface {
	// FindByExternalID returns nil, nil when the problem has not been synced.
	FindByExternalID(ctx context.Context, externalID int) (*Problem, error)
	FindBySlug(ctx context.Context, slug string) (*Problem, error)
	ListProblems(ctx context.Context, filter ProblemFilter) ([]*Problem, error)
	ListExamples(ctx context.Context, problemID int64) ([]ProblemExample, error)
	// CreateProblem stores the problem and its examples atomically and fills in the IDs.
	CreateProblem(ctx context.Context, problem *Problem, examples []ProblemExample) (*Problem, error)
	UpdateProblem(ctx context.Context, problem *Problem) error
	UpsertDailyChallenge(ctx context.Context, date time.Time, problem *Problem) (*DailyChallenge, error)
	GetDailyChallenge(ctx context.Context, date time.Time) (*DailyChallenge, error)
}
