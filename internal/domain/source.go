package domain

import "context"

// ProblemSummary is one entry of the remote problem listing.
type ProblemSummary struct {
	ExternalID     int
	Title          string
	Slug           string
	Difficulty     Difficulty
	Tags           []string
	AcceptanceRate float64
	PaidOnly       bool
}

// ProblemDetail is the full remote payload of a single problem.
// Content and Category may be empty, for premium problems in particular.
type ProblemDetail struct {
	ExternalID       int
	Title            string
	Slug             string
	Content          string
	Category         string
	Difficulty       Difficulty
	Tags             []string
	ExampleTestcases string
	PaidOnly         bool
}

// DailyChallengePayload carries the date exactly as the remote sent it.
// Question has no tags and no acceptance rate.
type DailyChallengePayload struct {
	Date     string
	Link     string
	Question ProblemSummary
}

// ProblemSource is a best-effort view of the remote problem catalog.
// Transport and decoding failures yield nil or an empty slice, never an error.
type ProblemSource interface {
	ListProblems(ctx context.Context) []ProblemSummary
	GetDetail(ctx context.Context, slug string) *ProblemDetail
	GetDailyChallenge(ctx context.Context) *DailyChallengePayload
}
