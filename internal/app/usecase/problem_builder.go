package usecase

import (
	"strings"

	"github.com/fardannozami/leetcode-tracker/internal/domain"
)

// newProblem builds a not yet stored Problem. Description and category come
// from the detail payload; identity, title, difficulty and premium flag from
// the summary.
func newProblem(summary domain.ProblemSummary, detail *domain.ProblemDetail, tags []string, successRate float64) *domain.Problem {
	return &domain.Problem{
		ExternalID:  summary.ExternalID,
		Title:       summary.Title,
		Slug:        summary.Slug,
		Description: detail.Content,
		Difficulty:  summary.Difficulty,
		Category:    detail.Category,
		Tags:        tags,
		SuccessRate: successRate,
		IsPremium:   summary.PaidOnly,
	}
}

// examplesFromTestcases turns every non-blank line of the raw testcase text
// into an example, numbered in input order.
func examplesFromTestcases(raw string) []domain.ProblemExample {
	var examples []domain.ProblemExample
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		examples = append(examples, domain.ProblemExample{
			Input: line,
			Order: len(examples) + 1,
		})
	}
	return examples
}
