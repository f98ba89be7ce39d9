package usecase_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/fardannozami/leetcode-tracker/internal/domain"
)

// mockActivityRepo implements domain.ActivityRepository in memory.
type mockActivityRepo struct {
	records map[string]*domain.ActivityRecord
	members map[string]string
	lookups int
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{
		records: make(map[string]*domain.ActivityRecord),
		members: make(map[string]string),
	}
}

func activityKey(userID string, date time.Time) string {
	return userID + "|" + domain.Day(date).Format(domain.DateLayout)
}

// solved stores a record with n easy problems for the given day.
func (m *mockActivityRepo) solved(userID, date string, n int) {
	d, _ := domain.ParseDay(date)
	m.records[activityKey(userID, d)] = &domain.ActivityRecord{
		UserID:         userID,
		Date:           d,
		ProblemsSolved: n,
		EasySolved:     n,
	}
}

func (m *mockActivityRepo) FindActivity(ctx context.Context, userID string, date time.Time) (*domain.ActivityRecord, error) {
	m.lookups++
	r, ok := m.records[activityKey(userID, date)]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *mockActivityRepo) UpsertActivity(ctx context.Context, record *domain.ActivityRecord) error {
	cp := *record
	m.records[activityKey(record.UserID, record.Date)] = &cp
	return nil
}

func (m *mockActivityRepo) IncrementActivity(ctx context.Context, userID string, date time.Time, difficulty domain.Difficulty, streakMaintained bool) (*domain.ActivityRecord, error) {
	key := activityKey(userID, date)
	r, ok := m.records[key]
	if !ok {
		r = &domain.ActivityRecord{UserID: userID, Date: domain.Day(date)}
		m.records[key] = r
	}
	r.ProblemsSolved++
	r.TotalSubmissions++
	switch difficulty {
	case domain.DifficultyEasy:
		r.EasySolved++
	case domain.DifficultyMedium:
		r.MediumSolved++
	case domain.DifficultyHard:
		r.HardSolved++
	}
	r.StreakMaintained = streakMaintained
	cp := *r
	return &cp, nil
}

func (m *mockActivityRepo) SumActivity(ctx context.Context, userID string, from time.Time) (domain.ActivityTotals, error) {
	var t domain.ActivityTotals
	for _, r := range m.records {
		if r.UserID != userID || (!from.IsZero() && r.Date.Before(domain.Day(from))) {
			continue
		}
		t.Problems += r.ProblemsSolved
		t.Easy += r.EasySolved
		t.Medium += r.MediumSolved
		t.Hard += r.HardSolved
		t.Days++
	}
	return t, nil
}

func (m *mockActivityRepo) SaveMember(ctx context.Context, member domain.Member) error {
	m.members[member.UserID] = member.Name
	return nil
}

func (m *mockActivityRepo) TotalsSince(ctx context.Context, from time.Time) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	for id, name := range m.members {
		totals, _ := m.SumActivity(ctx, id, from)
		entries = append(entries, domain.LeaderboardEntry{
			Member:         domain.Member{UserID: id, Name: name},
			ActivityTotals: totals,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Problems != entries[j].Problems {
			return entries[i].Problems > entries[j].Problems
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// mockProblemRepo implements domain.ProblemRepository in memory.
type mockProblemRepo struct {
	problems   map[int]*domain.Problem
	examples   map[int64][]domain.ProblemExample
	challenges map[string]*domain.DailyChallenge
	nextID     int64
	creates    int
	updates    int
	failCreate map[string]bool
}

func newMockProblemRepo() *mockProblemRepo {
	return &mockProblemRepo{
		problems:   make(map[int]*domain.Problem),
		examples:   make(map[int64][]domain.ProblemExample),
		challenges: make(map[string]*domain.DailyChallenge),
		failCreate: make(map[string]bool),
	}
}

func (m *mockProblemRepo) FindByExternalID(ctx context.Context, externalID int) (*domain.Problem, error) {
	p, ok := m.problems[externalID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockProblemRepo) FindBySlug(ctx context.Context, slug string) (*domain.Problem, error) {
	for _, p := range m.problems {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockProblemRepo) ListProblems(ctx context.Context, filter domain.ProblemFilter) ([]*domain.Problem, error) {
	var out []*domain.Problem
	for _, p := range m.problems {
		if filter.Difficulty == "" || p.Difficulty == filter.Difficulty {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })
	return out, nil
}

func (m *mockProblemRepo) ListExamples(ctx context.Context, problemID int64) ([]domain.ProblemExample, error) {
	return m.examples[problemID], nil
}

func (m *mockProblemRepo) CreateProblem(ctx context.Context, problem *domain.Problem, examples []domain.ProblemExample) (*domain.Problem, error) {
	if m.failCreate[problem.Slug] {
		return nil, errors.New("disk full")
	}
	m.nextID++
	m.creates++
	problem.ID = m.nextID
	cp := *problem
	m.problems[problem.ExternalID] = &cp
	for i := range examples {
		examples[i].ProblemID = problem.ID
	}
	m.examples[problem.ID] = examples
	return problem, nil
}

func (m *mockProblemRepo) UpdateProblem(ctx context.Context, problem *domain.Problem) error {
	m.updates++
	cp := *problem
	m.problems[problem.ExternalID] = &cp
	return nil
}

func (m *mockProblemRepo) UpsertDailyChallenge(ctx context.Context, date time.Time, problem *domain.Problem) (*domain.DailyChallenge, error) {
	key := domain.Day(date).Format(domain.DateLayout)
	c, ok := m.challenges[key]
	if !ok {
		c = &domain.DailyChallenge{ID: int64(len(m.challenges) + 1), Date: domain.Day(date)}
		m.challenges[key] = c
	}
	c.Problem = problem
	return c, nil
}

func (m *mockProblemRepo) GetDailyChallenge(ctx context.Context, date time.Time) (*domain.DailyChallenge, error) {
	return m.challenges[domain.Day(date).Format(domain.DateLayout)], nil
}

// mockSource implements domain.ProblemSource. A slug missing from details
// behaves like a failed detail fetch.
type mockSource struct {
	summaries   []domain.ProblemSummary
	details     map[string]*domain.ProblemDetail
	daily       *domain.DailyChallengePayload
	detailCalls int
}

func (m *mockSource) ListProblems(ctx context.Context) []domain.ProblemSummary {
	return m.summaries
}

func (m *mockSource) GetDetail(ctx context.Context, slug string) *domain.ProblemDetail {
	m.detailCalls++
	return m.details[slug]
}

func (m *mockSource) GetDailyChallenge(ctx context.Context) *domain.DailyChallengePayload {
	return m.daily
}

func mustDay(s string) time.Time {
	d, err := domain.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}
