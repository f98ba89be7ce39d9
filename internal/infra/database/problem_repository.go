package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fardannozami/leetcode-tracker/internal/domain"
)

type ProblemRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewProblemRepository(db *sql.DB, dialect Dialect) *ProblemRepository {
	return &ProblemRepository{db: db, dialect: dialect}
}

const problemColumns = `id, external_id, title, slug, description, difficulty, category, tags, success_rate, is_premium, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProblem(row rowScanner) (*domain.Problem, error) {
	var p domain.Problem
	var difficulty, tags, createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.ExternalID, &p.Title, &p.Slug, &p.Description, &difficulty, &p.Category,
		&tags, &p.SuccessRate, &p.IsPremium, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.Difficulty = domain.Difficulty(difficulty)
	p.Tags = splitTags(tags)
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProblemRepository) findOne(ctx context.Context, where string, arg any) (*domain.Problem, error) {
	query := `SELECT ` + problemColumns + ` FROM problems WHERE ` + where
	p, err := scanProblem(r.db.QueryRowContext(ctx, r.dialect.rebind(query), arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *ProblemRepository) FindByExternalID(ctx context.Context, externalID int) (*domain.Problem, error) {
	return r.findOne(ctx, `external_id = ?`, externalID)
}

func (r *ProblemRepository) FindBySlug(ctx context.Context, slug string) (*domain.Problem, error) {
	return r.findOne(ctx, `slug = ?`, slug)
}

// ListProblems returns the problems matching filter ordered by external id.
func (r *ProblemRepository) ListProblems(ctx context.Context, filter domain.ProblemFilter) ([]*domain.Problem, error) {
	var where []string
	var args []any
	if filter.Difficulty != "" {
		where = append(where, `difficulty = ?`)
		args = append(args, string(filter.Difficulty))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		where = append(where, `(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ? OR LOWER(tags) LIKE ?)`)
		pattern := "%" + strings.ToLower(search) + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}

	query := `SELECT ` + problemColumns + ` FROM problems`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY external_id`

	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var problems []*domain.Problem
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, err
		}
		problems = append(problems, p)
	}
	return problems, rows.Err()
}

func (r *ProblemRepository) ListExamples(ctx context.Context, problemID int64) ([]domain.ProblemExample, error) {
	query := `SELECT id, problem_id, input, output, explanation, sort_order FROM problem_examples WHERE problem_id = ? ORDER BY sort_order`
	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(query), problemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var examples []domain.ProblemExample
	for rows.Next() {
		var e domain.ProblemExample
		if err := rows.Scan(&e.ID, &e.ProblemID, &e.Input, &e.Output, &e.Explanation, &e.Order); err != nil {
			return nil, err
		}
		examples = append(examples, e)
	}
	return examples, rows.Err()
}

func (r *ProblemRepository) CreateProblem(ctx context.Context, problem *domain.Problem, examples []domain.ProblemExample) (*domain.Problem, error) {
	now := time.Now().UTC().Truncate(time.Second)
	if problem.CreatedAt.IsZero() {
		problem.CreatedAt = now
	}
	problem.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO problems (external_id, title, slug, description, difficulty, category, tags, success_rate, is_premium, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, r.dialect.rebind(query), problem.ExternalID, problem.Title, problem.Slug,
		problem.Description, string(problem.Difficulty), problem.Category, joinTags(problem.Tags),
		problem.SuccessRate, problem.IsPremium,
		problem.CreatedAt.Format(time.RFC3339), problem.UpdatedAt.Format(time.RFC3339)).Scan(&problem.ID)
	if err != nil {
		return nil, fmt.Errorf("insert problem %s: %w", problem.Slug, err)
	}

	exampleQuery := r.dialect.rebind(`
		INSERT INTO problem_examples (problem_id, input, output, explanation, sort_order)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)
	for i := range examples {
		examples[i].ProblemID = problem.ID
		e := &examples[i]
		if err := tx.QueryRowContext(ctx, exampleQuery, e.ProblemID, e.Input, e.Output, e.Explanation, e.Order).Scan(&e.ID); err != nil {
			return nil, fmt.Errorf("insert example for %s: %w", problem.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return problem, nil
}

func (r *ProblemRepository) UpdateProblem(ctx context.Context, problem *domain.Problem) error {
	problem.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	query := `
		UPDATE problems SET
			title = ?,
			slug = ?,
			description = ?,
			difficulty = ?,
			category = ?,
			tags = ?,
			success_rate = ?,
			is_premium = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, r.dialect.rebind(query), problem.Title, problem.Slug, problem.Description,
		string(problem.Difficulty), problem.Category, joinTags(problem.Tags), problem.SuccessRate,
		problem.IsPremium, problem.UpdatedAt.Format(time.RFC3339), problem.ID)
	return err
}

func (r *ProblemRepository) UpsertDailyChallenge(ctx context.Context, date time.Time, problem *domain.Problem) (*domain.DailyChallenge, error) {
	query := `
		INSERT INTO daily_challenges (date, problem_id)
		VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET
			problem_id = excluded.problem_id
		RETURNING id
	`
	challenge := &domain.DailyChallenge{Date: domain.Day(date), Problem: problem}
	err := r.db.QueryRowContext(ctx, r.dialect.rebind(query), challenge.Date.Format(domain.DateLayout), problem.ID).Scan(&challenge.ID)
	if err != nil {
		return nil, err
	}
	return challenge, nil
}

func (r *ProblemRepository) GetDailyChallenge(ctx context.Context, date time.Time) (*domain.DailyChallenge, error) {
	var challenge domain.DailyChallenge
	var problemID int64
	query := `SELECT id, problem_id FROM daily_challenges WHERE date = ?`
	err := r.db.QueryRowContext(ctx, r.dialect.rebind(query), domain.Day(date).Format(domain.DateLayout)).Scan(&challenge.ID, &problemID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	challenge.Date = domain.Day(date)
	challenge.Problem, err = r.findOne(ctx, `id = ?`, problemID)
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
