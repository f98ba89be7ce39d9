package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/fardannozami/leetcode-tracker/internal/domain"
)

type ActivityRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewActivityRepository(db *sql.DB, dialect Dialect) *ActivityRepository {
	return &ActivityRepository{db: db, dialect: dialect}
}

const activityColumns = `user_id, date, problems_solved, easy_solved, medium_solved, hard_solved, total_submissions, streak_maintained`

func (r *ActivityRepository) FindActivity(ctx context.Context, userID string, date time.Time) (*domain.ActivityRecord, error) {
	query := `SELECT ` + activityColumns + ` FROM daily_activity WHERE user_id = ? AND date = ?`
	row := r.db.QueryRowContext(ctx, r.dialect.rebind(query), userID, domain.Day(date).Format(domain.DateLayout))

	var record domain.ActivityRecord
	var day string
	err := row.Scan(&record.UserID, &day, &record.ProblemsSolved, &record.EasySolved, &record.MediumSolved,
		&record.HardSolved, &record.TotalSubmissions, &record.StreakMaintained)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	record.Date, err = domain.ParseDay(day)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *ActivityRepository) UpsertActivity(ctx context.Context, record *domain.ActivityRecord) error {
	query := `
		INSERT INTO daily_activity (` + activityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			problems_solved = excluded.problems_solved,
			easy_solved = excluded.easy_solved,
			medium_solved = excluded.medium_solved,
			hard_solved = excluded.hard_solved,
			total_submissions = excluded.total_submissions,
			streak_maintained = excluded.streak_maintained
	`
	_, err := r.db.ExecContext(ctx, r.dialect.rebind(query), record.UserID, domain.Day(record.Date).Format(domain.DateLayout),
		record.ProblemsSolved, record.EasySolved, record.MediumSolved, record.HardSolved,
		record.TotalSubmissions, record.StreakMaintained)
	return err
}

func (r *ActivityRepository) IncrementActivity(ctx context.Context, userID string, date time.Time, difficulty domain.Difficulty, streakMaintained bool) (*domain.ActivityRecord, error) {
	var easy, medium, hard int
	switch difficulty {
	case domain.DifficultyEasy:
		easy = 1
	case domain.DifficultyMedium:
		medium = 1
	case domain.DifficultyHard:
		hard = 1
	}

	query := `
		INSERT INTO daily_activity (` + activityColumns + `)
		VALUES (?, ?, 1, ?, ?, ?, 1, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			problems_solved = daily_activity.problems_solved + 1,
			easy_solved = daily_activity.easy_solved + excluded.easy_solved,
			medium_solved = daily_activity.medium_solved + excluded.medium_solved,
			hard_solved = daily_activity.hard_solved + excluded.hard_solved,
			total_submissions = daily_activity.total_submissions + 1,
			streak_maintained = excluded.streak_maintained
		RETURNING problems_solved, easy_solved, medium_solved, hard_solved, total_submissions, streak_maintained
	`
	day := domain.Day(date)
	record := domain.ActivityRecord{UserID: userID, Date: day}
	err := r.db.QueryRowContext(ctx, r.dialect.rebind(query), userID, day.Format(domain.DateLayout),
		easy, medium, hard, streakMaintained).
		Scan(&record.ProblemsSolved, &record.EasySolved, &record.MediumSolved, &record.HardSolved,
			&record.TotalSubmissions, &record.StreakMaintained)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ActivityRepository) SumActivity(ctx context.Context, userID string, from time.Time) (domain.ActivityTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(problems_solved), 0),
			COALESCE(SUM(easy_solved), 0),
			COALESCE(SUM(medium_solved), 0),
			COALESCE(SUM(hard_solved), 0),
			COUNT(*)
		FROM daily_activity
		WHERE user_id = ?`
	args := []any{userID}
	if !from.IsZero() {
		query += ` AND date >= ?`
		args = append(args, domain.Day(from).Format(domain.DateLayout))
	}

	var totals domain.ActivityTotals
	err := r.db.QueryRowContext(ctx, r.dialect.rebind(query), args...).
		Scan(&totals.Problems, &totals.Easy, &totals.Medium, &totals.Hard, &totals.Days)
	return totals, err
}

func (r *ActivityRepository) SaveMember(ctx context.Context, member domain.Member) error {
	query := `
		INSERT INTO members (user_id, name) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET name = excluded.name
	`
	_, err := r.db.ExecContext(ctx, r.dialect.rebind(query), member.UserID, member.Name)
	return err
}

func (r *ActivityRepository) TotalsSince(ctx context.Context, from time.Time) ([]domain.LeaderboardEntry, error) {
	query := `
		SELECT
			m.user_id,
			m.name,
			COALESCE(SUM(a.problems_solved), 0) AS problems,
			COALESCE(SUM(a.easy_solved), 0) AS easy,
			COALESCE(SUM(a.medium_solved), 0) AS medium,
			COALESCE(SUM(a.hard_solved), 0) AS hard,
			COUNT(a.user_id) AS days
		FROM members AS m
		LEFT JOIN daily_activity AS a
		ON a.user_id = m.user_id AND a.date >= ?
		GROUP BY m.user_id, m.name
		ORDER BY problems DESC, hard DESC, medium DESC, m.name ASC`
	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(query), domain.Day(from).Format(domain.DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.Problems, &e.Easy, &e.Medium, &e.Hard, &e.Days); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ResolveLIDToPhone maps a WhatsApp LID to the phone number recorded by the
// device store. The input is returned unchanged when no mapping is known.
func (r *ActivityRepository) ResolveLIDToPhone(ctx context.Context, lid string) string {
	var pn string
	err := r.db.QueryRowContext(ctx, r.dialect.rebind(`SELECT pn FROM whatsmeow_lid_map WHERE lid = ?`), lid).Scan(&pn)
	if err != nil || pn == "" {
		return lid
	}
	return pn
}
