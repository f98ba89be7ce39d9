package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// DialectFor maps a database/sql driver name to the SQL dialect it speaks.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "pq":
		return DialectPostgres, nil
	default:
		return 0, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open opens the database and makes sure the schema exists.
// The driver itself must be registered by the caller.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, 0, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, 0, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := InitSchema(ctx, db, dialect); err != nil {
		db.Close()
		return nil, 0, err
	}
	return db, dialect, nil
}

// SQLiteDSN enables WAL mode and a busy timeout to avoid "database is locked"
// errors while the chat device store shares the file.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
}

// rebind rewrites ? placeholders to $N for PostgreSQL.
// Queries in this package never contain a literal '?'.
func (d Dialect) rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (d Dialect) primaryKey() string {
	if d == DialectPostgres {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

func InitSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_activity (
			user_id TEXT NOT NULL,
			date TEXT NOT NULL,
			problems_solved INTEGER NOT NULL DEFAULT 0,
			easy_solved INTEGER NOT NULL DEFAULT 0,
			medium_solved INTEGER NOT NULL DEFAULT 0,
			hard_solved INTEGER NOT NULL DEFAULT 0,
			total_submissions INTEGER NOT NULL DEFAULT 0,
			streak_maintained BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (user_id, date)
		)`,
		`CREATE TABLE IF NOT EXISTS members (
			user_id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS problems (
			id ` + dialect.primaryKey() + `,
			external_id INTEGER NOT NULL UNIQUE,
			title TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '',
			success_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
			is_premium BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS problem_examples (
			id ` + dialect.primaryKey() + `,
			problem_id BIGINT NOT NULL REFERENCES problems(id) ON DELETE CASCADE,
			input TEXT NOT NULL,
			output TEXT NOT NULL DEFAULT '',
			explanation TEXT NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS daily_challenges (
			id ` + dialect.primaryKey() + `,
			date TEXT NOT NULL UNIQUE,
			problem_id BIGINT NOT NULL REFERENCES problems(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_problems_difficulty ON problems(difficulty)`,
		`CREATE INDEX IF NOT EXISTS idx_problem_examples_problem_id ON problem_examples(problem_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
