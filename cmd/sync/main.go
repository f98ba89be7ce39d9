// Command sync pulls problems or today's daily challenge from LeetCode into the tracker database.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	walog "go.mau.fi/whatsmeow/util/log"
	"golang.org/x/time/rate"
	_ "modernc.org/sqlite"

	"github.com/fardannozami/leetcode-tracker/internal/app/usecase"
	"github.com/fardannozami/leetcode-tracker/internal/config"
	"github.com/fardannozami/leetcode-tracker/internal/domain"
	"github.com/fardannozami/leetcode-tracker/internal/infra/database"
	"github.com/fardannozami/leetcode-tracker/internal/infra/leetcode"
)

const usage = "usage: sync -all | -daily"

type problemSyncer interface {
	Execute(ctx context.Context) (int, error)
}

type dailySyncer interface {
	Execute(ctx context.Context, today time.Time) (*domain.DailyChallenge, error)
}

func main() {
	all := flag.Bool("all", false, "sync every problem from LeetCode")
	daily := flag.Bool("daily", false, "sync today's daily challenge")
	flag.Parse()

	if !*all && !*daily {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	logger := walog.Stdout("Sync", cfg.LogLevel, true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn := database.SQLiteDSN(cfg.SQLitePath)
	if cfg.DBDriver == "postgres" {
		dsn = cfg.DatabaseURL
	}
	db, dialect, err := database.Open(ctx, cfg.DBDriver, dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	problemRepo := database.NewProblemRepository(db, dialect)
	source := leetcode.NewClient(cfg.LeetCodeURL, cfg.LeetCodeTimeout, cfg.SyncPageSize, logger.Sub("LeetCode"))

	throttle := rate.NewLimiter(rate.Inf, 1)
	if cfg.SyncDelay > 0 {
		throttle = rate.NewLimiter(rate.Every(cfg.SyncDelay), 1)
	}

	code := 0
	if *all {
		code = runAll(ctx, usecase.NewSyncProblemsUsecase(source, problemRepo, throttle, logger), os.Stdout, os.Stderr)
	}
	if *daily && code == 0 {
		code = runDaily(ctx, usecase.NewSyncDailyChallengeUsecase(source, problemRepo, logger), cfg.Today(), os.Stdout, os.Stderr)
	}

	db.Close()
	stop()
	os.Exit(code)
}

func runAll(ctx context.Context, uc problemSyncer, stdout, stderr io.Writer) int {
	created, err := uc.Execute(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Problem sync failed after %d new problems: %v\n", created, err)
		return 1
	}
	fmt.Fprintf(stdout, "Successfully synced %d new problems\n", created)
	return 0
}

func runDaily(ctx context.Context, uc dailySyncer, today time.Time, stdout, stderr io.Writer) int {
	challenge, err := uc.Execute(ctx, today)
	switch {
	case err != nil:
		fmt.Fprintf(stderr, "Failed to sync daily challenge: %v\n", err)
		return 1
	case challenge == nil:
		fmt.Fprintln(stderr, "Failed to sync daily challenge")
		return 1
	}

	fmt.Fprintf(stdout, "Successfully synced daily challenge: %s for %s\n",
		challenge.Problem.Title, challenge.Date.Format(domain.DateLayout))
	return 0
}
