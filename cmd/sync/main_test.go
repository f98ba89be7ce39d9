package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fardannozami/leetcode-tracker/internal/domain"
)

type fakeProblemSyncer struct {
	created int
	err     error
}

func (f fakeProblemSyncer) Execute(ctx context.Context) (int, error) {
	return f.created, f.err
}

type fakeDailySyncer struct {
	challenge *domain.DailyChallenge
	err       error
}

func (f fakeDailySyncer) Execute(ctx context.Context, today time.Time) (*domain.DailyChallenge, error) {
	return f.challenge, f.err
}

var today = time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)

func TestRunAll(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runAll(context.Background(), fakeProblemSyncer{created: 42}, &stdout, &stderr)

	if code != 0 {
		t.Errorf("Expected exit 0, got %d", code)
	}
	if got := stdout.String(); got != "Successfully synced 42 new problems\n" {
		t.Errorf("Unexpected output %q", got)
	}
}

func TestRunAll_Failure(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runAll(context.Background(), fakeProblemSyncer{created: 3, err: errors.New("disk full")}, &stdout, &stderr)

	if code != 1 {
		t.Errorf("Expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "disk full") {
		t.Errorf("Expected reason in stderr, got %q", stderr.String())
	}
}

func TestRunDaily(t *testing.T) {
	var stdout, stderr bytes.Buffer
	challenge := &domain.DailyChallenge{Date: today, Problem: &domain.Problem{Title: "Two Sum"}}
	code := runDaily(context.Background(), fakeDailySyncer{challenge: challenge}, today, &stdout, &stderr)

	if code != 0 {
		t.Errorf("Expected exit 0, got %d", code)
	}
	if got := stdout.String(); got != "Successfully synced daily challenge: Two Sum for 2024-03-13\n" {
		t.Errorf("Unexpected output %q", got)
	}
}

func TestRunDaily_NoData(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runDaily(context.Background(), fakeDailySyncer{}, today, &stdout, &stderr)

	if code != 1 {
		t.Errorf("Expected exit 1, got %d", code)
	}
	if got := stderr.String(); got != "Failed to sync daily challenge\n" {
		t.Errorf("Unexpected output %q", got)
	}
}

func TestRunDaily_InvalidDate(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := fmt.Errorf("%w: %q", domain.ErrInvalidChallengeDate, "13/03/2024")
	code := runDaily(context.Background(), fakeDailySyncer{err: err}, today, &stdout, &stderr)

	if code != 1 {
		t.Errorf("Expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "13/03/2024") {
		t.Errorf("Expected reason in stderr, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected no success output, got %q", stdout.String())
	}
}
