package domain

import (
	"context"
	"time"
)

type ThreadResultRecord struct {
	RunID        string
	CafeID       string
	Meal         string
	MealStart    TimeOfDay
	PostedAt     time.Time
	PostCount    int
	SuccessCount int
	FailedCount  int
	Celebration  bool
}

type ThreadResultRecorder interface {
	RecordThread(ctx context.Context, record ThreadResultRecord) error
	Close() error
}
