//go:build gcloud

package threadrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/cafe-menu-thread/internal/config"
	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt   time.Time `bigquery:"recorded_at"`
	PostedAt     time.Time `bigquery:"posted_at"`
	RunID        string    `bigquery:"run_id"`
	CafeID       string    `bigquery:"cafe_id"`
	Meal         string    `bigquery:"meal"`
	MealStart    string    `bigquery:"meal_start"`
	PostCount    int64     `bigquery:"post_count"`
	SuccessCount int64     `bigquery:"success_count"`
	FailedCount  int64     `bigquery:"failed_count"`
	Celebration  bool      `bigquery:"celebration"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *config.RecordingConfig) (domain.ThreadResultRecorder, error) {
	if cfg == nil || cfg.Disabled {
		slog.InfoContext(ctx, "thread result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, thread result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, thread result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	inserter := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter()

	slog.InfoContext(ctx, "thread result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
	}, nil
}

func (r *bigQueryRecorder) RecordThread(ctx context.Context, record domain.ThreadResultRecord) error {
	row := &bigQueryRecord{
		RecordedAt:   time.Now(),
		PostedAt:     record.PostedAt,
		RunID:        record.RunID,
		CafeID:       record.CafeID,
		Meal:         record.Meal,
		MealStart:    record.MealStart.String(),
		PostCount:    int64(record.PostCount),
		SuccessCount: int64(record.SuccessCount),
		FailedCount:  int64(record.FailedCount),
		Celebration:  record.Celebration,
	}

	if err := r.inserter.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert thread result to BigQuery",
			slog.String("error", err.Error()),
			slog.String("meal", record.Meal),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
