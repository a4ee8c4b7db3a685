//go:build !gcloud

package threadrecorder

import (
	"context"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/KasumiMercury/cafe-menu-thread/internal/config"
	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
)

const threadMeasurement = "thread_result"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

func NewRecorder(ctx context.Context, cfg *config.RecordingConfig) (domain.ThreadResultRecorder, error) {
	if cfg == nil || cfg.Disabled {
		slog.InfoContext(ctx, "thread result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, thread result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "thread result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
	}, nil
}

// RecordThread writes one point per announced thread. Write failures are
// logged and swallowed so recording never fails a cycle.
func (r *influxDBRecorder) RecordThread(ctx context.Context, record domain.ThreadResultRecord) error {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	point := influxdb2.NewPoint(
		threadMeasurement,
		map[string]string{
			"run_id":  runID,
			"cafe_id": record.CafeID,
			"meal":    record.Meal,
		},
		map[string]any{
			"meal_start":    record.MealStart.String(),
			"post_count":    record.PostCount,
			"success_count": record.SuccessCount,
			"failed_count":  record.FailedCount,
			"celebration":   record.Celebration,
		},
		record.PostedAt,
	)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		slog.WarnContext(ctx, "failed to write thread result to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("meal", record.Meal),
			slog.String("run_id", runID),
		)
	}

	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
