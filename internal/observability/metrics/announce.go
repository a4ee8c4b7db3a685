package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	announceMeterName = "announce.service"
)

type AnnounceMetrics struct {
	cyclesTotal     metric.Int64Counter
	cyclesSkipped   metric.Int64Counter
	postsTotal      metric.Int64Counter
	itemsClassified metric.Int64Counter
	cycleDuration   metric.Float64Histogram
	fetchDuration   metric.Float64Histogram
}

func NewAnnounceMetrics() (*AnnounceMetrics, error) {
	meter := otel.Meter(announceMeterName)

	cyclesTotal, err := meter.Int64Counter(
		"announce_cycles_total",
		metric.WithDescription("Total number of completed polling cycles by outcome"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	cyclesSkipped, err := meter.Int64Counter(
		"announce_cycles_skipped_total",
		metric.WithDescription("Ticks skipped because a cycle was still running"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	postsTotal, err := meter.Int64Counter(
		"announce_posts_total",
		metric.WithDescription("Total number of publish attempts by outcome"),
		metric.WithUnit("{post}"),
	)
	if err != nil {
		return nil, err
	}

	itemsClassified, err := meter.Int64Counter(
		"announce_items_classified_total",
		metric.WithDescription("Menu items seen by the classifier by result"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, err
	}

	cycleDuration, err := meter.Float64Histogram(
		"announce_cycle_duration_seconds",
		metric.WithDescription("Polling cycle duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
		),
	)
	if err != nil {
		return nil, err
	}

	fetchDuration, err := meter.Float64Histogram(
		"announce_menu_fetch_duration_seconds",
		metric.WithDescription("Menu API request duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	return &AnnounceMetrics{
		cyclesTotal:     cyclesTotal,
		cyclesSkipped:   cyclesSkipped,
		postsTotal:      postsTotal,
		itemsClassified: itemsClassified,
		cycleDuration:   cycleDuration,
		fetchDuration:   fetchDuration,
	}, nil
}

func (m *AnnounceMetrics) RecordCycle(ctx context.Context, outcome string, duration time.Duration) {
	m.cyclesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
	m.cycleDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *AnnounceMetrics) RecordCycleSkipped(ctx context.Context, trigger string) {
	m.cyclesSkipped.Add(ctx, 1, metric.WithAttributes(
		attribute.String("trigger", trigger),
	))
}

func (m *AnnounceMetrics) RecordPost(ctx context.Context, kind, outcome string) {
	m.postsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}

func (m *AnnounceMetrics) RecordItemsClassified(ctx context.Context, included, excluded int) {
	m.itemsClassified.Add(ctx, int64(included), metric.WithAttributes(
		attribute.String("result", "included"),
	))
	m.itemsClassified.Add(ctx, int64(excluded), metric.WithAttributes(
		attribute.String("result", "excluded"),
	))
}

func (m *AnnounceMetrics) RecordFetchDuration(ctx context.Context, outcome string, duration time.Duration) {
	m.fetchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}
