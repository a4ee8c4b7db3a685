package announce

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
	"github.com/KasumiMercury/cafe-menu-thread/internal/observability/logging"
	"github.com/KasumiMercury/cafe-menu-thread/internal/observability/metrics"
	"github.com/KasumiMercury/cafe-menu-thread/internal/observability/tracing"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/classifier"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/formatter"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/guard"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/sequencer"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/window"
)

type Service struct {
	opts           Options
	menuSource     domain.MenuSource
	evaluator      *window.Evaluator
	classifier     *classifier.Classifier
	formatter      *formatter.Formatter
	guard          *guard.Guard
	sequencer      *sequencer.Sequencer
	clock          domain.Clock
	resultRecorder domain.ThreadResultRecorder
	metrics        *metrics.AnnounceMetrics
}

func NewService(
	opts Options,
	menuSource domain.MenuSource,
	evaluator *window.Evaluator,
	itemClassifier *classifier.Classifier,
	menuFormatter *formatter.Formatter,
	mealGuard *guard.Guard,
	postSequencer *sequencer.Sequencer,
	clock domain.Clock,
	resultRecorder domain.ThreadResultRecorder,
	announceMetrics *metrics.AnnounceMetrics,
) *Service {
	return &Service{
		opts:           opts,
		menuSource:     menuSource,
		evaluator:      evaluator,
		classifier:     itemClassifier,
		formatter:      menuFormatter,
		guard:          mealGuard,
		sequencer:      postSequencer,
		clock:          clock,
		resultRecorder: resultRecorder,
		metrics:        announceMetrics,
	}
}

func (s *Service) RunCycle(ctx context.Context) (*CycleResult, error) {
	return s.RunCycleAt(ctx, s.clock.Now())
}

// RunCycleAt runs one fetch, evaluate, post and persist pass as if the wall
// clock read now. A request id already on ctx is reused as the run id.
func (s *Service) RunCycleAt(ctx context.Context, now time.Time) (*CycleResult, error) {
	startTime := time.Now()

	runID := logging.RequestIDFromContext(ctx)
	if _, err := uuid.Parse(runID); err != nil {
		runID = uuid.NewString()
	}
	ctx = logging.WithRequestID(ctx, runID)

	ctx, span := tracing.StartCycleSpan(ctx, runID, s.opts.CafeID)
	defer span.End()

	result := &CycleResult{
		RunID: runID,
		Now:   now,
	}

	err := s.run(ctx, now, result)

	result.Duration = time.Since(startTime)
	if err != nil {
		result.Error = err.Error()
	}

	failed := 0
	if result.Publish != nil {
		failed = result.Publish.FailedCount
	}
	tracing.RecordCycleResult(span, result.Outcome.String(), result.Meal, len(result.Thread), failed, err)
	if s.metrics != nil {
		s.metrics.RecordCycle(ctx, result.Outcome.String(), result.Duration)
	}

	slog.InfoContext(ctx, "cycle finished",
		slog.String("run_id", runID),
		slog.String("outcome", result.Outcome.String()),
		slog.String("meal", result.Meal),
		slog.Int("post_count", len(result.Thread)),
		slog.Bool("persisted", result.Persisted),
		slog.Duration("duration", result.Duration),
	)

	return result, err
}

func (s *Service) run(ctx context.Context, now time.Time, result *CycleResult) error {
	slots, items, err := s.fetchSlots(ctx)
	if err != nil {
		result.Outcome = OutcomeFetchFailed
		return err
	}

	idx, ok := s.evaluator.FindNear(slots, domain.TimeOfDayOf(now))
	if !ok {
		slog.DebugContext(ctx, "no meal near",
			slog.String("time_of_day", domain.TimeOfDayOf(now).String()),
			slog.Int("slot_count", len(slots)),
		)
		result.Outcome = OutcomeNoMealNear
		return nil
	}

	meal := slots[idx]
	result.Meal = meal.Label
	result.MealStart = meal.Start.String()

	slog.InfoContext(ctx, "meal near",
		slog.String("meal", meal.Label),
		slog.String("start", meal.Start.String()),
		slog.Int("slot_index", idx),
	)

	thread := s.format(ctx, now, meal, items)

	if !s.guard.Check(ctx, meal.Label) {
		result.Outcome = OutcomeAlreadyPosted
		return nil
	}

	result.Thread = thread
	result.Celebration = s.formatter.Celebrates(thread)
	result.Outcome = OutcomePosted

	published := s.sequencer.Publish(ctx, thread)
	result.Publish = &published

	s.record(ctx, result, meal, now)

	// The meal is marked once its thread was attempted, even if every post
	// failed, so a rejecting endpoint is not hit again each tick.
	persistErr := s.guard.Remember(ctx, meal.Label)
	result.Persisted = persistErr == nil

	if published.SuccessCount == 0 {
		slog.WarnContext(ctx, "no post succeeded",
			slog.String("meal", meal.Label),
			slog.Int("failed_count", published.FailedCount),
		)
		return errors.Join(fmt.Errorf("%w: all %d posts failed", domain.ErrPublish, published.PostCount), persistErr)
	}

	return persistErr
}

func (s *Service) fetchSlots(ctx context.Context) ([]domain.MealSlot, map[string]domain.Item, error) {
	fetchStart := time.Now()
	menu, err := s.menuSource.FetchMenu(ctx, s.opts.CafeID)
	fetchOutcome := "success"
	if err != nil {
		fetchOutcome = "failed"
	}
	if s.metrics != nil {
		s.metrics.RecordFetchDuration(ctx, fetchOutcome, time.Since(fetchStart))
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch menu",
			slog.String("cafe_id", s.opts.CafeID),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}

	cafe, err := menu.Cafe(s.opts.CafeID)
	if err != nil {
		slog.ErrorContext(ctx, "menu has no entry for cafe",
			slog.String("cafe_id", s.opts.CafeID),
			slog.String("error", err.Error()),
		)
		return nil, nil, errors.Join(domain.ErrParse, err)
	}

	slots, err := cafe.MealSlots()
	if err != nil {
		slog.ErrorContext(ctx, "cafe has no meal slots",
			slog.String("cafe_id", s.opts.CafeID),
			slog.String("error", err.Error()),
		)
		return nil, nil, errors.Join(domain.ErrParse, err)
	}

	return slots, menu.Items, nil
}

func (s *Service) format(ctx context.Context, now time.Time, meal domain.MealSlot, items map[string]domain.Item) domain.Thread {
	stations := make([]formatter.StationItems, 0, len(meal.Stations))
	included, seen := 0, 0

	for _, station := range meal.Stations {
		classified := s.classifier.ClassifyStation(ctx, station, items)
		seen += len(station.ItemKeys)
		included += len(classified)
		stations = append(stations, formatter.StationItems{
			Label: station.Label,
			Items: classified,
		})
	}

	if s.metrics != nil {
		s.metrics.RecordItemsClassified(ctx, included, seen-included)
	}

	return s.formatter.Format(formatter.Input{
		LocationName: s.opts.LocationName,
		MealLabel:    meal.Label,
		Date:         now,
		Stations:     stations,
	})
}

func (s *Service) record(ctx context.Context, result *CycleResult, meal domain.MealSlot, now time.Time) {
	if s.resultRecorder == nil || result.Publish == nil {
		return
	}

	err := s.resultRecorder.RecordThread(ctx, domain.ThreadResultRecord{
		RunID:        result.RunID,
		CafeID:       s.opts.CafeID,
		Meal:         meal.Label,
		MealStart:    meal.Start,
		PostedAt:     now,
		PostCount:    result.Publish.PostCount,
		SuccessCount: result.Publish.SuccessCount,
		FailedCount:  result.Publish.FailedCount,
		Celebration:  result.Celebration,
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to record thread result",
			slog.String("error", err.Error()),
		)
	}
}
