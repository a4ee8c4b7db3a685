package announce

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/cafe-menu-thread/internal/config"
	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
	"github.com/KasumiMercury/cafe-menu-thread/internal/observability/logging"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/classifier"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/formatter"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/guard"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/sequencer"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/window"
	"github.com/KasumiMercury/cafe-menu-thread/internal/testutil"
)

func at(h, m int) time.Time {
	return time.Date(2026, 10, 19, h, m, 0, 0, time.UTC)
}

type fixture struct {
	menuSource *domain.MockMenuSource
	publisher  *domain.MockPublisher
	repo       *domain.MockLastMealRepository
	recorder   *recordingRecorder
	service    *Service
}

// recordingRecorder keeps every record it is given.
type recordingRecorder struct {
	records []domain.ThreadResultRecord
}

func (r *recordingRecorder) RecordThread(_ context.Context, record domain.ThreadResultRecord) error {
	r.records = append(r.records, record)
	return nil
}

func (r *recordingRecorder) Close() error {
	return nil
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		menuSource: domain.NewMockMenuSource(ctrl),
		publisher:  domain.NewMockPublisher(ctrl),
		repo:       domain.NewMockLastMealRepository(ctrl),
		recorder:   &recordingRecorder{},
	}

	f.service = NewService(
		Options{CafeID: testutil.CommonsCafeID, LocationName: "Commons"},
		f.menuSource,
		window.NewEvaluator(time.Hour),
		classifier.NewClassifier(),
		formatter.NewFormatter(formatter.Options{
			TriggerPhrase:     "Chicken Tenders",
			CelebrationSuffix: "🎉 TENDIES DAY 🎉",
			MaxRunes:          280,
		}),
		guard.NewGuard(f.repo),
		sequencer.NewSequencer(f.publisher, config.ThreadFailureContinue, nil),
		domain.FixedClock{T: now},
		f.recorder,
		nil,
	)

	return f
}

func TestRunCycle_PostsNearMeal(t *testing.T) {
	f := newFixture(t, at(10, 45))
	ctx := context.Background()

	f.menuSource.EXPECT().FetchMenu(gomock.Any(), testutil.CommonsCafeID).Return(testutil.LunchMenuFixture(), nil)
	f.repo.EXPECT().GetLastMeal(gomock.Any()).Return(nil, nil)
	gomock.InOrder(
		f.publisher.EXPECT().Publish(gomock.Any(), "Commons Lunch Monday, October 19", "").Return("100", nil),
		f.publisher.EXPECT().Publish(gomock.Any(), "🍔 grill\nBlack Bean Burger (vegan)", "100").Return("101", nil),
	)
	f.repo.EXPECT().SaveLastMeal(gomock.Any(), "Lunch").Return(nil)

	result, err := f.service.RunCycle(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Outcome != OutcomePosted {
		t.Errorf("Outcome = %s, want %s", result.Outcome, OutcomePosted)
	}
	if len(result.Thread) != 2 {
		t.Errorf("expected exactly 2 texts, got %d: %q", len(result.Thread), result.Thread)
	}
	if !result.Persisted {
		t.Error("expected meal to be persisted")
	}
	if result.Meal != "Lunch" || result.MealStart != "11:30" {
		t.Errorf("unexpected meal %q at %q", result.Meal, result.MealStart)
	}
	if result.RunID == "" {
		t.Error("expected a run id")
	}

	if len(f.recorder.records) != 1 {
		t.Fatalf("expected one recorded thread, got %d", len(f.recorder.records))
	}
	rec := f.recorder.records[0]
	if rec.Meal != "Lunch" || rec.SuccessCount != 2 || rec.RunID != result.RunID {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestRunCycle_Outcomes(t *testing.T) {
	lunch := "Lunch"

	tests := []struct {
		name          string
		now           time.Time
		setup         func(f *fixture)
		wantOutcome   Outcome
		wantErr       error
		wantPersisted bool
	}{
		{
			name: "no meal near",
			now:  at(9, 0),
			setup: func(f *fixture) {
				f.menuSource.EXPECT().FetchMenu(gomock.Any(), gomock.Any()).Return(testutil.LunchMenuFixture(), nil)
			},
			wantOutcome: OutcomeNoMealNear,
		},
		{
			name: "already posted",
			now:  at(11, 50),
			setup: func(f *fixture) {
				f.menuSource.EXPECT().FetchMenu(gomock.Any(), gomock.Any()).Return(testutil.LunchMenuFixture(), nil)
				f.repo.EXPECT().GetLastMeal(gomock.Any()).Return(&lunch, nil)
			},
			wantOutcome: OutcomeAlreadyPosted,
		},
		{
			name: "fetch failed",
			now:  at(10, 45),
			setup: func(f *fixture) {
				f.menuSource.EXPECT().FetchMenu(gomock.Any(), gomock.Any()).
					Return(nil, errors.Join(domain.ErrFetch, errors.New("connection refused")))
			},
			wantOutcome: OutcomeFetchFailed,
			wantErr:     domain.ErrFetch,
		},
		{
			name: "cafe missing from menu",
			now:  at(10, 45),
			setup: func(f *fixture) {
				f.menuSource.EXPECT().FetchMenu(gomock.Any(), gomock.Any()).Return(&domain.MenuResponse{}, nil)
			},
			wantOutcome: OutcomeFetchFailed,
			wantErr:     domain.ErrCafeNotFound,
		},
		{
			name: "every post failed still marks meal",
			now:  at(10, 45),
			setup: func(f *fixture) {
				f.menuSource.EXPECT().FetchMenu(gomock.Any(), gomock.Any()).Return(testutil.LunchMenuFixture(), nil)
				f.repo.EXPECT().GetLastMeal(gomock.Any()).Return(nil, nil)
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), "").
					Return("", domain.ErrPublish).Times(2)
				f.repo.EXPECT().SaveLastMeal(gomock.Any(), "Lunch").Return(nil)
			},
			wantOutcome:   OutcomePosted,
			wantErr:       domain.ErrPublish,
			wantPersisted: true,
		},
		{
			name: "persist failure is reported",
			now:  at(16, 30),
			setup: func(f *fixture) {
				f.menuSource.EXPECT().FetchMenu(gomock.Any(), gomock.Any()).Return(testutil.LunchMenuFixture(), nil)
				f.repo.EXPECT().GetLastMeal(gomock.Any()).Return(&lunch, nil)
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return("1", nil).Times(2)
				f.repo.EXPECT().SaveLastMeal(gomock.Any(), "Dinner").Return(errors.New("disk full"))
			},
			wantOutcome: OutcomePosted,
			wantErr:     domain.ErrPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.now)
			tt.setup(f)

			result, err := f.service.RunCycle(context.Background())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result == nil {
				t.Fatal("expected a result")
			}
			if result.Outcome != tt.wantOutcome {
				t.Errorf("Outcome = %s, want %s", result.Outcome, tt.wantOutcome)
			}
			if result.Persisted != tt.wantPersisted {
				t.Errorf("Persisted = %v, want %v", result.Persisted, tt.wantPersisted)
			}
		})
	}
}

func TestRunCycle_CelebratesTriggerPhrase(t *testing.T) {
	f := newFixture(t, at(16, 30))

	f.menuSource.EXPECT().FetchMenu(gomock.Any(), gomock.Any()).Return(testutil.LunchMenuFixture(), nil)
	f.repo.EXPECT().GetLastMeal(gomock.Any()).Return(nil, nil)
	gomock.InOrder(
		f.publisher.EXPECT().Publish(gomock.Any(), "Commons Dinner Monday, October 19 🎉 TENDIES DAY 🎉", "").Return("1", nil),
		f.publisher.EXPECT().Publish(gomock.Any(), "fry station\nChicken Tenders", "1").Return("2", nil),
	)
	f.repo.EXPECT().SaveLastMeal(gomock.Any(), "Dinner").Return(nil)

	result, err := f.service.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Celebration {
		t.Error("expected celebration")
	}
	if !f.recorder.records[0].Celebration {
		t.Error("expected recorded celebration")
	}
}

func TestRunCycleAt_UsesVirtualTimeAndRequestID(t *testing.T) {
	f := newFixture(t, at(3, 0))

	f.menuSource.EXPECT().FetchMenu(gomock.Any(), gomock.Any()).Return(testutil.LunchMenuFixture(), nil)
	f.repo.EXPECT().GetLastMeal(gomock.Any()).Return(nil, nil)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return("1", nil).Times(2)
	f.repo.EXPECT().SaveLastMeal(gomock.Any(), "Breakfast").Return(nil)

	const runID = "5b0c1c7e-1f38-4c39-9d07-4a8c2f1a9e11"
	ctx := logging.WithRequestID(context.Background(), runID)

	result, err := f.service.RunCycleAt(ctx, at(6, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Meal != "Breakfast" {
		t.Errorf("Meal = %q, want Breakfast", result.Meal)
	}
	if result.RunID != runID {
		t.Errorf("RunID = %q, want %q", result.RunID, runID)
	}
}
