package window

import (
	"testing"
	"time"

	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
)

func at(h, m int) domain.TimeOfDay {
	return domain.TimeOfDay(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func slotsAt(starts ...domain.TimeOfDay) []domain.MealSlot {
	slots := make([]domain.MealSlot, 0, len(starts))
	for i, s := range starts {
		slots = append(slots, domain.MealSlot{
			Label: []string{"Breakfast", "Lunch", "Dinner", "Late Night"}[i%4],
			Start: s,
			End:   s.Add(2 * time.Hour),
		})
	}
	return slots
}

func TestEvaluator_FindNear(t *testing.T) {
	evaluator := NewEvaluator(time.Hour)
	daily := slotsAt(at(7, 0), at(11, 30), at(17, 0))

	tests := []struct {
		name      string
		slots     []domain.MealSlot
		now       domain.TimeOfDay
		wantIndex int
		wantFound bool
	}{
		{
			name:      "45 minutes before lunch selects lunch",
			slots:     daily,
			now:       at(10, 45),
			wantIndex: 1,
			wantFound: true,
		},
		{
			name:      "exactly one hour before start is inside",
			slots:     daily,
			now:       at(6, 0),
			wantIndex: 0,
			wantFound: true,
		},
		{
			name:      "exactly one hour after start is outside",
			slots:     daily,
			now:       at(18, 0),
			wantIndex: -1,
			wantFound: false,
		},
		{
			name:      "just after start is still near",
			slots:     daily,
			now:       at(17, 59),
			wantIndex: 2,
			wantFound: true,
		},
		{
			name:      "gap between meals",
			slots:     daily,
			now:       at(9, 0),
			wantIndex: -1,
			wantFound: false,
		},
		{
			name:      "overlapping windows pick lowest index",
			slots:     slotsAt(at(11, 0), at(11, 30)),
			now:       at(11, 15),
			wantIndex: 0,
			wantFound: true,
		},
		{
			name:      "empty slot list",
			slots:     nil,
			now:       at(12, 0),
			wantIndex: -1,
			wantFound: false,
		},
		{
			name:      "no wrap across midnight",
			slots:     slotsAt(at(0, 15)),
			now:       at(23, 45),
			wantIndex: -1,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotIndex, gotFound := evaluator.FindNear(tt.slots, tt.now)
			if gotIndex != tt.wantIndex || gotFound != tt.wantFound {
				t.Errorf("FindNear() = (%d, %v), want (%d, %v)", gotIndex, gotFound, tt.wantIndex, tt.wantFound)
			}
		})
	}
}

func TestEvaluator_CustomLookahead(t *testing.T) {
	evaluator := NewEvaluator(30 * time.Minute)
	slots := slotsAt(at(11, 30))

	if _, found := evaluator.FindNear(slots, at(10, 45)); found {
		t.Error("expected 10:45 to be outside a 30 minute lookahead")
	}
	if idx, found := evaluator.FindNear(slots, at(11, 0)); !found || idx != 0 {
		t.Errorf("expected 11:00 to select index 0, got (%d, %v)", idx, found)
	}
}

func TestNewEvaluator_DefaultsNonPositiveLookahead(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Minute} {
		if got := NewEvaluator(d).Lookahead(); got != DefaultLookahead {
			t.Errorf("NewEvaluator(%v).Lookahead() = %v, want %v", d, got, DefaultLookahead)
		}
	}
}
