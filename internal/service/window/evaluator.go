package window

import (
	"time"

	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
)

// DefaultLookahead is how far on either side of a meal's start it counts as near.
const DefaultLookahead = time.Hour

type Evaluator struct {
	lookahead time.Duration
}

func NewEvaluator(lookahead time.Duration) *Evaluator {
	if lookahead <= 0 {
		lookahead = DefaultLookahead
	}
	return &Evaluator{lookahead: lookahead}
}

// FindNear returns the lowest index whose [start-lookahead, start+lookahead)
// window contains now. Windows do not wrap across midnight.
func (e *Evaluator) FindNear(slots []domain.MealSlot, now domain.TimeOfDay) (int, bool) {
	for i, slot := range slots {
		windowStart := slot.Start.Add(-e.lookahead)
		windowEnd := slot.Start.Add(e.lookahead)
		if windowStart <= now && now < windowEnd {
			return i, true
		}
	}
	return -1, false
}

func (e *Evaluator) Lookahead() time.Duration {
	return e.lookahead
}
