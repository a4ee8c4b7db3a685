package announce

import (
	"time"

	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/sequencer"
)

type Outcome string

const (
	OutcomeNoMealNear    Outcome = "no_meal_near"
	OutcomeAlreadyPosted Outcome = "already_posted"
	OutcomePosted        Outcome = "posted"
	OutcomeFetchFailed   Outcome = "fetch_failed"
)

func (o Outcome) String() string {
	return string(o)
}

type CycleResult struct {
	RunID       string            `json:"run_id"`
	Outcome     Outcome           `json:"outcome"`
	Now         time.Time         `json:"now"`
	Meal        string            `json:"meal,omitempty"`
	MealStart   string            `json:"meal_start,omitempty"`
	Thread      domain.Thread     `json:"thread,omitempty"`
	Celebration bool              `json:"celebration"`
	Publish     *sequencer.Result `json:"publish,omitempty"`
	Persisted   bool              `json:"persisted"`
	Duration    time.Duration     `json:"duration_ns"`
	Error       string            `json:"error,omitempty"`
}

// Options carries the per-deployment settings the cycle needs.
type Options struct {
	CafeID       string
	LocationName string
}
