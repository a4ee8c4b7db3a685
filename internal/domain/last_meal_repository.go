package domain

import "context"

//go:generate mockgen -source=last_meal_repository.go -destination=last_meal_repository_mock.go -package=domain

// PersistedState is the single durable record shared across cycles.
type PersistedState struct {
	LastMealPosted *string `json:"lastMealPosted"`
}

type LastMealRepository interface {
	// GetLastMeal returns nil when no meal has been posted yet.
	GetLastMeal(ctx context.Context) (*string, error)
	SaveLastMeal(ctx context.Context, meal string) error
}
