package guard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
)

// ShouldPost reports whether candidate differs from the last announced meal.
// Only one meal is remembered, so a label repeats once another meal has been
// announced in between.
func ShouldPost(last *string, candidate string) bool {
	return last == nil || *last != candidate
}

type Guard struct {
	repo domain.LastMealRepository
}

func NewGuard(repo domain.LastMealRepository) *Guard {
	return &Guard{repo: repo}
}

// Check loads the last announced meal and applies ShouldPost. A failed read
// counts as nothing announced yet.
func (g *Guard) Check(ctx context.Context, candidate string) bool {
	last, err := g.repo.GetLastMeal(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to read last meal, treating as empty",
			slog.String("candidate", candidate),
			slog.String("error", err.Error()),
		)
		last = nil
	}

	should := ShouldPost(last, candidate)
	if !should {
		slog.DebugContext(ctx, "meal already announced",
			slog.String("meal", candidate),
		)
	}
	return should
}

// Remember replaces the stored value with candidate. Failures are logged and
// returned; there is no retry.
func (g *Guard) Remember(ctx context.Context, candidate string) error {
	if err := g.repo.SaveLastMeal(ctx, candidate); err != nil {
		slog.ErrorContext(ctx, "failed to persist last meal",
			slog.String("meal", candidate),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}
