package sequencer

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/cafe-menu-thread/internal/config"
	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
	"github.com/KasumiMercury/cafe-menu-thread/internal/observability/metrics"
	"github.com/KasumiMercury/cafe-menu-thread/internal/observability/tracing"
)

type Sequencer struct {
	publisher domain.Publisher
	policy    config.ThreadFailurePolicy
	metrics   *metrics.AnnounceMetrics
}

func NewSequencer(publisher domain.Publisher, policy config.ThreadFailurePolicy, announceMetrics *metrics.AnnounceMetrics) *Sequencer {
	if policy == "" {
		policy = config.ThreadFailureContinue
	}
	return &Sequencer{
		publisher: publisher,
		policy:    policy,
		metrics:   announceMetrics,
	}
}

// Publish posts the thread in order. Each post replies to the most recent
// post that succeeded; the first one replies to nothing. Under the continue
// policy a failure is recorded and the chain goes on.
func (s *Sequencer) Publish(ctx context.Context, thread domain.Thread) Result {
	result := Result{
		PostCount: len(thread),
		Posts:     make([]PostResult, 0, len(thread)),
	}

	lastID := ""
	for i, text := range thread {
		if result.Aborted {
			result.Posts = append(result.Posts, PostResult{Index: i, Skipped: true})
			result.SkippedCount++
			continue
		}

		kind := "reply"
		if i == 0 {
			kind = "header"
		}

		pr := PostResult{Index: i, ReplyToID: lastID}

		postCtx, span := tracing.StartPublishSpan(ctx, i, lastID)
		id, err := s.publisher.Publish(postCtx, text, lastID)
		tracing.RecordPublishResult(span, id, err)
		span.End()

		if err != nil {
			slog.ErrorContext(ctx, "failed to publish post",
				slog.Int("index", i),
				slog.String("reply_to", lastID),
				slog.String("error", err.Error()),
			)
			pr.Error = err.Error()
			result.FailedCount++
			if s.metrics != nil {
				s.metrics.RecordPost(ctx, kind, "failed")
			}
			if s.policy == config.ThreadFailureAbort {
				result.Aborted = true
			}
			result.Posts = append(result.Posts, pr)
			continue
		}

		slog.DebugContext(ctx, "published post",
			slog.Int("index", i),
			slog.String("post_id", id),
			slog.String("reply_to", lastID),
		)
		pr.PostID = id
		pr.Success = true
		result.SuccessCount++
		if s.metrics != nil {
			s.metrics.RecordPost(ctx, kind, "success")
		}
		result.Posts = append(result.Posts, pr)

		lastID = id
	}

	return result
}
