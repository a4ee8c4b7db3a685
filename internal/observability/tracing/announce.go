package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const announceTracerName = "github.com/KasumiMercury/cafe-menu-thread/internal/service/announce"

func AnnounceTracer() trace.Tracer {
	return otel.Tracer(announceTracerName)
}

func StartCycleSpan(ctx context.Context, runID, cafeID string) (context.Context, trace.Span) {
	return AnnounceTracer().Start(ctx, "announce.cycle",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.String("cafe.id", cafeID),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return AnnounceTracer().Start(ctx, "announce.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartPublishSpan(ctx context.Context, index int, replyToID string) (context.Context, trace.Span) {
	return AnnounceTracer().Start(ctx, "announce.publish",
		trace.WithAttributes(
			attribute.Int("post.index", index),
			attribute.Bool("post.is_reply", replyToID != ""),
			attribute.String("post.reply_to", replyToID),
		),
	)
}

func RecordCycleResult(span trace.Span, outcome, meal string, postCount, failedCount int, err error) {
	span.SetAttributes(
		attribute.String("cycle.outcome", outcome),
		attribute.String("cycle.meal", meal),
		attribute.Int("cycle.post_count", postCount),
		attribute.Int("cycle.failed_count", failedCount),
	)
	RecordError(span, err)
}

func RecordPublishResult(span trace.Span, postID string, err error) {
	if postID != "" {
		span.SetAttributes(attribute.String("post.id", postID))
	}
	RecordError(span, err)
}

func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

// InjectToHTTPRequest propagates the span in ctx to an outgoing request.
func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}
