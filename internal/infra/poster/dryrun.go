package poster

import (
	"context"
	"log/slog"
	"strconv"
	"sync/atomic"
)

// DryRun logs posts instead of sending them. Returned ids are synthetic so a
// thread still chains in the logs.
type DryRun struct {
	seq atomic.Int64
}

func NewDryRun() *DryRun {
	return &DryRun{}
}

func (d *DryRun) Publish(ctx context.Context, text, replyToID string) (string, error) {
	id := "dry-run-" + strconv.FormatInt(d.seq.Add(1), 10)

	slog.InfoContext(ctx, "dry run post",
		slog.String("post_id", id),
		slog.String("reply_to", replyToID),
		slog.String("text", text),
	)

	return id, nil
}
