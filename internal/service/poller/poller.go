package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/KasumiMercury/cafe-menu-thread/internal/observability/metrics"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/announce"
)

const (
	TriggerTimer  = "timer"
	TriggerManual = "manual"
)

var ErrBusy = errors.New("cycle already running")

type CycleRunner interface {
	RunCycle(ctx context.Context) (*announce.CycleResult, error)
	RunCycleAt(ctx context.Context, now time.Time) (*announce.CycleResult, error)
}

// LastCycle describes the most recent finished cycle.
type LastCycle struct {
	Trigger    string                `json:"trigger"`
	FinishedAt time.Time             `json:"finished_at"`
	Result     *announce.CycleResult `json:"result,omitempty"`
	Error      string                `json:"error,omitempty"`
}

// Poller runs cycles on a fixed interval. At most one cycle runs at a time;
// a trigger that finds one running is dropped.
type Poller struct {
	runner       CycleRunner
	interval     time.Duration
	cycleTimeout time.Duration
	metrics      *metrics.AnnounceMetrics

	busy atomic.Bool

	mu   sync.RWMutex
	last *LastCycle
}

func NewPoller(runner CycleRunner, interval, cycleTimeout time.Duration, announceMetrics *metrics.AnnounceMetrics) *Poller {
	return &Poller{
		runner:       runner,
		interval:     interval,
		cycleTimeout: cycleTimeout,
		metrics:      announceMetrics,
	}
}

// Run blocks until ctx is cancelled. The first cycle starts immediately.
func (p *Poller) Run(ctx context.Context) {
	slog.InfoContext(ctx, "poller started",
		slog.Duration("interval", p.interval),
		slog.Duration("cycle_timeout", p.cycleTimeout),
	)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "poller stopped")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	if _, err := p.Trigger(ctx, TriggerTimer, time.Time{}); err != nil && !errors.Is(err, ErrBusy) {
		slog.WarnContext(ctx, "cycle ended with error",
			slog.String("error", err.Error()),
		)
	}
}

// Trigger runs one cycle unless another is in flight, in which case it
// returns ErrBusy. A non-zero at replaces the wall clock for this cycle.
func (p *Poller) Trigger(ctx context.Context, trigger string, at time.Time) (*announce.CycleResult, error) {
	if !p.busy.CompareAndSwap(false, true) {
		slog.WarnContext(ctx, "skipping cycle, previous cycle still running",
			slog.String("trigger", trigger),
		)
		if p.metrics != nil {
			p.metrics.RecordCycleSkipped(ctx, trigger)
		}
		return nil, ErrBusy
	}
	defer p.busy.Store(false)

	cycleCtx := ctx
	if p.cycleTimeout > 0 {
		var cancel context.CancelFunc
		cycleCtx, cancel = context.WithTimeout(ctx, p.cycleTimeout)
		defer cancel()
	}

	var (
		result *announce.CycleResult
		err    error
	)
	if at.IsZero() {
		result, err = p.runner.RunCycle(cycleCtx)
	} else {
		result, err = p.runner.RunCycleAt(cycleCtx, at)
	}

	last := &LastCycle{
		Trigger:    trigger,
		FinishedAt: time.Now(),
		Result:     result,
	}
	if err != nil {
		last.Error = err.Error()
	}

	p.mu.Lock()
	p.last = last
	p.mu.Unlock()

	return result, err
}

func (p *Poller) Busy() bool {
	return p.busy.Load()
}

// LastCycle returns nil until the first cycle has finished.
func (p *Poller) LastCycle() *LastCycle {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}
