package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/cafe-menu-thread/internal/service/poller"
)

// Status represents the health status of a service or dependency.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult represents the health check result for a single dependency.
type CheckResult struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CycleSummary is the readiness view of the most recent polling cycle.
type CycleSummary struct {
	Trigger    string    `json:"trigger"`
	Outcome    string    `json:"outcome,omitempty"`
	Meal       string    `json:"meal,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
	Error      string    `json:"error,omitempty"`
}

// HealthStatus represents the overall health status of the service.
type HealthStatus struct {
	Status    Status                 `json:"status"`
	Version   string                 `json:"version,omitempty"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
	LastCycle *CycleSummary          `json:"last_cycle,omitempty"`
}

// CycleReporter exposes the outcome of the last polling cycle.
type CycleReporter interface {
	LastCycle() *poller.LastCycle
}

// Checker performs health checks on service dependencies.
type Checker struct {
	redisClient *redis.Client
	cycles      CycleReporter
	version     string
}

// NewChecker creates a new health checker. redisClient may be nil when state
// is kept on disk.
func NewChecker(redisClient *redis.Client, cycles CycleReporter, version string) *Checker {
	return &Checker{
		redisClient: redisClient,
		cycles:      cycles,
		version:     version,
	}
}

// Check performs health checks on all dependencies and returns the overall
// status. A failed last cycle is reported but does not make the service
// unhealthy; the next tick retries it.
func (c *Checker) Check(ctx context.Context) *HealthStatus {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := &HealthStatus{
		Status:  StatusHealthy,
		Version: c.version,
		Checks:  make(map[string]CheckResult),
	}

	if c.redisClient != nil {
		start := time.Now()
		if err := c.redisClient.Ping(checkCtx).Err(); err != nil {
			status.Status = StatusUnhealthy
			status.Checks["redis"] = CheckResult{
				Status: StatusUnhealthy,
				Error:  err.Error(),
			}
		} else {
			status.Checks["redis"] = CheckResult{
				Status:    StatusHealthy,
				LatencyMs: time.Since(start).Milliseconds(),
			}
		}
	}

	if c.cycles != nil {
		if last := c.cycles.LastCycle(); last != nil {
			summary := &CycleSummary{
				Trigger:    last.Trigger,
				FinishedAt: last.FinishedAt,
				Error:      last.Error,
			}
			if last.Result != nil {
				summary.Outcome = last.Result.Outcome.String()
				summary.Meal = last.Result.Meal
			}
			status.LastCycle = summary
		}
	}

	return status
}

// LiveHandler returns a Gin handler for liveness probes.
func (c *Checker) LiveHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ReadyHandler returns a Gin handler for readiness probes.
func (c *Checker) ReadyHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := c.Check(ctx.Request.Context())

		httpStatus := http.StatusOK
		if status.Status != StatusHealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		ctx.JSON(httpStatus, status)
	}
}
