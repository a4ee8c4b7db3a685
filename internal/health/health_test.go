package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/cafe-menu-thread/internal/service/announce"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/poller"
	"github.com/KasumiMercury/cafe-menu-thread/internal/testutil"
)

type staticReporter struct {
	last *poller.LastCycle
}

func (s staticReporter) LastCycle() *poller.LastCycle {
	return s.last
}

func newRouter(c *Checker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health/live", c.LiveHandler())
	r.GET("/health/ready", c.ReadyHandler())
	return r
}

func TestChecker_ReadyWithoutRedis(t *testing.T) {
	finished := time.Date(2026, 10, 19, 10, 45, 0, 0, time.UTC)
	checker := NewChecker(nil, staticReporter{last: &poller.LastCycle{
		Trigger:    poller.TriggerTimer,
		FinishedAt: finished,
		Result:     &announce.CycleResult{Outcome: announce.OutcomePosted, Meal: "Lunch"},
	}}, "test")

	w := httptest.NewRecorder()
	newRouter(checker).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var status HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if status.Status != StatusHealthy {
		t.Errorf("Status = %s, want healthy", status.Status)
	}
	if _, ok := status.Checks["redis"]; ok {
		t.Error("expected no redis check without a client")
	}
	if status.LastCycle == nil || status.LastCycle.Outcome != "posted" || status.LastCycle.Meal != "Lunch" {
		t.Errorf("unexpected last cycle %+v", status.LastCycle)
	}
}

func TestChecker_FailedCycleStaysReady(t *testing.T) {
	checker := NewChecker(nil, staticReporter{last: &poller.LastCycle{
		Trigger: poller.TriggerTimer,
		Result:  &announce.CycleResult{Outcome: announce.OutcomeFetchFailed},
		Error:   "menu fetch failed",
	}}, "test")

	status := checker.Check(context.Background())
	if status.Status != StatusHealthy {
		t.Errorf("Status = %s, want healthy", status.Status)
	}
	if status.LastCycle.Error == "" {
		t.Error("expected last cycle error to be reported")
	}
}

func TestChecker_UnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	checker := NewChecker(client, nil, "test")

	w := httptest.NewRecorder()
	newRouter(checker).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestChecker_Redis(t *testing.T) {
	ctx := context.Background()
	client := testutil.StartRedis(t)

	status := NewChecker(client, nil, "test").Check(ctx)
	if status.Checks["redis"].Status != StatusHealthy {
		t.Errorf("expected healthy redis, got %+v", status.Checks["redis"])
	}
}

func TestChecker_Live(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(NewChecker(nil, nil, "test")).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
