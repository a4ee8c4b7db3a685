package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/announce"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/poller"
)

type fakeTrigger struct {
	result  *announce.CycleResult
	err     error
	gotAt   time.Time
	gotKind string
}

func (f *fakeTrigger) Trigger(_ context.Context, trigger string, at time.Time) (*announce.CycleResult, error) {
	f.gotKind = trigger
	f.gotAt = at
	return f.result, f.err
}

func serve(h *CycleHandler, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/cycle", h.HandleCycle)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, target, nil))
	return w
}

func TestCycleHandler_HandleCycle(t *testing.T) {
	posted := &announce.CycleResult{Outcome: announce.OutcomePosted, Meal: "Lunch"}

	tests := []struct {
		name       string
		target     string
		trigger    *fakeTrigger
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "posted",
			target:     "/api/v1/cycle",
			trigger:    &fakeTrigger{result: posted},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "busy",
			target:     "/api/v1/cycle",
			trigger:    &fakeTrigger{err: poller.ErrBusy},
			wantStatus: http.StatusConflict,
			wantCalled: true,
		},
		{
			name:   "fetch failed",
			target: "/api/v1/cycle",
			trigger: &fakeTrigger{
				result: &announce.CycleResult{Outcome: announce.OutcomeFetchFailed},
				err:    errors.Join(domain.ErrFetch, errors.New("timeout")),
			},
			wantStatus: http.StatusBadGateway,
			wantCalled: true,
		},
		{
			name:   "persistence failure",
			target: "/api/v1/cycle",
			trigger: &fakeTrigger{
				result: posted,
				err:    domain.ErrPersistence,
			},
			wantStatus: http.StatusInternalServerError,
			wantCalled: true,
		},
		{
			name:       "invalid virtual time",
			target:     "/api/v1/cycle?at=tomorrow",
			trigger:    &fakeTrigger{},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(NewCycleHandler(tt.trigger, time.UTC), tt.target)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if called := tt.trigger.gotKind != ""; called != tt.wantCalled {
				t.Errorf("trigger called = %v, want %v", called, tt.wantCalled)
			}
			if tt.wantCalled && tt.trigger.gotKind != poller.TriggerManual {
				t.Errorf("trigger kind = %q, want %q", tt.trigger.gotKind, poller.TriggerManual)
			}
		})
	}
}

func TestCycleHandler_VirtualTime(t *testing.T) {
	trigger := &fakeTrigger{result: &announce.CycleResult{Outcome: announce.OutcomeNoMealNear}}

	w := serve(NewCycleHandler(trigger, time.UTC), "/api/v1/cycle?at=2026-10-19T10:45:00Z")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	want := time.Date(2026, 10, 19, 10, 45, 0, 0, time.UTC)
	if !trigger.gotAt.Equal(want) {
		t.Errorf("at = %v, want %v", trigger.gotAt, want)
	}

	var resp cycleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.Result == nil || resp.Result.Outcome != announce.OutcomeNoMealNear {
		t.Errorf("unexpected response %+v", resp)
	}
}
