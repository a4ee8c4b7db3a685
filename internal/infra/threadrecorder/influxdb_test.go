//go:build !gcloud

package threadrecorder

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/KasumiMercury/cafe-menu-thread/internal/config"
	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
)

func TestNewRecorderFallsBackToNoop(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.RecordingConfig
	}{
		{
			name: "nil config",
			cfg:  nil,
		},
		{
			name: "disabled",
			cfg:  &config.RecordingConfig{Disabled: true, InfluxDBToken: "t", InfluxDBOrg: "o"},
		},
		{
			name: "missing token",
			cfg:  &config.RecordingConfig{InfluxDBURL: "http://localhost:8086", InfluxDBOrg: "o"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := NewRecorder(context.Background(), tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := rec.(*noopRecorder); !ok {
				t.Errorf("expected noop recorder, got %T", rec)
			}
		})
	}
}

func TestInfluxDBRecorderWritesLineProtocol(t *testing.T) {
	var (
		mu    sync.Mutex
		lines []string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/write" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		lines = append(lines, string(body))
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	rec, err := NewRecorder(context.Background(), &config.RecordingConfig{
		InfluxDBURL:    server.URL,
		InfluxDBToken:  "token",
		InfluxDBOrg:    "org",
		InfluxDBBucket: "thread_results",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rec.Close()

	err = rec.RecordThread(context.Background(), domain.ThreadResultRecord{
		RunID:        "run-1",
		CafeID:       "224",
		Meal:         "Lunch",
		MealStart:    domain.TimeOfDay(11*time.Hour + 30*time.Minute),
		PostedAt:     time.Date(2026, 10, 19, 11, 0, 0, 0, time.UTC),
		PostCount:    3,
		SuccessCount: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(lines) != 1 {
		t.Fatalf("expected one write, got %d", len(lines))
	}
	for _, want := range []string{"thread_result", "meal=Lunch", "cafe_id=224", "post_count=3i", `meal_start="11:30"`} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("expected %q in %q", want, lines[0])
		}
	}
}

func TestInfluxDBRecorderSwallowsWriteErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	rec, err := NewRecorder(context.Background(), &config.RecordingConfig{
		InfluxDBURL:    server.URL,
		InfluxDBToken:  "token",
		InfluxDBOrg:    "org",
		InfluxDBBucket: "thread_results",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rec.Close()

	if err := rec.RecordThread(context.Background(), domain.ThreadResultRecord{Meal: "Dinner", PostedAt: time.Now()}); err != nil {
		t.Errorf("expected write errors to be swallowed, got %v", err)
	}
}
