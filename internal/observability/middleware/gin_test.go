package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/cafe-menu-thread/internal/observability/logging"
)

func newTestRouter(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Gin(GinConfig{
		SkipPaths:  []string{"/health"},
		Module:     logging.Module("test"),
		TracerName: "test",
	}))
	r.Use(PanicRecoveryGin())

	r.GET("/ok", func(c *gin.Context) {
		*seen = logging.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	r.GET("/health", func(c *gin.Context) {
		*seen = logging.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r
}

func TestGin_RequestID(t *testing.T) {
	const given = "0f8fad5b-d9cb-469f-a165-70867728950e"

	tests := []struct {
		name      string
		header    string
		wantGiven bool
	}{
		{name: "valid id is kept", header: given, wantGiven: true},
		{name: "invalid id is replaced", header: "not-a-uuid"},
		{name: "missing id is generated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			r := newTestRouter(&seen)

			req := httptest.NewRequest(http.MethodGet, "/ok", nil)
			if tt.header != "" {
				req.Header.Set(requestIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if seen == "" {
				t.Fatal("expected request id on context")
			}
			if tt.wantGiven && seen != given {
				t.Errorf("request id = %q, want %q", seen, given)
			}
			if !tt.wantGiven && seen == tt.header {
				t.Errorf("expected invalid id %q to be replaced", tt.header)
			}
			if w.Header().Get(requestIDHeader) != seen {
				t.Errorf("response header = %q, want %q", w.Header().Get(requestIDHeader), seen)
			}
		})
	}
}

func TestGin_SkipPaths(t *testing.T) {
	var seen string
	r := newTestRouter(&seen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if seen != "" {
		t.Errorf("expected skipped path to carry no request id, got %q", seen)
	}
}

func TestPanicRecoveryGin(t *testing.T) {
	var seen string
	r := newTestRouter(&seen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}
