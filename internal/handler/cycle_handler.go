package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/announce"
	"github.com/KasumiMercury/cafe-menu-thread/internal/service/poller"
)

type CycleTrigger interface {
	Trigger(ctx context.Context, trigger string, at time.Time) (*announce.CycleResult, error)
}

type CycleHandler struct {
	trigger  CycleTrigger
	location *time.Location
}

func NewCycleHandler(trigger CycleTrigger, location *time.Location) *CycleHandler {
	if location == nil {
		location = time.Local
	}
	return &CycleHandler{
		trigger:  trigger,
		location: location,
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type cycleResponse struct {
	Result *announce.CycleResult `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// HandleCycle runs one cycle on demand. The optional "at" query parameter
// (RFC3339) replaces the wall clock for that cycle.
func (h *CycleHandler) HandleCycle(c *gin.Context) {
	ctx := c.Request.Context()

	var at time.Time
	if atStr := c.Query("at"); atStr != "" {
		parsed, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{
				Error:   "validation_error",
				Message: "invalid at time format, expected RFC3339",
			})
			return
		}
		at = parsed.In(h.location)
		slog.InfoContext(ctx, "using virtual time",
			slog.Time("virtual_now", at),
		)
	}

	result, err := h.trigger.Trigger(ctx, poller.TriggerManual, at)
	if errors.Is(err, poller.ErrBusy) {
		c.JSON(http.StatusConflict, errorResponse{
			Error:   "busy",
			Message: "a cycle is already running",
		})
		return
	}

	resp := cycleResponse{Result: result}
	if err != nil {
		resp.Error = err.Error()
	}

	switch {
	case err == nil:
		c.JSON(http.StatusOK, resp)
	case errors.Is(err, domain.ErrFetch), errors.Is(err, domain.ErrParse):
		c.JSON(http.StatusBadGateway, resp)
	default:
		slog.ErrorContext(ctx, "manual cycle failed",
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, resp)
	}
}
