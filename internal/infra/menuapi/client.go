package menuapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
	"github.com/KasumiMercury/cafe-menu-thread/internal/observability/logging"
	"github.com/KasumiMercury/cafe-menu-thread/internal/observability/tracing"
)

const menusPath = "/api/2/menus"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchMenu returns today's menu for cafeID. Transport failures and non-200
// responses wrap domain.ErrFetch; undecodable bodies wrap domain.ErrParse.
func (c *Client) FetchMenu(ctx context.Context, cafeID string) (*domain.MenuResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse base URL: %w", domain.ErrFetch, err)
	}

	u = u.JoinPath(menusPath)
	q := u.Query()
	q.Set("cafe", cafeID)
	u.RawQuery = q.Encode()

	ctx, span := tracing.StartExternalAPISpan(ctx, "fetch_menu", u.String())
	defer span.End()

	slog.DebugContext(ctx, "fetching menu",
		slog.String("url", u.String()),
		slog.String("cafe_id", cafeID),
	)

	body, err := c.get(ctx, u.String())
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	menu, err := decodeMenu(ctx, body, cafeID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to decode menu response",
			slog.String("cafe_id", cafeID),
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		return nil, err
	}

	slog.DebugContext(ctx, "successfully fetched menu",
		slog.Int("day_count", len(menu.Days)),
		slog.Int("item_count", len(menu.Items)),
	)

	tracing.RecordError(span, nil)
	return menu, nil
}

// CafeName looks up the display name of cafeID.
func (c *Client) CafeName(ctx context.Context, cafeID string) (string, error) {
	menu, err := c.FetchMenu(ctx, cafeID)
	if err != nil {
		return "", err
	}

	cafe, err := menu.Cafe(cafeID)
	if err != nil {
		return "", err
	}

	return cafe.Name, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", domain.ErrFetch, err)
	}

	req.Header.Set("Accept", "application/json")
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set("x-request-id", requestID)
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send request to menu API",
			slog.String("url", rawURL),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: failed to send request: %w", domain.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.ErrorContext(ctx, "unexpected status code from menu API",
			slog.String("url", rawURL),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read response body from menu API",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: failed to read response body: %w", domain.ErrFetch, err)
	}

	return body, nil
}
