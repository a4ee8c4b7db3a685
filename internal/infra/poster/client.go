package poster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
	"github.com/KasumiMercury/cafe-menu-thread/internal/observability/logging"
	"github.com/KasumiMercury/cafe-menu-thread/internal/observability/tracing"
)

const tweetsPath = "/2/tweets"

// Client publishes posts through the X API v2 with an OAuth2 user token.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL, accessToken string) *Client {
	base := &http.Client{
		Timeout: 30 * time.Second,
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
	httpClient.Timeout = 30 * time.Second

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *Client) Publish(ctx context.Context, text, replyToID string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse base URL: %w", domain.ErrPublish, err)
	}
	u = u.JoinPath(tweetsPath)

	payload := createPostRequest{Text: text}
	if replyToID != "" {
		payload.Reply = &replySettings{InReplyToTweetID: replyToID}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request: %w", domain.ErrPublish, err)
	}

	ctx, span := tracing.StartExternalAPISpan(ctx, "publish_post", u.String())
	defer span.End()

	slog.DebugContext(ctx, "publishing post",
		slog.String("url", u.String()),
		slog.String("reply_to", replyToID),
		slog.Int("length", len([]rune(text))),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		tracing.RecordError(span, err)
		return "", fmt.Errorf("%w: failed to create request: %w", domain.ErrPublish, err)
	}

	req.Header.Set("Content-Type", "application/json")
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set("x-request-id", requestID)
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send request to post API",
			slog.String("url", u.String()),
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		return "", fmt.Errorf("%w: failed to send request: %w", domain.ErrPublish, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		tracing.RecordError(span, err)
		return "", fmt.Errorf("%w: failed to read response body: %w", domain.ErrPublish, err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		slog.ErrorContext(ctx, "unexpected status code from post API",
			slog.String("url", u.String()),
			slog.Int("status_code", resp.StatusCode),
			slog.String("body", string(respBody)),
		)
		err := fmt.Errorf("%w: unexpected status code: %d", domain.ErrPublish, resp.StatusCode)
		tracing.RecordError(span, err)
		return "", err
	}

	var created createPostResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		tracing.RecordError(span, err)
		return "", fmt.Errorf("%w: failed to decode response: %w", domain.ErrPublish, err)
	}
	if created.Data.ID == "" {
		err := fmt.Errorf("%w: response carried no post id", domain.ErrPublish)
		tracing.RecordError(span, err)
		return "", err
	}

	tracing.RecordPublishResult(span, created.Data.ID, nil)
	return created.Data.ID, nil
}
