package clubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"clubfeed/internal/domain"
)

// Config holds club API client configuration.
type Config struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Client talks to the remote club-management API. It implements the service
// Loader and Confirmer contracts.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

// New creates a new club API client.
func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        cfg.BaseURL,
		token:          cfg.Token,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("component", "clubapi"),
	}
}

// Load fetches the combined identity+feed bootstrap payload. The same call
// serves as the reconciliation refetch.
func (c *Client) Load(ctx context.Context) (*domain.BootstrapPayload, error) {
	var resp *bootstrapResponse
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, err = c.fetchBootstrap(ctx)
		if err == nil {
			break
		}

		if attempt == c.maxAttempts {
			return nil, fmt.Errorf("after %d attempts: %w", c.maxAttempts, err)
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("bootstrap request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	items := make([]domain.FeedItem, 0, len(resp.Feed))
	for _, rec := range resp.Feed {
		item, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	c.logger.Debug("loaded bootstrap payload", "user_id", resp.User.ID, "items", len(items))

	return &domain.BootstrapPayload{
		Identity: domain.Identity{
			ID:    resp.User.ID,
			Name:  resp.User.Name,
			Email: resp.User.Email,
			Roles: resp.User.Roles,
		},
		Items: items,
	}, nil
}

// ConfirmRead reports a notification as read. Single attempt: recovery after
// a failed confirm belongs to the mutation protocol's reconcile, not the
// transport.
func (c *Client) ConfirmRead(ctx context.Context, id int64) error {
	return c.confirm(ctx, http.MethodPost, fmt.Sprintf("%s/notifications/%d/read", c.baseURL, id))
}

// ConfirmDismiss acknowledges a feed item removal.
func (c *Client) ConfirmDismiss(ctx context.Context, id int64) error {
	return c.confirm(ctx, http.MethodDelete, fmt.Sprintf("%s/feed/%d", c.baseURL, id))
}

func (c *Client) fetchBootstrap(ctx context.Context) (*bootstrapResponse, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+"/session/bootstrap")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var payload bootstrapResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &payload, nil
}

func (c *Client) confirm(ctx context.Context, method, url string) error {
	req, err := c.newRequest(ctx, method, url)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, method, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Request-Id", uuid.NewString())

	return req, nil
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}
