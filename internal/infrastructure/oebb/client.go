package oebb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/journey-service/internal/config"
	"github.com/journey-service/internal/domain/repository"
	"go.uber.org/zap"
)

// channel identifies the client type to the ticket shop, same value the
// web frontend sends.
const channel = "inet"

// backendTimeLayout is the offset-less civil timestamp format the ticket
// shop expects in request bodies.
const backendTimeLayout = "2006-01-02T15:04:05.000"

type client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *zap.Logger
}

// NewClient creates a ticket shop API client.
func NewClient(cfg *config.TicketShopConfig, logger *zap.Logger) repository.TicketShopRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

type authResponse struct {
	AccessToken string `json:"accessToken"`
}

// NewSession fetches a fresh access token. Sessions are never reused
// across search calls.
func (c *client) NewSession(ctx context.Context) (repository.TicketShopSession, error) {
	var auth authResponse
	if err := c.do(ctx, http.MethodGet, "/domain/v4/init", nil, nil, "", &auth); err != nil {
		return nil, fmt.Errorf("failed to acquire session: %w", err)
	}
	if auth.AccessToken == "" {
		return nil, fmt.Errorf("ticket shop returned an empty access token")
	}

	c.logger.Debug("Ticket shop session acquired")

	return &session{client: c, accessToken: auth.AccessToken}, nil
}

// do executes one backend call. Transport and backend errors are returned
// unchanged to the caller, no retry.
func (c *client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body interface{},
	accessToken string,
	out interface{},
) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Channel", channel)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("AccessToken", accessToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request",
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("Ticket shop API returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return fmt.Errorf("ticket shop API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.logger.Error("Failed to decode response",
				zap.String("path", path),
				zap.Error(err))
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	c.logger.Debug("Ticket shop API call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Duration("duration", time.Since(start)))

	return nil
}
