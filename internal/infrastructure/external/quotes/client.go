// Package quotes implements a motivational quote API client.
// Quotes are decoration on the progress report: every failure mode here
// degrades to "no quote", never to a failed report.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/studyspark/studyspark/internal/domain/shared"
	"github.com/studyspark/studyspark/pkg/circuitbreaker"
	"github.com/studyspark/studyspark/pkg/logger"
	"github.com/studyspark/studyspark/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// ClientConfig contains configuration for the quote API client.
type ClientConfig struct {
	// BaseURL is the quote API base URL.
	BaseURL string

	// Timeout is the HTTP request timeout.
	Timeout time.Duration

	// RetryConfig for retry behavior.
	RetryConfig retry.Config

	// CircuitBreakerConfig for fault tolerance.
	CircuitBreakerConfig circuitbreaker.Config

	// Logger for structured logging.
	Logger *logger.Logger
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(baseURL string) ClientConfig {
	return ClientConfig{
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		RetryConfig: retry.DefaultConfig(),
		CircuitBreakerConfig: circuitbreaker.Config{
			Name:             "quote-api",
			FailureThreshold: 3,
			SuccessThreshold: 1,
			Timeout:          time.Minute,
		},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Quote is a single motivational quote.
type Quote struct {
	Text   string `json:"q"`
	Author string `json:"a"`
}

// String renders the quote as `"text" - author`.
func (q Quote) String() string {
	if q.Author == "" {
		return fmt.Sprintf("%q", q.Text)
	}
	return fmt.Sprintf("%q - %s", q.Text, q.Author)
}

// Client fetches motivational quotes over HTTP.
type Client struct {
	config         ClientConfig
	httpClient     *http.Client
	logger         *logger.Logger
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewClient creates a new quote API client.
func NewClient(config ClientConfig) *Client {
	if config.Logger == nil {
		config.Logger = logger.Default()
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger:         config.Logger,
		circuitBreaker: circuitbreaker.New(config.CircuitBreakerConfig),
	}
}

// Random fetches a random motivational quote. Retries transient
// failures; 4xx responses are permanent and fail immediately.
func (c *Client) Random(ctx context.Context) (*Quote, error) {
	var quote *Quote

	err := c.circuitBreaker.Execute(ctx, func(ctx context.Context) error {
		return retry.Do(ctx, c.config.RetryConfig, func(ctx context.Context) error {
			q, err := c.fetch(ctx)
			if err != nil {
				return err
			}
			quote = q
			return nil
		})
	})
	if err != nil {
		c.logger.Warn("quote fetch failed", logger.Fields{
			"error":   err.Error(),
			"circuit": c.circuitBreaker.State().String(),
		})
		return nil, fmt.Errorf("%w: %v", shared.ErrQuoteServiceUnavailable, err)
	}
	return quote, nil
}

func (c *Client) fetch(ctx context.Context) (*Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/random", nil)
	if err != nil {
		return nil, retry.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("quote API returned status %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, retry.Permanent(err)
		}
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return nil, err
	}

	// The API wraps a single quote in a one-element array
	var quotes []Quote
	if err := json.Unmarshal(body, &quotes); err != nil {
		var single Quote
		if err2 := json.Unmarshal(body, &single); err2 != nil {
			return nil, retry.Permanent(fmt.Errorf("failed to decode quote response: %w", err))
		}
		quotes = []Quote{single}
	}
	if len(quotes) == 0 || quotes[0].Text == "" {
		return nil, retry.Permanent(fmt.Errorf("quote API returned empty response"))
	}

	return &quotes[0], nil
}
