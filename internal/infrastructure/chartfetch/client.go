package chartfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/DrugisCodes/PerFit-sub000/internal/domain"
)

// Client downloads size charts published by retailers or shared chart
// registries as YAML files.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      zerolog.Logger
	debug       bool
}

// NewClient creates a chart fetch client.
func NewClient(logger zerolog.Logger) *Client {
	// Chart hosts are third-party servers; keep the request rate polite.
	// One request per second with a small burst is plenty for imports.
	limiter := rate.NewLimiter(rate.Limit(1), 3)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		rateLimiter: limiter,
		logger:      logger,
	}
}

// SetDebug enables request-level logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "PerFit/1.0")
	req.Header.Set("Accept", "application/yaml, text/yaml, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrChartFetchFailure, err)
	}

	return resp, nil
}

// FetchChart downloads and parses a chart file from the given URL.
// Transient failures are retried with a short backoff; a 404 is reported as
// ErrChartNotFound right away.
func (c *Client) FetchChart(ctx context.Context, chartURL string) (*RemoteChart, error) {
	if c.debug {
		c.logger.Info().Str("url", chartURL).Msg("fetching remote chart")
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, chartURL)
		if err != nil {
			c.logger.Warn().Err(err).Int("attempt", attempt).Str("url", chartURL).Msg("chart fetch request failed")
			lastErr = err
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if resp.StatusCode == http.StatusNotFound {
				return nil, domain.ErrChartNotFound
			}
			c.logger.Warn().Int("status", resp.StatusCode).Int("attempt", attempt).Str("url", chartURL).Msg("chart host returned an error")
			lastErr = fmt.Errorf("%w: status %d", domain.ErrChartFetchFailure, resp.StatusCode)
			// Only server errors and throttling are retried.
			if resp.StatusCode < http.StatusInternalServerError && resp.StatusCode != http.StatusTooManyRequests {
				return nil, lastErr
			}
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		var remote RemoteChart
		if err := yaml.Unmarshal(body, &remote); err != nil {
			return nil, fmt.Errorf("failed to decode chart file: %w", err)
		}

		if c.debug {
			c.logger.Info().Str("url", chartURL).Int("rows", len(remote.Rows)).Msg("remote chart fetched")
		}
		return &remote, nil
	}

	return nil, lastErr
}
