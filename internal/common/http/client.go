// internal/common/http/client.go
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cardgen/internal/common/metrics"
)

type Logger interface {
	Debug(msg string, fields map[string]interface{})
}

// Client is the outbound HTTP client for upstream services. It records
// latency per host and never logs request bodies or headers.
type Client struct {
	httpClient *http.Client
	logger     Logger
}

func NewClient(timeout time.Duration, logger Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)

	outcome := outcomeOf(resp, err)
	metrics.UpstreamRequestDuration.WithLabelValues(req.URL.Host, outcome).Observe(elapsed.Seconds())

	if c.logger != nil {
		c.logger.Debug("upstream request", map[string]interface{}{
			"host":       req.URL.Host,
			"path":       req.URL.Path,
			"outcome":    outcome,
			"durationMs": elapsed.Milliseconds(),
		})
	}
	return resp, err
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.Do(req.WithContext(ctx))
}

func outcomeOf(resp *http.Response, err error) string {
	if err != nil {
		return "error"
	}
	return fmt.Sprintf("%dxx", resp.StatusCode/100)
}
