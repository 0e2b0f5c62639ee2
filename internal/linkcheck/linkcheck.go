package linkcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/navhub-dev/navhub/internal/utils"
	"go.uber.org/zap"
)

const DefaultTimeout = 5 * time.Second

// Result describes a single reachability probe.
type Result struct {
	URL        string `json:"url"`
	Domain     string `json:"domain"`
	Reachable  bool   `json:"reachable"`
	StatusCode int    `json:"statusCode"`
	LatencyMs  int64  `json:"latencyMs"`
	Error      string `json:"error,omitempty"`
}

// Checker probes bookmark URLs.
type Checker struct {
	client *http.Client
	logger *zap.Logger
}

func NewChecker(timeout time.Duration, logger *zap.Logger) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Checker{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Check sends a HEAD request to rawURL and retries with GET when the server
// rejects HEAD. Any response below 400 counts as reachable. Transport
// failures are reported in the result, not as an error.
func (c *Checker) Check(ctx context.Context, rawURL string) Result {
	result := Result{URL: rawURL}

	if domain, err := utils.BookmarkDomain(rawURL); err == nil {
		result.Domain = domain
	}

	start := time.Now()
	status, err := c.do(ctx, http.MethodHead, rawURL)

	if err == nil && (status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented) {
		status, err = c.do(ctx, http.MethodGet, rawURL)
	}

	result.LatencyMs = time.Since(start).Milliseconds()

	if err != nil {
		c.logger.Debug("link check failed", zap.String("url", rawURL), zap.Error(err))
		result.Error = err.Error()
		return result
	}

	result.StatusCode = status
	result.Reachable = status < http.StatusBadRequest

	if !result.Reachable {
		result.Error = fmt.Sprintf("unexpected status code: %d", status)
	}

	return result
}

func (c *Checker) do(ctx context.Context, method, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)

	if err != nil {
		return 0, err
	}

	req.Header.Set("User-Agent", "navhub-linkcheck/1.0")

	resp, err := c.client.Do(req)

	if err != nil {
		return 0, err
	}

	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	return resp.StatusCode, nil
}
