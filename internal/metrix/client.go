package metrix

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/tfk-discgolf/metrixbot/internal/model"
	"golang.org/x/sync/errgroup"
)

// Client fetches DiscGolfMetrix pages. It wraps one http.Client so
// timeout and transport settings stay consistent across the series
// and event requests, and so tests can point it at httptest servers.
type Client struct {
	// httpClient performs the requests. The caller configures timeouts.
	httpClient *http.Client

	// userAgent is sent with every request. Default mimics desktop
	// Chrome; Metrix serves the selector markup to desktop browsers.
	userAgent string

	// maxBodySize limits the response body size to prevent memory
	// exhaustion. Default is 10MB.
	maxBodySize int64

	// location is the timezone the series' wall-clock times are
	// interpreted in.
	location *time.Location

	// concurrency bounds GetAllDetails fan-out.
	concurrency int

	// logger is used for structured logging.
	logger *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxBodySize overrides the response body read cap.
func WithMaxBodySize(size int64) ClientOption {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithLocation sets the timezone used to interpret the series' times.
func WithLocation(loc *time.Location) ClientOption {
	return func(c *Client) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithConcurrency sets the maximum number of concurrent detail fetches.
// Default is 4 if not specified.
func WithConcurrency(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Metrix client on top of the given HTTP client.
// The HTTP client comes from outside: timeout policy belongs to the
// caller's configuration, and tests inject httptest server clients.
// A nil httpClient falls back to http.DefaultClient.
func NewClient(httpClient *http.Client, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: httpClient,
		// Default User-Agent mimics Chrome on Windows. Metrix serves a
		// different, unparseable page variant to non-browser agents.
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) " +
			"Chrome/120.0.0.0 Safari/537.36",
		maxBodySize: 10 * 1024 * 1024, // 10MB
		location:    time.Local,
		concurrency: 4,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// get performs a GET with browser headers and verifies the status.
// The caller owns the response body.
func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", rawURL, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "nb-NO,nb;q=0.9,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused, then report.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned %s", ErrUnexpectedStatus, rawURL, resp.Status)
	}

	return resp, nil
}

// GetSeries fetches and parses the series info page.
// Relative round links are resolved against the series URL itself.
func (c *Client) GetSeries(ctx context.Context, seriesURL string) ([]model.Round, error) {
	base, err := url.Parse(seriesURL)
	if err != nil {
		return nil, fmt.Errorf("parse series url %q: %w", seriesURL, err)
	}

	c.logger.Debug("fetching series page", "url", seriesURL)

	resp, err := c.get(ctx, seriesURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // Read-side close

	rounds, err := ParseSeries(io.LimitReader(resp.Body, c.maxBodySize), base, c.location)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("parsed series page", "url", seriesURL, "rounds", len(rounds))
	return rounds, nil
}

// GetDetail fetches and parses one round's event page.
func (c *Client) GetDetail(ctx context.Context, round model.Round) (*model.RoundDetail, error) {
	c.logger.Debug("fetching event page", "url", round.URL)

	resp, err := c.get(ctx, round.URL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // Read-side close

	return ParseDetail(io.LimitReader(resp.Body, c.maxBodySize), round)
}

// GetAllDetails fetches event pages for all given rounds concurrently,
// bounded by the client's concurrency limit. The result preserves input
// order. Rounds whose pages fail to load are skipped with a warning
// rather than failing the whole batch; this feeds preview listings, not
// publishing.
func (c *Client) GetAllDetails(ctx context.Context, rounds []model.Round) ([]*model.RoundDetail, error) {
	slots := make([]*model.RoundDetail, len(rounds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, round := range rounds {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			detail, err := c.GetDetail(ctx, round)
			if err != nil {
				c.logger.Warn("event page fetch failed",
					"url", round.URL,
					"error", err,
				)
				return nil
			}

			// Distinct indices; no lock needed.
			slots[i] = detail
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	details := make([]*model.RoundDetail, 0, len(slots))
	for _, d := range slots {
		if d != nil {
			details = append(details, d)
		}
	}
	return details, nil
}
