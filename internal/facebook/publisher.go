package facebook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/tfk-discgolf/metrixbot/internal/config"
)

// maxErrorBody bounds how much of a failed response we read back.
// Graph error envelopes are small; anything bigger is not worth keeping.
const maxErrorBody = 4 * 1024

// Publisher posts messages to a Facebook page feed. The credentials
// are bound once at construction and never travel through call sites;
// the http.Client is shared so timeout and transport settings stay
// consistent, and WithBaseURL lets tests swap in a httptest server.
type Publisher struct {
	// httpClient performs the requests. The caller configures timeouts.
	httpClient *http.Client

	// creds holds the page ID and page token. Never logged.
	creds config.Credentials

	// baseURL is the Graph API origin. Overridable for tests.
	baseURL string

	// graphVersion is the API version path segment, e.g. "v23.0".
	graphVersion string

	// logger is used for structured logging.
	logger *slog.Logger
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithGraphVersion sets the Graph API version path segment.
func WithGraphVersion(version string) PublisherOption {
	return func(p *Publisher) {
		if version != "" {
			p.graphVersion = version
		}
	}
}

// WithBaseURL overrides the Graph API origin. Tests point this at a
// local httptest server.
func WithBaseURL(baseURL string) PublisherOption {
	return func(p *Publisher) {
		if baseURL != "" {
			p.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithPublisherLogger sets a custom logger for the publisher.
func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPublisher creates a Publisher for the page identified by creds.
func NewPublisher(httpClient *http.Client, creds config.Credentials, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		httpClient:   httpClient,
		creds:        creds,
		baseURL:      "https://graph.facebook.com",
		graphVersion: config.DefaultGraphVersion,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.httpClient == nil {
		p.httpClient = http.DefaultClient
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// feedURL returns the page feed endpoint.
func (p *Publisher) feedURL() string {
	return fmt.Sprintf("%s/%s/%s/feed", p.baseURL, p.graphVersion, p.creds.PageID)
}

// PublishText posts a text message to the page feed and returns the
// Graph API post ID.
//
// The token travels only in the form body, never in the URL, so it
// cannot end up in proxy or server access logs.
func (p *Publisher) PublishText(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", ErrEmptyMessage
	}
	if !p.creds.Complete() {
		return "", ErrMissingCredentials
	}

	form := url.Values{
		"message":      {message},
		"access_token": {p.creds.PageToken},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.feedURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create feed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	p.logger.Debug("publishing to page feed", "graph_version", p.graphVersion)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post to page feed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // Read-side close

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", p.decodeError(resp)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&result); err != nil {
		return "", fmt.Errorf("decode feed response: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("feed response carried no post id")
	}

	p.logger.Debug("page post published", "post_id", result.ID)
	return result.ID, nil
}

// decodeError turns a failed Graph response into a *GraphError when the
// body carries the standard error envelope, or a plain error otherwise.
// Raw bodies are bounded and never include the request token.
func (p *Publisher) decodeError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("graph api returned %s and the body could not be read: %w", resp.Status, err)
	}

	var envelope struct {
		Error GraphError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		envelope.Error.HTTPStatus = resp.StatusCode
		return &envelope.Error
	}

	return fmt.Errorf("graph api returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
}
