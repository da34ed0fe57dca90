package devdocs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"git.home.luguber.info/inful/docpack/internal/errors"
	"git.home.luguber.info/inful/docpack/internal/metrics"
	"git.home.luguber.info/inful/docpack/internal/retry"
)

const (
	// DefaultFrontendURL serves docs.json and the application CSS.
	DefaultFrontendURL = "https://devdocs.io"
	// DefaultDocumentsURL serves per-set index.json, meta.json, and db.json.
	DefaultDocumentsURL = "https://documents.devdocs.io"

	fetchTimeout = 15 * time.Second
)

// Client reads published data from the DevDocs servers.
type Client struct {
	frontendURL  string
	documentsURL string
	httpClient   *http.Client
	policy       retry.Policy
	recorder     metrics.Recorder
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithRetryPolicy overrides the transient-failure backoff policy.
func WithRetryPolicy(policy retry.Policy) ClientOption {
	return func(c *Client) { c.policy = policy }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(recorder metrics.Recorder) ClientOption {
	return func(c *Client) { c.recorder = recorder }
}

// NewClient creates a DevDocs client for the given frontend and documents
// servers. Empty URLs fall back to the public DevDocs endpoints.
func NewClient(frontendURL, documentsURL string, opts ...ClientOption) *Client {
	if frontendURL == "" {
		frontendURL = DefaultFrontendURL
	}
	if documentsURL == "" {
		documentsURL = DefaultDocumentsURL
	}
	c := &Client{
		frontendURL:  strings.TrimSuffix(frontendURL, "/"),
		documentsURL: strings.TrimSuffix(documentsURL, "/"),
		httpClient:   &http.Client{Timeout: fetchTimeout},
		policy:       retry.DefaultPolicy(),
		recorder:     metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getText performs a GET request and returns the response as decoded text,
// retrying transient failures per the client's backoff policy. The resource
// label is used for logging and metrics only.
func (c *Client) getText(ctx context.Context, resource, url string) (string, error) {
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			c.recorder.IncFetchRetry(resource)
			slog.Debug("Retrying fetch", "url", url, "attempt", attempt)
			select {
			case <-time.After(c.policy.Delay(attempt)):
			case <-ctx.Done():
				return "", errors.FetchFailed(url, ctx.Err())
			}
		}

		start := time.Now()
		body, err := c.fetchOnce(ctx, url)
		c.recorder.ObserveFetchDuration(resource, time.Since(start), err == nil)
		if err == nil {
			return body, nil
		}

		if !errors.IsRetryable(err) || attempt >= c.policy.MaxRetries {
			return "", err
		}
	}
}

func (c *Client) fetchOnce(ctx context.Context, url string) (string, error) {
	slog.Debug("Fetching", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", errors.FetchFailed(url, err)
	}
	req.Header.Set("User-Agent", "docpack/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.FetchTransient(url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 500 {
		return "", errors.FetchTransient(url, fmt.Errorf("HTTP %d", resp.StatusCode))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.FetchFailed(url, fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	// The largest known database (scala's) is ~144M; read fully in memory
	// but never cache the result.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.FetchTransient(url, err)
	}
	return string(body), nil
}

// ReadFrontendFile reads a file from the DevDocs frontend server by its
// path relative to the root.
func (c *Client) ReadFrontendFile(ctx context.Context, filePath string) (string, error) {
	return c.getText(ctx, filePath, c.frontendURL+"/"+filePath)
}

// ReadApplicationCSS reads the app's CSS which includes classes for
// normalizing content.
func (c *Client) ReadApplicationCSS(ctx context.Context) (string, error) {
	return c.ReadFrontendFile(ctx, "application.css")
}

// ListDocs lists the documentation sets DevDocs currently has published.
func (c *Client) ListDocs(ctx context.Context) ([]Metadata, error) {
	// The documents server also exposes a docs.json, but it is missing
	// attribution information.
	contents, err := c.ReadFrontendFile(ctx, "docs.json")
	if err != nil {
		return nil, err
	}
	return DecodeMetadataList([]byte(contents))
}

// readDocFile reads a file from the documents server under the given slug.
func (c *Client) readDocFile(ctx context.Context, docSlug, fileName string) (string, error) {
	return c.getText(ctx, fileName, c.documentsURL+"/"+docSlug+"/"+fileName)
}

// GetIndex fetches the set of headings and entries that make up the
// navigation sidebar for the given slug.
func (c *Client) GetIndex(ctx context.Context, docSlug string) (*Index, error) {
	contents, err := c.readDocFile(ctx, docSlug, "index.json")
	if err != nil {
		return nil, err
	}
	return DecodeIndex([]byte(contents))
}

// GetMeta fetches metadata about the given documentation set. Prefer
// ListDocs and filtering when possible; the metadata there is more complete.
func (c *Client) GetMeta(ctx context.Context, docSlug string) (Metadata, error) {
	contents, err := c.readDocFile(ctx, docSlug, "meta.json")
	if err != nil {
		return Metadata{}, err
	}
	return DecodeMetadata([]byte(contents))
}

// GetDB fetches the content database: the contents of every page in the index.
func (c *Client) GetDB(ctx context.Context, docSlug string) (map[string]string, error) {
	contents, err := c.readDocFile(ctx, docSlug, "db.json")
	if err != nil {
		return nil, err
	}
	return DecodeDatabase([]byte(contents))
}
