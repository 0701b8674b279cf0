// Package httpfetch loads the city dataset from a JSON array served over HTTP.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/custodia-labs/cityfinder/internal/adapters/driven/loader/jsonfile"
	"github.com/custodia-labs/cityfinder/internal/core/domain"
	"github.com/custodia-labs/cityfinder/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.DatasetLoader = (*Loader)(nil)

// Default configuration values.
const (
	DefaultTimeout = 15 * time.Second
	DefaultMaxSize = 32 << 20 // 32 MiB
	UserAgent      = "cityfinder"
)

// Config holds configuration for the HTTP loader.
type Config struct {
	// URL is the dataset location (required).
	URL string

	// Timeout is the request timeout (default: 15s).
	Timeout time.Duration

	// MaxSize caps the response body in bytes (default: 32 MiB).
	MaxSize int64

	// Client overrides the HTTP client. Timeout is ignored when set.
	Client *http.Client
}

// Loader fetches the dataset with a GET request.
type Loader struct {
	client  *http.Client
	url     string
	maxSize int64
}

// New creates a new HTTP loader.
func New(cfg Config) (*Loader, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("dataset url: %w", domain.ErrInvalidInput)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Loader{
		client:  cfg.Client,
		url:     cfg.URL,
		maxSize: cfg.MaxSize,
	}, nil
}

// Load fetches and decodes the dataset.
func (l *Loader) Load(ctx context.Context) ([]domain.RawCity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching dataset: %w: %v", domain.ErrDatasetUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching dataset: %w (status %d)", domain.ErrDatasetUnavailable, resp.StatusCode)
	}

	// Read one byte past the cap to detect oversize bodies
	body, err := io.ReadAll(io.LimitReader(resp.Body, l.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(body)) > l.maxSize {
		return nil, fmt.Errorf("dataset exceeds %d bytes: %w", l.maxSize, domain.ErrInvalidInput)
	}

	if body, err = jsonfile.Decompress(l.name(), body, l.maxSize); err != nil {
		return nil, err
	}
	return jsonfile.Decode(body)
}

// name is the URL path, which decides whether the body is compressed.
func (l *Loader) name() string {
	u, err := url.Parse(l.url)
	if err != nil {
		return l.url
	}
	return u.Path
}

// Describe identifies the loader in logs and the status bar.
func (l *Loader) Describe() string {
	return "http:" + l.url
}
