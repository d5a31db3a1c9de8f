// Package artic is a client for the Art Institute of Chicago artworks API.
package artic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gallery/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "gallery (+https://github.com/mmcdole/gallery)"
)

// Client implements domain.CatalogRepository against the artworks endpoint
type Client struct {
	baseURL    string
	fields     bool
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithFields restricts responses to the displayed fields
func WithFields(on bool) Option {
	return func(c *Client) { c.fields = on }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a new catalog API client
func NewClient(baseURL string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest performs a GET against the artworks endpoint.
// Requests are never retried.
func (c *Client) doRequest(ctx context.Context, query url.Values) (ArtworksResponse, error) {
	if c.fields {
		query.Set("fields", displayFields)
	}
	reqURL := c.baseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return ArtworksResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("catalog request", "url", reqURL)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ArtworksResponse{}, ctx.Err()
		}
		c.logger.Error("catalog request failed", "url", reqURL, "error", err)
		return ArtworksResponse{}, fmt.Errorf("%w: %v", domain.ErrCatalogUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ArtworksResponse{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("catalog request error", "status", resp.StatusCode, "url", reqURL, "body", truncate(string(body), 200))
		return ArtworksResponse{}, fmt.Errorf("%w: %d", domain.ErrCatalogStatus, resp.StatusCode)
	}

	var out ArtworksResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return ArtworksResponse{}, fmt.Errorf("%w: %v", domain.ErrCatalogDecode, err)
	}

	c.logger.Debug("catalog response", "url", reqURL, "records", len(out.Data), "duration", time.Since(start))
	return out, nil
}

// FetchPage returns the one-based page of the catalog (GET ?page=n)
func (c *Client) FetchPage(ctx context.Context, page int) (domain.Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))

	resp, err := c.doRequest(ctx, query)
	if err != nil {
		return domain.Page{}, err
	}
	return MapPage(resp), nil
}

// FetchLimit returns the first limit records (GET ?limit=n)
func (c *Client) FetchLimit(ctx context.Context, limit int) ([]domain.Artwork, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	resp, err := c.doRequest(ctx, query)
	if err != nil {
		return nil, err
	}
	return MapArtworks(resp.Data), nil
}

// FetchChunk returns the one-based page using a custom page size (GET ?page=k&limit=m)
func (c *Client) FetchChunk(ctx context.Context, page, limit int) ([]domain.Artwork, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	resp, err := c.doRequest(ctx, query)
	if err != nil {
		return nil, err
	}
	return MapArtworks(resp.Data), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
