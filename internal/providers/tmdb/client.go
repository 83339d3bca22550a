// Package tmdb is a minimal client for the catalog search endpoint.
package tmdb

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/justchokingaround/vidstream/internal/config"
	"github.com/justchokingaround/vidstream/internal/media"
	providerhttp "github.com/justchokingaround/vidstream/internal/providers/http"
)

// Client talks to the catalog API
type Client struct {
	baseURL    string
	httpClient *providerhttp.Client
	logger     *slog.Logger
}

// NewClient creates a client from the tmdb section of the config
func NewClient(cfg config.TMDBConfig, debug bool, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: providerhttp.NewClient(providerhttp.ClientConfig{
			Timeout:   cfg.Timeout,
			UserAgent: cfg.UserAgent,
			Debug:     debug,
			Logger:    logger,
		}),
		logger: logger,
	}
}

// SearchMulti queries movies and series at once and returns the playable
// entries (movie or tv with a poster) in catalog order.
func (c *Client) SearchMulti(ctx context.Context, apiKey, query string) ([]media.Item, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingCredential
	}

	resp, err := c.httpClient.Get(ctx, c.baseURL+"/search/multi", map[string]string{
		"api_key": apiKey,
		"query":   query,
		"page":    "1",
	})
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.IsError() || resp.StatusCode() >= 300 {
		msg := "Search failed"
		var errResp ErrorResponse
		if err := json.Unmarshal(resp.Body(), &errResp); err == nil && errResp.StatusMessage != "" {
			msg = errResp.StatusMessage
		}
		c.logger.Warn("catalog search rejected", "status", resp.StatusCode(), "message", msg)
		return nil, &RemoteError{StatusCode: resp.StatusCode(), Message: msg}
	}

	var body SearchResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, &RemoteError{StatusCode: resp.StatusCode(), Message: "failed to parse response: " + err.Error()}
	}

	items := FilterPlayable(body.Results)
	c.logger.Debug("catalog search done", "query", query, "raw", len(body.Results), "playable", len(items))
	return items, nil
}

// FilterPlayable keeps movies and series that have a poster
func FilterPlayable(results []SearchResult) []media.Item {
	items := make([]media.Item, 0, len(results))
	for _, r := range results {
		kind, ok := media.ParseKind(r.MediaType)
		if !ok || r.PosterPath == "" {
			continue
		}
		items = append(items, media.Item{
			ID:          r.ID,
			Kind:        kind,
			Title:       r.DisplayTitle(),
			ReleaseDate: r.Date(),
			Rating:      r.VoteAverage,
			PosterPath:  r.PosterPath,
			Overview:    r.Overview,
		})
	}
	return items
}
