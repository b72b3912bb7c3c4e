// Package catalog fetches the votable dish list from the upstream feed,
// falling back to a fixed built-in catalog whenever the feed is unusable.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mkale/dishpoll/internal/metrics"
	"github.com/mkale/dishpoll/internal/models"
)

// DefaultFeedURL is the upstream dish feed the original poll used.
const DefaultFeedURL = "https://raw.githubusercontent.com/syook/react-dishpoll/main/db.json"

// maxFeedSize caps how much of the feed body is read.
const maxFeedSize = 1 << 20

// Client fetches the dish catalog over HTTP.
type Client struct {
	url    string
	httpc  *http.Client
	logger *slog.Logger
}

// NewClient creates a catalog client for the given feed URL.
// An empty url selects DefaultFeedURL.
func NewClient(url string, logger *slog.Logger) *Client {
	if url == "" {
		url = DefaultFeedURL
	}
	return &Client{
		url:    url,
		httpc:  &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// Fetch performs a single attempt against the feed, with no retries or
// backoff. Any transport, status or decode failure falls back to the
// built-in catalog; the caller never sees an error.
func (c *Client) Fetch(ctx context.Context) []models.Dish {
	dishes, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn("dish feed unavailable, serving fallback catalog", "url", c.url, "error", err)
		metrics.CatalogFallbacks.Inc()
		return Fallback()
	}
	return dishes
}

func (c *Client) fetch(ctx context.Context) ([]models.Dish, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dish feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dish feed returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read dish feed: %w", err)
	}

	return decodeFeed(raw)
}

// wireDish tolerates the field spellings the feed has used over time:
// the original upstream names dishes "dishName", newer payloads use "name".
type wireDish struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DishName    string `json:"dishName"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func (w wireDish) toDish() models.Dish {
	name := w.Name
	if name == "" {
		name = w.DishName
	}
	return models.Dish{
		ID:          w.ID,
		Name:        name,
		Description: w.Description,
		Image:       w.Image,
	}
}

// decodeFeed accepts a bare array, {"dishes":[...]} or {"data":[...]}.
// Any other shape is an error and triggers the fallback upstream.
func decodeFeed(raw []byte) ([]models.Dish, error) {
	// A literal null also unmarshals into a slice without error; only a
	// real array counts as the bare-array shape.
	var list []wireDish
	if err := json.Unmarshal(raw, &list); err == nil && list != nil {
		return convert(list), nil
	}

	var envelope struct {
		Dishes []wireDish `json:"dishes"`
		Data   []wireDish `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode dish feed: %w", err)
	}
	switch {
	case envelope.Dishes != nil:
		return convert(envelope.Dishes), nil
	case envelope.Data != nil:
		return convert(envelope.Data), nil
	}
	return nil, errors.New("dish feed has no recognizable shape")
}

func convert(list []wireDish) []models.Dish {
	dishes := make([]models.Dish, len(list))
	for i, w := range list {
		dishes[i] = w.toDish()
	}
	return dishes
}
