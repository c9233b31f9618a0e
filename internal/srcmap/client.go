package srcmap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/srcmap/evalkit/internal/apperr"
)

const DefaultTimeout = 30 * time.Second

// Client talks to a running srcmap instance over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// SearchResult is one /api/search response: the ordered card batch plus
// the service-reported cache flag.
type SearchResult struct {
	Cards    []Card
	CacheHit bool
}

type searchResponse struct {
	Results []Card `json:"results"`
	Cards   []Card `json:"cards"`
	Hit     bool   `json:"cacheHit"`
}

// Search runs one query and returns the top results. The "cards" response
// key is accepted as an alias for "results".
func (c *Client) Search(ctx context.Context, query string, limit int) (*SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, "/api/search", params)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	cards := resp.Results
	if len(cards) == 0 {
		cards = resp.Cards
	}

	return &SearchResult{Cards: cards, CacheHit: resp.Hit}, nil
}

// Health probes /api/health.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	body, err := c.get(ctx, "/api/health", nil)
	if err != nil {
		return nil, err
	}

	var h Health
	if err := json.Unmarshal(body, &h); err != nil {
		return nil, fmt.Errorf("parse health response: %w", err)
	}
	return &h, nil
}

// Flows fetches the catalogue of indexed flows.
func (c *Client) Flows(ctx context.Context) ([]Flow, error) {
	body, err := c.get(ctx, "/api/flows", nil)
	if err != nil {
		return nil, err
	}

	var flows []Flow
	if err := json.Unmarshal(body, &flows); err != nil {
		return nil, fmt.Errorf("parse flows response: %w", err)
	}
	return flows, nil
}

// FlowCards fetches all cards belonging to one flow.
func (c *Client) FlowCards(ctx context.Context, flow string) ([]Card, error) {
	params := url.Values{}
	params.Set("flow", flow)

	body, err := c.get(ctx, "/api/cards", params)
	if err != nil {
		return nil, err
	}

	var cards []Card
	if err := json.Unmarshal(body, &cards); err != nil {
		return nil, fmt.Errorf("parse cards response: %w", err)
	}
	return cards, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperr.NewTransport(c.baseURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperr.NewProtocol(path, resp.StatusCode, string(body))
	}

	return body, nil
}
