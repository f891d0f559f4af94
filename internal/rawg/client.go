package rawg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.rawg.io/api"

// RAWG rejects requests without a User-Agent.
const userAgent = "MyGameList/1.0 (https://localhost)"

// Client talks to the RAWG games database.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL points the client at an alternate endpoint, used by
// tests against a stub server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool { return c.apiKey != "" }

type gameResult struct {
	BackgroundImage string `json:"background_image"`
}

type searchResponse struct {
	Results []gameResult `json:"results"`
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rawg: unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// SearchCover returns the background image of the best search match for
// title, or "" when there is no match or the match has no image.
func (c *Client) SearchCover(ctx context.Context, title string) (string, error) {
	u := fmt.Sprintf("%s/games?key=%s&search=%s", c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(title))
	body, err := c.get(ctx, u)
	if err != nil {
		return "", err
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return "", err
	}
	if len(sr.Results) == 0 {
		return "", nil
	}
	return sr.Results[0].BackgroundImage, nil
}

// Detail fetches the raw detail payload for a RAWG game id, passed through
// unmodified by the cover endpoint.
func (c *Client) Detail(ctx context.Context, id string) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/games/%s?key=%s", c.baseURL, url.PathEscape(id), url.QueryEscape(c.apiKey))
	return c.get(ctx, u)
}

// DetailCover returns the background image from a game's detail payload, or
// "" when the game has none.
func (c *Client) DetailCover(ctx context.Context, id string) (string, error) {
	body, err := c.Detail(ctx, id)
	if err != nil {
		return "", err
	}
	var g gameResult
	if err := json.Unmarshal(body, &g); err != nil {
		return "", err
	}
	return g.BackgroundImage, nil
}
