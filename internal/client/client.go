// Package client provides an HTTP client for the kwartayo JSON API.
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/evcraddock/kwartayo/internal/listing"
	"github.com/evcraddock/kwartayo/internal/search"
)

// Client is an HTTP client for the kwartayo API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListProperties returns the active properties matching c.
func (c *Client) ListProperties(criteria search.PropertyCriteria) ([]listing.Property, error) {
	var props []listing.Property
	if err := c.get("/api/properties", criteria.Values(), &props); err != nil {
		return nil, err
	}
	return props, nil
}

// GetProperty returns a single active property.
func (c *Client) GetProperty(id int64) (*listing.Property, error) {
	var p listing.Property
	if err := c.get("/api/properties/"+strconv.FormatInt(id, 10), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListRoommates returns the roommate profiles matching criteria.
func (c *Client) ListRoommates(criteria search.RoommateCriteria) ([]listing.Roommate, error) {
	var roommates []listing.Roommate
	if err := c.get("/api/roommates", criteria.Values(), &roommates); err != nil {
		return nil, err
	}
	return roommates, nil
}

// Recommendations returns active properties by match score. A limit of
// zero returns them all.
func (c *Client) Recommendations(limit int) ([]listing.Property, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var props []listing.Property
	if err := c.get("/api/recommendations", q, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// Health checks that the server is up.
func (c *Client) Health() error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.get("/health", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("server status %q", resp.Status)
	}
	return nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, query url.Values, result any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequest("GET", target, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, result)
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("closing response body", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("server error: %s", http.StatusText(resp.StatusCode))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
