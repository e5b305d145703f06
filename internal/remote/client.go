package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// VersionEntry is one published version of a package on a channel
type VersionEntry struct {
	Version string `json:"version"`
	Channel string `json:"channel"`
	URL     string `json:"url"`
	SHA256  string `json:"sha256"`
	Size    int64  `json:"size"`
}

// IndexResponse is the channel index answer for one package name
type IndexResponse struct {
	Name     string         `json:"name"`
	Versions []VersionEntry `json:"versions"`
}

// Client queries a package channel's JSON index
type Client struct {
	base string
	http *http.Client
}

// NewClient creates an index client for a channel base URL
func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Index fetches the published versions of a package from the channel
func (c *Client) Index(ctx context.Context, name string) (*IndexResponse, error) {
	endpoint := fmt.Sprintf("%s/v1/packages/%s", c.base, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index request failed: %s", resp.Status)
	}

	var index IndexResponse
	if err := json.NewDecoder(resp.Body).Decode(&index); err != nil {
		return nil, fmt.Errorf("malformed index response: %w", err)
	}

	return &index, nil
}
