// Package geocode resolves coordinates to display addresses through the
// OpenStreetMap Nominatim service. Lookups are best-effort enrichment and
// never sit on the submission's critical path.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

func NewClient() *Client {
	return &Client{
		baseURL:   defaultBaseURL,
		userAgent: "HoneyBee Conservation App",
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBase points the client at a different Nominatim instance.
func NewClientWithBase(baseURL string) *Client {
	c := NewClient()
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

type reverseResp struct {
	DisplayName string `json:"display_name"`
}

// Reverse returns a display address for the coordinates, or an error the
// caller should treat as "no address". Nominatim's usage policy requires an
// identifying User-Agent.
func (c *Client) Reverse(ctx context.Context, lat, long float64) (string, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", long))
	q.Set("format", "json")
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode failed: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("reverse geocode non-2xx: %s", resp.Status)
	}
	var out reverseResp
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode reverse resp: %w", err)
	}
	if out.DisplayName == "" {
		return "", fmt.Errorf("no address for %f,%f", lat, long)
	}
	return out.DisplayName, nil
}

// City extracts the leading component of a display address, which the
// contact lookup uses as its city key.
func City(address string) string {
	if address == "" {
		return ""
	}
	return strings.TrimSpace(strings.SplitN(address, ",", 2)[0])
}
