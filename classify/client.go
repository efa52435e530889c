package classify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"hivewatch/models"
)

// Client talks to the external inference service that hosts the pretrained
// model. The model itself is a black box: image in, ranked labels out.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" || baseURL == "local" {
		baseURL = "http://127.0.0.1:8000"
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 25 * time.Second},
	}
}

type loadResp struct {
	Model   string `json:"model,omitempty"`
	Version string `json:"version,omitempty"`
	Loaded  bool   `json:"loaded"`
}

type classifyReq struct {
	Image  string `json:"image"` // base64 JPEG
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type classifyResp struct {
	Predictions []models.Prediction `json:"predictions"`
}

// Load asks the service to load the model into memory. The first call is
// slow; subsequent calls are cheap acknowledgements.
func (c *Client) Load(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/model/load", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("model load failed: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("model load non-2xx: %s, body: %s", resp.Status, string(data))
	}
	var out loadResp
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("decode load resp: %w", err)
	}
	if !out.Loaded {
		return fmt.Errorf("model not loaded: %s %s", out.Model, out.Version)
	}
	return nil
}

// Classify sends one preprocessed frame and returns the ranked predictions,
// highest probability first.
func (c *Client) Classify(ctx context.Context, img *Image) ([]models.Prediction, error) {
	jpg, err := img.EncodeJPEG()
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(classifyReq{
		Image:  base64.StdEncoding.EncodeToString(jpg),
		Width:  img.Width,
		Height: img.Height,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal classify req: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classify call failed: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("classify non-2xx: %s, body: %s", resp.Status, string(data))
	}
	var out classifyResp
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode classify resp: %w", err)
	}
	return out.Predictions, nil
}
