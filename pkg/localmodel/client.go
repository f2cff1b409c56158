// Package localmodel is a thin HTTP client for an on-device language model
// runtime (llama.cpp server wire format).
package localmodel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Status is the runtime's readiness.
type Status string

const (
	StatusReady       Status = "ready"
	StatusLoading     Status = "loading"
	StatusUnavailable Status = "unavailable"
)

// Client talks to a local model runtime over HTTP.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new local model client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type healthResponse struct {
	Status string `json:"status"`
}

// Status probes the runtime's health endpoint. Transport errors read as
// unavailable, not as failures.
func (c *Client) Status(ctx context.Context) Status {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return StatusUnavailable
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return StatusUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return StatusLoading
	}
	if resp.StatusCode != http.StatusOK {
		return StatusUnavailable
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return StatusUnavailable
	}
	switch health.Status {
	case "ok":
		return StatusReady
	case "loading model":
		return StatusLoading
	default:
		return StatusUnavailable
	}
}

type completionRequest struct {
	Prompt      string  `json:"prompt"`
	NPredict    int     `json:"n_predict"`
	Temperature float64 `json:"temperature"`
}

type completionResponse struct {
	Content string `json:"content"`
}

// Generate runs one completion and returns the generated text.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Prompt:      prompt,
		NPredict:    maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/completion", bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("model error: %s", string(body))
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("failed to decode completion: %w", err)
	}
	return strings.TrimSpace(completion.Content), nil
}
