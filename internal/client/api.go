package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	affirmPath       = "/api/affirm"
	defaultTimeout   = 15 * time.Second
	maxResponseBytes = 64 << 10
)

// API generates affirmation blocks.
type API interface {
	Generate(ctx context.Context, prompt string, count int) (string, error)
}

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("affirm endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("affirm endpoint returned status %d: %s", e.StatusCode, e.Message)
}

// HTTPClient calls POST /api/affirm on a Mind Loop server.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type affirmRequest struct {
	Prompt string `json:"prompt"`
	Count  int    `json:"count"`
}

type affirmResponse struct {
	Affirmations json.RawMessage `json:"affirmations"`
	Error        string          `json:"error"`
}

// Generate posts the prompt and returns the response block.
func (c *HTTPClient) Generate(ctx context.Context, prompt string, count int) (string, error) {
	body, err := json.Marshal(affirmRequest{Prompt: prompt, Count: count})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+affirmPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call affirm endpoint: %w", err)
	}
	defer resp.Body.Close()

	var decoded affirmResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&decoded); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return "", &StatusError{StatusCode: resp.StatusCode}
		}
		return "", fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{StatusCode: resp.StatusCode, Message: decoded.Error}
	}

	return decodeAffirmations(decoded.Affirmations)
}

// decodeAffirmations accepts either a newline-joined string or a list of lines.
func decodeAffirmations(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", errors.New("response has no affirmations")
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, nil
	}

	var lines []string
	if err := json.Unmarshal(raw, &lines); err != nil {
		return "", fmt.Errorf("decode affirmations: %w", err)
	}
	return strings.Join(lines, "\n"), nil
}
