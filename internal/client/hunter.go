package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	cb "github.com/sony/gobreaker"
)

const (
	defaultHunterBaseURL = "https://api.hunter.io"
	hunterTimeout        = 5 * time.Second
)

// HunterClient queries the Hunter email-finder API.
type HunterClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	breaker *cb.CircuitBreaker
}

// NewHunterClient builds a client. An empty baseURL targets the public API.
func NewHunterClient(client *http.Client, baseURL, apiKey string, log zerolog.Logger) *HunterClient {
	if client == nil {
		client = &http.Client{Timeout: hunterTimeout}
	}
	if baseURL == "" {
		baseURL = defaultHunterBaseURL
	}
	return &HunterClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		breaker: newBreaker("hunter", log),
	}
}

// FindEmail returns the best-guess address for fullName, or "" when the
// response carries none.
func (c *HunterClient) FindEmail(ctx context.Context, fullName string) (string, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.findEmail(ctx, fullName)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (c *HunterClient) findEmail(ctx context.Context, fullName string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, hunterTimeout)
	defer cancel()

	query := url.Values{}
	query.Set("full_name", fullName)
	query.Set("api_key", c.apiKey)
	endpoint := c.baseURL + "/v2/email-finder?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create hunter request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("hunter request failed: %w", redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("hunter error (status %d): %s", resp.StatusCode, extractAPIError(resp.Body))
	}

	var payload struct {
		Data *struct {
			Email *string `json:"email"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil && err != io.EOF {
		return "", fmt.Errorf("could not decode hunter response: %w", err)
	}
	if payload.Data == nil || payload.Data.Email == nil {
		return "", nil
	}
	return strings.TrimSpace(*payload.Data.Email), nil
}

// extractAPIError pulls a readable message out of an error body.
func extractAPIError(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return "service returned an error"
	}

	var payload struct {
		Error  any `json:"error"`
		Errors []struct {
			Details string `json:"details"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		for _, e := range payload.Errors {
			if e.Details != "" {
				return e.Details
			}
			if e.Message != "" {
				return e.Message
			}
		}
		switch v := payload.Error.(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if msg, ok := v["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return strings.TrimSpace(string(data))
}

// redactKey keeps API keys embedded in request URLs out of error messages.
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), key, "REDACTED"))
}
