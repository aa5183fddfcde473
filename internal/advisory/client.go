// README: Smartraveller advisory client, normalized into enrichment.TravelAdvisory.
package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lambdatrip/internal/modules/enrichment"
)

const defaultBaseURL = "https://smartraveller.kevle.xyz/api"

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient() *Client {
	return &Client{baseURL: defaultBaseURL, http: &http.Client{Timeout: 30 * time.Second}}
}

// WithBaseURL points the client at another host (used by tests).
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

type advisoryResponse struct {
	Level       *string                    `json:"level"`
	Summary     string                     `json:"summary"`
	Details     enrichment.AdvisoryDetails `json:"details"`
	LastUpdated string                     `json:"last_updated"`
	Advice      []string                   `json:"advice"`
}

// ByCode fetches the advisory for a country code. The code is sent lower-cased.
func (c *Client) ByCode(ctx context.Context, code string) (*enrichment.TravelAdvisory, error) {
	endpoint := c.baseURL + "/advisory?country=" + url.QueryEscape(strings.ToLower(strings.TrimSpace(code)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("advisory: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("advisory: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("advisory: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var ar advisoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("advisory: decode response: %w", err)
	}
	if ar.Level != nil && strings.TrimSpace(*ar.Level) == "" {
		ar.Level = nil
	}
	return &enrichment.TravelAdvisory{
		CountryCode: strings.ToUpper(code),
		Level:       ar.Level,
		Summary:     ar.Summary,
		Details:     ar.Details,
		LastUpdated: ar.LastUpdated,
		Advice:      ar.Advice,
	}, nil
}
