package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lambdatrip/internal/modules/landmark"
)

const (
	defaultSearchBaseURL = "https://geocode.maps.co"
	searchUserAgent      = "LambdaTrip/1.0 (contact@example.com)"
)

// SearchService is a free-text geocoder against the maps.co (Nominatim-compatible) search API.
type SearchService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewSearchService(apiKey string) *SearchService {
	return &SearchService{
		baseURL: defaultSearchBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBaseURL points the service at another host (used by tests).
func (s *SearchService) WithBaseURL(u string) *SearchService {
	s.baseURL = strings.TrimRight(u, "/")
	return s
}

type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Address     struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Hamlet       string `json:"hamlet"`
		Municipality string `json:"municipality"`
		Suburb       string `json:"suburb"`
		County       string `json:"county"`
		Country      string `json:"country"`
		CountryCode  string `json:"country_code"`
	} `json:"address"`
}

// Search returns the top match for query, or nil when there are no results.
func (s *SearchService) Search(ctx context.Context, query string) (*landmark.GeocodeHit, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")
	if s.apiKey != "" {
		params.Set("api_key", s.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocode search: build request: %w", err)
	}
	req.Header.Set("User-Agent", searchUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode search: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("geocode search: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("geocode search: decode response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	top := results[0]
	return &landmark.GeocodeHit{
		City:         top.Address.City,
		Town:         top.Address.Town,
		Village:      top.Address.Village,
		Hamlet:       top.Address.Hamlet,
		Municipality: top.Address.Municipality,
		Suburb:       top.Address.Suburb,
		County:       top.Address.County,
		Country:      top.Address.Country,
		CountryCode:  top.Address.CountryCode,
		DisplayName:  top.DisplayName,
		Lat:          parseCoord(top.Lat),
		Lng:          parseCoord(top.Lon),
	}, nil
}

func parseCoord(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}
