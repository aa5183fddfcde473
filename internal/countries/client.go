// README: REST Countries v3.1 client, normalized into enrichment.CountryProfile.
package countries

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lambdatrip/internal/modules/enrichment"
)

const defaultBaseURL = "https://restcountries.com/v3.1"

var ErrNotFound = errors.New("countries: no match")

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

type currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type country struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	Capital    []string                `json:"capital"`
	Region     string                  `json:"region"`
	Subregion  string                  `json:"subregion"`
	Population int64                   `json:"population"`
	Currencies json.RawMessage         `json:"currencies"`
	Languages  enrichment.LanguageList `json:"languages"`
	Flags      struct {
		PNG string `json:"png"`
		SVG string `json:"svg"`
	} `json:"flags"`
	Timezones []string `json:"timezones"`
	Area      float64  `json:"area"`
	Borders   []string `json:"borders"`
}

// ByName returns the first (most relevant) match for name.
func (c *Client) ByName(ctx context.Context, name string) (*enrichment.CountryProfile, error) {
	endpoint := c.baseURL + "/name/" + url.PathEscape(strings.TrimSpace(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("countries: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("countries: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("countries: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var results []country
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("countries: decode response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	top := results[0]
	currencies, err := orderedCurrencies(top.Currencies)
	if err != nil {
		return nil, fmt.Errorf("countries: currencies: %w", err)
	}
	return &enrichment.CountryProfile{
		Name:       enrichment.CountryName{Common: top.Name.Common, Official: top.Name.Official},
		Capital:    top.Capital,
		Region:     top.Region,
		Subregion:  top.Subregion,
		Population: top.Population,
		Currencies: currencies,
		Languages:  top.Languages,
		Flags:      enrichment.Flags{PNG: top.Flags.PNG, SVG: top.Flags.SVG},
		Timezones:  top.Timezones,
		Area:       top.Area,
		Borders:    top.Borders,
	}, nil
}

// orderedCurrencies flattens the code->currency object keeping key order.
func orderedCurrencies(raw json.RawMessage) ([]enrichment.Currency, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil {
		return nil, err
	} else if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	var out []enrichment.Currency
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		code, _ := keyTok.(string)
		var cur currency
		if err := dec.Decode(&cur); err != nil {
			return nil, err
		}
		out = append(out, enrichment.Currency{Code: code, Name: cur.Name, Symbol: cur.Symbol})
	}
	return out, nil
}
