// README: Google Weather current-conditions client, normalized into enrichment.WeatherSnapshot.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lambdatrip/internal/modules/enrichment"
	"lambdatrip/internal/types"
)

const defaultBaseURL = "https://weather.googleapis.com"

var ErrEmptyPayload = errors.New("weather: empty payload")

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	now     func() time.Time
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithBaseURL points the client at another host (used by tests).
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

type degrees struct {
	Degrees *float64 `json:"degrees"`
}

type conditions struct {
	Temperature      *degrees `json:"temperature"`
	FeelsLike        *degrees `json:"feelsLikeTemperature"`
	WeatherCondition *struct {
		Type        string `json:"type"`
		Description *struct {
			Text string `json:"text"`
		} `json:"description"`
	} `json:"weatherCondition"`
	RelativeHumidity *float64 `json:"relativeHumidity"`
	Wind             *struct {
		Speed *struct {
			Value *float64 `json:"value"`
		} `json:"speed"`
	} `json:"wind"`
	Precipitation *struct {
		Probability *struct {
			Percent *float64 `json:"percent"`
		} `json:"probability"`
	} `json:"precipitation"`
	IsDaytime *bool    `json:"isDaytime"`
	UVIndex   *float64 `json:"uvIndex"`
}

// The API answers either a flat object or a currentConditions list.
type lookupResponse struct {
	conditions
	CurrentConditions []conditions `json:"currentConditions"`
}

// Current fetches current conditions at p.
func (c *Client) Current(ctx context.Context, p types.Point) (*enrichment.WeatherSnapshot, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("location.latitude", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	params.Set("location.longitude", strconv.FormatFloat(p.Lng, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/currentConditions:lookup?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("weather: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("weather: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var lr lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("weather: decode response: %w", err)
	}
	cur := lr.conditions
	if len(lr.CurrentConditions) > 0 {
		cur = lr.CurrentConditions[0]
	}
	if cur.empty() {
		return nil, ErrEmptyPayload
	}
	return cur.snapshot(p, c.now()), nil
}

func (c conditions) empty() bool {
	return c.Temperature == nil && c.FeelsLike == nil && c.WeatherCondition == nil &&
		c.RelativeHumidity == nil && c.Wind == nil && c.Precipitation == nil &&
		c.IsDaytime == nil && c.UVIndex == nil
}

func (c conditions) snapshot(p types.Point, at time.Time) *enrichment.WeatherSnapshot {
	snap := &enrichment.WeatherSnapshot{
		Location:   enrichment.WeatherLocation{Coordinates: p},
		Humidity:   c.RelativeHumidity,
		IsDaytime:  c.IsDaytime,
		UVIndex:    c.UVIndex,
		CapturedAt: at,
	}
	if c.Temperature != nil {
		snap.Temperature.Current = c.Temperature.Degrees
	}
	if c.FeelsLike != nil {
		snap.Temperature.FeelsLike = c.FeelsLike.Degrees
	}
	if wc := c.WeatherCondition; wc != nil {
		snap.Condition = nonEmpty(wc.Type)
		if wc.Description != nil {
			snap.Conditions = nonEmpty(wc.Description.Text)
		}
		if snap.Conditions == nil {
			snap.Conditions = snap.Condition
		}
	}
	if c.Wind != nil && c.Wind.Speed != nil {
		snap.WindSpeed = c.Wind.Speed.Value
	}
	if c.Precipitation != nil && c.Precipitation.Probability != nil {
		snap.PrecipitationChance = c.Precipitation.Probability.Percent
	}
	return snap
}

func nonEmpty(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}
