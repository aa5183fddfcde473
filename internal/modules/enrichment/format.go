package enrichment

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const imageProbeTimeout = 10 * time.Second

// FormatWeatherSummary renders a one-line human summary, e.g. "Light rain, 12.5°C, 80% humidity".
func FormatWeatherSummary(w *WeatherSnapshot) string {
	if w == nil {
		return "Weather information unavailable"
	}
	desc := "Unknown conditions"
	if w.Conditions != nil && *w.Conditions != "" {
		desc = capitalize(*w.Conditions)
	}
	temp := "Unknown"
	if w.Temperature.Current != nil {
		temp = strconv.FormatFloat(*w.Temperature.Current, 'f', -1, 64)
	}
	humidity := "Unknown"
	if w.Humidity != nil {
		humidity = strconv.FormatFloat(*w.Humidity, 'f', -1, 64)
	}
	return fmt.Sprintf("%s, %s°C, %s%% humidity", desc, temp, humidity)
}

func capitalize(s string) string {
	s = strings.ToLower(s)
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ValidateImageURL reports whether a HEAD request to imageURL answers 200.
func ValidateImageURL(ctx context.Context, client *http.Client, imageURL string) bool {
	if client == nil {
		client = http.DefaultClient
	}
	ctx, cancel := context.WithTimeout(ctx, imageProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
