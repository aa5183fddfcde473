// README: Enrichment module models (weather, country profile, advisory, enriched record).
package enrichment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lambdatrip/internal/modules/landmark"
	"lambdatrip/internal/types"
)

var (
	ErrNoImage           = errors.New("no image URL provided")
	ErrNoLandmark        = landmark.ErrNoLandmark
	ErrVisionUnavailable = errors.New("vision provider not configured")
)

type Temperature struct {
	Current   *float64 `json:"current"`
	FeelsLike *float64 `json:"feels_like"`
	// Min and Max are never reported by current-conditions sources.
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

type WeatherLocation struct {
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Coordinates types.Point `json:"coordinates"`
}

type WeatherSnapshot struct {
	Location            WeatherLocation `json:"location"`
	Temperature         Temperature     `json:"temperature"`
	Conditions          *string         `json:"conditions"`
	Condition           *string         `json:"condition"`
	Humidity            *float64        `json:"humidity"`
	WindSpeed           *float64        `json:"wind_speed"`
	PrecipitationChance *float64        `json:"precipitation_chance"`
	UVIndex             *float64        `json:"uv_index"`
	IsDaytime           *bool           `json:"is_daytime"`
	CapturedAt          time.Time       `json:"timestamp"`
}

type CountryName struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

type Currency struct {
	Code   string `json:"code,omitempty"`
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

type Flags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
}

// Language is one code/name entry of a LanguageList.
type Language struct {
	Code string
	Name string
}

// LanguageList is a code->name mapping that keeps provider order.
// It encodes as a JSON object.
type LanguageList []Language

func (l LanguageList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, lang := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(lang.Code)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(lang.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (l *LanguageList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("languages: expected object, got %v", tok)
	}
	out := LanguageList{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var name string
		if err := dec.Decode(&name); err != nil {
			return fmt.Errorf("languages: %s: %w", key, err)
		}
		out = append(out, Language{Code: key, Name: name})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*l = out
	return nil
}

type CountryProfile struct {
	Name       CountryName  `json:"name"`
	Capital    []string     `json:"capital"`
	Region     string       `json:"region"`
	Subregion  string       `json:"subregion"`
	Population int64        `json:"population"`
	Currencies []Currency   `json:"currencies"`
	Languages  LanguageList `json:"languages"`
	Flags      Flags        `json:"flags"`
	Timezones  []string     `json:"timezones"`
	Area       float64      `json:"area"`
	Borders    []string     `json:"borders"`
}

// AdvisoryDetails accepts either a JSON string or a list of strings.
type AdvisoryDetails struct {
	Text  string
	Items []string
}

func (d AdvisoryDetails) MarshalJSON() ([]byte, error) {
	if d.Items != nil {
		return json.Marshal(d.Items)
	}
	return json.Marshal(d.Text)
}

func (d *AdvisoryDetails) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*d = AdvisoryDetails{}
		return nil
	case len(trimmed) > 0 && trimmed[0] == '[':
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*d = AdvisoryDetails{Items: items}
		return nil
	default:
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*d = AdvisoryDetails{Text: s}
		return nil
	}
}

type TravelAdvisory struct {
	Country     string          `json:"country"`
	CountryCode string          `json:"country_code"`
	Level       *string         `json:"level"`
	Summary     string          `json:"summary"`
	Details     AdvisoryDetails `json:"details"`
	LastUpdated string          `json:"last_updated"`
	Advice      []string        `json:"advice"`
}

// Record is the stage-one output handed to narrative analysis.
type Record struct {
	Landmark       landmark.Candidate `json:"landmark"`
	Location       landmark.Location  `json:"location"`
	LocationSource string             `json:"location_source,omitempty"`
	Weather        *WeatherSnapshot   `json:"weather"`
	CountryInfo    *CountryProfile    `json:"country_info"`
	TravelAdvisory *TravelAdvisory    `json:"travel_advisory"`
	ImageURL       string             `json:"image_url"`
	CreatedAt      time.Time          `json:"created_at"`
}
