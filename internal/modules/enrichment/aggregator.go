// README: Provider-merge aggregator; fans out weather, country and advisory fetches with isolated failures.
package enrichment

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"lambdatrip/internal/logger"
	"lambdatrip/internal/modules/countrycode"
	"lambdatrip/internal/modules/landmark"
	"lambdatrip/internal/types"
)

const (
	ProviderWeather  = "weather"
	ProviderCountry  = "country"
	ProviderAdvisory = "advisory"

	DefaultProviderTimeout = 15 * time.Second
)

var ErrLocationNotFound = errors.New("location not found")

// Locator turns a city/country pair into coordinates.
type Locator interface {
	Locate(ctx context.Context, city, country string) (types.Point, error)
}

type WeatherProvider interface {
	Current(ctx context.Context, p types.Point) (*WeatherSnapshot, error)
}

type CountryProvider interface {
	ByName(ctx context.Context, name string) (*CountryProfile, error)
}

type AdvisoryProvider interface {
	ByCode(ctx context.Context, code string) (*TravelAdvisory, error)
}

// Providers groups the optional collaborators. A nil provider is skipped.
type Providers struct {
	Locator  Locator
	Weather  WeatherProvider
	Country  CountryProvider
	Advisory AdvisoryProvider
}

// Enrichment is the merged fan-out result. Errors holds one entry per failed provider.
type Enrichment struct {
	Weather  *WeatherSnapshot
	Country  *CountryProfile
	Advisory *TravelAdvisory
	Errors   map[string]error
}

type Aggregator struct {
	providers Providers
	timeout   time.Duration
	log       *logger.Logger
}

func NewAggregator(p Providers, timeout time.Duration, log *logger.Logger) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Aggregator{providers: p, timeout: timeout, log: log.With("component", "enrichment.Aggregator")}
}

// Fetch runs the three provider fetches concurrently. No fetch can cancel
// another; each writes only its own slot and the slots merge after Wait.
func (a *Aggregator) Fetch(ctx context.Context, loc landmark.Location, coords *types.Point) Enrichment {
	var (
		weather  *WeatherSnapshot
		country  *CountryProfile
		advisory *TravelAdvisory
		errs     [3]error
	)

	var g errgroup.Group
	g.Go(func() error {
		weather, errs[0] = a.fetchWeather(ctx, loc, coords)
		return nil
	})
	g.Go(func() error {
		country, errs[1] = a.fetchCountry(ctx, loc)
		return nil
	})
	g.Go(func() error {
		advisory, errs[2] = a.fetchAdvisory(ctx, loc)
		return nil
	})
	_ = g.Wait()

	out := Enrichment{Weather: weather, Country: country, Advisory: advisory, Errors: map[string]error{}}
	for i, name := range []string{ProviderWeather, ProviderCountry, ProviderAdvisory} {
		if errs[i] == nil {
			continue
		}
		out.Errors[name] = errs[i]
		a.log.Warn("provider fetch failed", "provider", name, "error", errs[i])
	}
	return out
}

func (a *Aggregator) fetchWeather(ctx context.Context, loc landmark.Location, coords *types.Point) (*WeatherSnapshot, error) {
	city, country := value(loc.City), value(loc.Country)
	if a.providers.Weather == nil || city == "" || country == "" {
		a.log.Debug("skipping weather fetch", "city", city, "country", country)
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var p types.Point
	switch {
	case coords != nil:
		p = *coords
	case a.providers.Locator != nil:
		located, err := a.providers.Locator.Locate(ctx, city, country)
		if err != nil {
			return nil, err
		}
		p = located
	default:
		a.log.Debug("skipping weather fetch, no coordinates", "city", city, "country", country)
		return nil, nil
	}

	snap, err := a.providers.Weather.Current(ctx, p)
	if err != nil || snap == nil {
		return nil, err
	}
	out := *snap
	out.Location = WeatherLocation{City: city, Country: country, Coordinates: p}
	return &out, nil
}

func (a *Aggregator) fetchCountry(ctx context.Context, loc landmark.Location) (*CountryProfile, error) {
	country := value(loc.Country)
	if a.providers.Country == nil || country == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.providers.Country.ByName(ctx, country)
}

func (a *Aggregator) fetchAdvisory(ctx context.Context, loc landmark.Location) (*TravelAdvisory, error) {
	if a.providers.Advisory == nil {
		return nil, nil
	}
	country := value(loc.Country)
	if value(loc.City) == "" {
		a.log.Debug("skipping advisory fetch, no city", "country", country)
		return nil, nil
	}
	code := value(loc.CountryCode)
	if code == "" {
		mapped, ok := countrycode.Lookup(country)
		if !ok {
			a.log.Debug("skipping advisory fetch, no country code", "country", country)
			return nil, nil
		}
		code = mapped
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	adv, err := a.providers.Advisory.ByCode(ctx, code)
	if err != nil || adv == nil {
		return nil, err
	}
	out := *adv
	out.Country = country
	out.CountryCode = code
	return &out, nil
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
