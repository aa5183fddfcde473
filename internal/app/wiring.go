// README: Shared construction of stage services and backends from Config.
package app

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"lambdatrip/internal/advisory"
	"lambdatrip/internal/ai"
	"lambdatrip/internal/config"
	"lambdatrip/internal/countries"
	"lambdatrip/internal/infra"
	"lambdatrip/internal/logger"
	"lambdatrip/internal/maps"
	"lambdatrip/internal/modules/analysis"
	"lambdatrip/internal/modules/enrichment"
	"lambdatrip/internal/modules/history"
	"lambdatrip/internal/modules/landmark"
	"lambdatrip/internal/storage"
	"lambdatrip/internal/vision"
	"lambdatrip/internal/weather"
)

// Closer releases whatever a constructor opened.
type Closer func()

func chain(closers ...Closer) Closer {
	return func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}

// NewEnrichment wires stage 1. Without vision credentials enrichment reports
// ErrVisionUnavailable; without a Maps key weather coordinates come only from vision.
func NewEnrichment(ctx context.Context, cfg config.Config, log *logger.Logger) (*enrichment.Service, Closer) {
	var (
		detector landmark.VisionProvider
		closer   Closer = func() {}
	)
	vc, err := vision.NewClient(ctx, log, infra.GCPClientOptions(cfg.Providers.VisionKey)...)
	if err != nil {
		log.Warn("vision client unavailable", "error", err)
	} else {
		detector = vc
		closer = func() { _ = vc.Close() }
	}

	providers := enrichment.Providers{
		Country:  countries.NewClient(),
		Advisory: advisory.NewClient(),
	}
	if cfg.Providers.GoogleMapsKey != "" {
		geo, err := maps.NewGeocodeService(cfg.Providers.GoogleMapsKey)
		if err != nil {
			log.Warn("geocode service unavailable", "error", err)
		} else {
			providers.Locator = geo
		}
	}
	if cfg.Providers.WeatherKey != "" {
		providers.Weather = weather.NewClient(cfg.Providers.WeatherKey)
	} else {
		log.Warn("no weather key configured, weather will be null")
	}

	resolver := landmark.NewResolver(maps.NewSearchService(cfg.Providers.MapsCoKey), log).
		WithTimeout(cfg.Providers.Timeout)
	agg := enrichment.NewAggregator(providers, cfg.Providers.Timeout, log)
	return enrichment.NewService(detector, resolver, agg, log), closer
}

// NewAnalysis wires stage 2. Without a Gemini key every analysis is the degraded default.
func NewAnalysis(ctx context.Context, cfg config.Config, log *logger.Logger) (*analysis.Service, Closer, error) {
	if cfg.Providers.GeminiKey == "" {
		log.Warn("GEMINI_API_KEY not set, analyses will use the fallback")
		return analysis.NewService(nil, log), func() {}, nil
	}
	gen, err := ai.NewGeminiProvider(ctx, cfg.Providers.GeminiKey, ai.Options{Model: cfg.Providers.GeminiModel})
	if err != nil {
		return nil, nil, err
	}
	return analysis.NewService(gen, log), gen.Close, nil
}

// NewStore returns the MinIO store, or an in-memory one when no endpoint is set.
func NewStore(ctx context.Context, cfg config.Config, log *logger.Logger) (storage.Store, error) {
	if cfg.Storage.Endpoint == "" {
		log.Warn("MINIO_ENDPOINT not set, using in-memory blob store")
		return storage.NewMemoryStore(), nil
	}
	blobs, err := storage.NewBlobStore(storage.Options{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	}, log)
	if err != nil {
		return nil, err
	}
	if err := blobs.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return blobs, nil
}

// NewHistory connects whichever of Postgres and Redis is configured.
func NewHistory(ctx context.Context, cfg config.Config, log *logger.Logger) (*history.Service, Closer, error) {
	var (
		db      *pgxpool.Pool
		rdb     *redis.Client
		closers []Closer
	)
	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, nil, err
		}
		db = pool
		closers = append(closers, pool.Close)
	}
	if cfg.Redis.Addr != "" {
		client, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			chain(closers...)()
			return nil, nil, err
		}
		rdb = client
		closers = append(closers, func() { _ = client.Close() })
	}
	if db == nil && rdb == nil {
		log.Warn("no history backend configured, history endpoints will report unavailable")
	}
	return history.NewService(history.NewStore(db, rdb), log), chain(closers...), nil
}
