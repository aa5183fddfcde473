// README: Config loader with env defaults for HTTP, storage, messaging, and provider settings.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	minProviderTimeout = 10 * time.Second
	maxProviderTimeout = 30 * time.Second
)

type ProviderConfig struct {
	GoogleMapsKey string
	// VisionKey is optional; without it Vision uses service-account credentials.
	VisionKey     string
	WeatherKey    string
	MapsCoKey     string
	GeminiKey     string
	GeminiModel   string
	// Timeout bounds every single outbound provider call.
	Timeout time.Duration
}

type Config struct {
	Environment string
	LogMode     string
	HTTP        struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Storage struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		Bucket    string
		UseSSL    bool
	}
	Kafka struct {
		Broker  string
		Topic   string
		GroupID string
	}
	Providers ProviderConfig
}

// Local reports whether blob writes should be skipped.
func (c Config) Local() bool {
	return strings.EqualFold(c.Environment, "local")
}

// Load reads a .env file when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	cfg.Environment = EnvString("ENVIRONMENT", "development")
	cfg.LogMode = EnvString("LAMBDATRIP_LOG_MODE", cfg.Environment)
	cfg.HTTP.Addr = EnvString("LAMBDATRIP_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("LAMBDATRIP_DB_DSN")
	cfg.Redis.Addr = os.Getenv("LAMBDATRIP_REDIS_ADDR")

	cfg.Storage.Endpoint = os.Getenv("MINIO_ENDPOINT")
	cfg.Storage.AccessKey = os.Getenv("MINIO_ACCESS_KEY")
	cfg.Storage.SecretKey = os.Getenv("MINIO_SECRET_KEY")
	cfg.Storage.Bucket = EnvString("S3_BUCKET", "lambdatrip-analysis")
	cfg.Storage.UseSSL = EnvBool("MINIO_USE_SSL", false)

	cfg.Kafka.Broker = EnvString("KAFKA_BROKER", "localhost:9092")
	cfg.Kafka.Topic = EnvString("KAFKA_TOPIC", "landmark-analysis")
	cfg.Kafka.GroupID = EnvString("KAFKA_GROUP_ID", "lambdatrip-analyzer")

	cfg.Providers.GoogleMapsKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.Providers.VisionKey = os.Getenv("GOOGLE_VISION_API_KEY")
	cfg.Providers.WeatherKey = EnvString("GOOGLE_WEATHER_API_KEY", cfg.Providers.GoogleMapsKey)
	cfg.Providers.MapsCoKey = os.Getenv("GEOCODE_MAPS_API_KEY")
	cfg.Providers.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.Providers.GeminiModel = EnvString("GEMINI_MODEL", "gemini-2.0-flash")
	cfg.Providers.Timeout = EnvDuration("LAMBDATRIP_PROVIDER_TIMEOUT", 15*time.Second)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Providers.Timeout < minProviderTimeout || c.Providers.Timeout > maxProviderTimeout {
		return fmt.Errorf("config: provider timeout %s outside [%s, %s]", c.Providers.Timeout, minProviderTimeout, maxProviderTimeout)
	}
	if c.Storage.Endpoint != "" && (c.Storage.AccessKey == "" || c.Storage.SecretKey == "") {
		return fmt.Errorf("config: MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when MINIO_ENDPOINT is set")
	}
	return nil
}
