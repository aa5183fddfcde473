// README: Smoke and load runner for a deployed API; executes HTTP/DB/Redis/storage checks and prints results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"lambdatrip/internal/config"
)

const (
	statusPass    = "PASS"
	statusFail    = "FAIL"
	statusPending = "PENDING"
	statusSkip    = "SKIP"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	results := NewRunner(cfg).RunAll(ctx)

	tally := make(map[string]int, 4)
	for _, r := range results {
		tally[r.Status]++
	}
	fmt.Printf("\n%d checks: %d passed, %d failed, %d pending, %d skipped\n",
		len(results), tally[statusPass], tally[statusFail], tally[statusPending], tally[statusSkip])

	if tally[statusFail] > 0 || (cfg.Strict && tally[statusPending] > 0) {
		os.Exit(1)
	}
}

type Config struct {
	BaseURL        string
	DSN            string
	RedisAddr      string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	Bucket         string
	MigrationPath  string
	ApplyMigration bool
	ImageURL       string
	Strict         bool
	Timeout        time.Duration
	Concurrency    int
	Duration       time.Duration
}

// loadConfig reads flags whose defaults come from the same variables the API uses.
func loadConfig() Config {
	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", config.EnvString("LAMBDATRIP_BENCH_BASE_URL", "http://localhost:8080"), "API base URL")
	flag.StringVar(&cfg.DSN, "dsn", os.Getenv("LAMBDATRIP_DB_DSN"), "Postgres DSN (empty skips DB checks)")
	flag.StringVar(&cfg.RedisAddr, "redis", os.Getenv("LAMBDATRIP_REDIS_ADDR"), "Redis address (empty skips Redis checks)")
	flag.StringVar(&cfg.MinioEndpoint, "minio", os.Getenv("MINIO_ENDPOINT"), "MinIO endpoint (empty skips storage checks)")
	flag.StringVar(&cfg.MinioAccessKey, "minio-access-key", os.Getenv("MINIO_ACCESS_KEY"), "MinIO access key")
	flag.StringVar(&cfg.MinioSecretKey, "minio-secret-key", os.Getenv("MINIO_SECRET_KEY"), "MinIO secret key")
	flag.StringVar(&cfg.Bucket, "bucket", config.EnvString("S3_BUCKET", "lambdatrip-analysis"), "Blob bucket")
	flag.StringVar(&cfg.MigrationPath, "migration", config.EnvString("LAMBDATRIP_BENCH_MIGRATION", "migrations/0001_landmark_runs.sql"), "Migration SQL path")
	flag.BoolVar(&cfg.ApplyMigration, "apply-migration", config.EnvBool("LAMBDATRIP_BENCH_APPLY_MIGRATION", false), "Apply migration SQL before the checks")
	flag.StringVar(&cfg.ImageURL, "image-url", os.Getenv("LAMBDATRIP_BENCH_IMAGE_URL"), "Image URL for the live enrich case (empty skips it)")
	flag.BoolVar(&cfg.Strict, "strict", config.EnvBool("LAMBDATRIP_BENCH_STRICT", false), "Fail on pending checks")
	flag.DurationVar(&cfg.Timeout, "timeout", config.EnvDuration("LAMBDATRIP_BENCH_TIMEOUT", 120*time.Second), "Total timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", config.EnvInt("LAMBDATRIP_BENCH_CONCURRENCY", 20), "Workers for the throughput check")
	flag.DurationVar(&cfg.Duration, "duration", config.EnvDuration("LAMBDATRIP_BENCH_DURATION", 10*time.Second), "Length of the throughput check")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}
