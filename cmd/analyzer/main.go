// README: Stage-2 worker; consumes bucket notifications from Kafka and stores final reports.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"lambdatrip/internal/app"
	"lambdatrip/internal/config"
	"lambdatrip/internal/kafkaclient"
	"lambdatrip/internal/logger"
	"lambdatrip/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	if cfg.Storage.Endpoint == "" {
		lg.Fatal("MINIO_ENDPOINT is required for the analyzer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	analysisSvc, closeAnalysis, err := app.NewAnalysis(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("analysis init failed", "error", err)
	}
	defer closeAnalysis()

	store, err := app.NewStore(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("blob store init failed", "error", err)
	}

	historySvc, closeHistory, err := app.NewHistory(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("history init failed", "error", err)
	}
	defer closeHistory()

	consumer := kafkaclient.NewConsumer(kafkaclient.Config{
		Broker:  cfg.Kafka.Broker,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	}, lg)
	consumer.Start(ctx)
	defer consumer.Stop()

	lg.Info("analyzer started", "topic", cfg.Kafka.Topic, "group", cfg.Kafka.GroupID)
	worker := pipeline.NewWorker(consumer, store, analysisSvc, historySvc, lg)
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("worker stopped", "error", err)
	}
}
