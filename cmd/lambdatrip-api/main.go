// README: Entry point; loads config, wires both stages, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lambdatrip/internal/app"
	"lambdatrip/internal/config"
	httptransport "lambdatrip/internal/http"
	"lambdatrip/internal/logger"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	enrichSvc, closeEnrich := app.NewEnrichment(ctx, cfg, lg)
	defer closeEnrich()

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

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Enrichment:       enrichSvc,
		Analysis:         analysisSvc,
		Store:            store,
		History:          historySvc,
		SkipRecordWrites: cfg.Local(),
		Log:              lg,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	lg.Info("listening", "addr", cfg.HTTP.Addr, "environment", cfg.Environment)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Fatal("server failed", "error", err)
	}
}
