package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"lambdatrip/internal/app"
	"lambdatrip/internal/config"
	"lambdatrip/internal/logger"
	"lambdatrip/internal/modules/analysis"
)

func main() {
	imageURL := flag.String("image-url", "", "public URL of a landmark photo")
	verbose := flag.Bool("v", false, "log provider calls")
	flag.Parse()
	if *imageURL == "" {
		log.Fatal("-image-url is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg := logger.Nop()
	if *verbose {
		if lg, err = logger.New("development"); err != nil {
			log.Fatal(err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	enrichSvc, closeEnrich := app.NewEnrichment(ctx, cfg, lg)
	defer closeEnrich()
	analysisSvc, closeAnalysis, err := app.NewAnalysis(ctx, cfg, lg)
	if err != nil {
		log.Fatalf("Failed to initialize analysis: %v", err)
	}
	defer closeAnalysis()

	fmt.Printf("Image: %s\n", *imageURL)
	rec, err := enrichSvc.Enrich(ctx, *imageURL)
	if err != nil {
		log.Fatalf("Enrichment failed: %v", err)
	}
	fmt.Printf("Landmark: %s (%.2f)\n", rec.Landmark.Name, rec.Landmark.Confidence)

	res, err := analysisSvc.Analyze(ctx, rec)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}
	if res.Degraded {
		fmt.Println("Note: model output unavailable, showing fallback analysis")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(analysis.NewReport(rec, res, time.Now().UTC())); err != nil {
		log.Fatal(err)
	}
}
