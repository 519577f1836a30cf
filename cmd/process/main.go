package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dvloznov/invoice-extract/internal/config"
	"github.com/dvloznov/invoice-extract/internal/expense"
	"github.com/dvloznov/invoice-extract/internal/logger"
	"github.com/dvloznov/invoice-extract/internal/pipeline"
	"github.com/dvloznov/invoice-extract/internal/s3store"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	var (
		bucket      string
		region      string
		concurrency int
		keep        bool
	)

	flag.StringVar(&bucket, "bucket", "", "S3 bucket for invoice uploads (overrides INVOICE_BUCKET)")
	flag.StringVar(&region, "region", "", "AWS region (overrides AWS_REGION)")
	flag.IntVar(&concurrency, "concurrency", 0, "Number of files processed in parallel (overrides INVOICE_CONCURRENCY)")
	flag.BoolVar(&keep, "keep", false, "Keep uploaded objects instead of deleting them after processing")
	flag.Usage = printUsage
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Flags win over the environment.
	if bucket != "" {
		cfg.Bucket = bucket
	}
	if region != "" {
		cfg.Region = region
	}
	if concurrency > 0 {
		cfg.Concurrency = concurrency
	}
	if keep {
		cfg.KeepObjects = true
	}

	files := flag.Args()
	if len(files) == 0 {
		printUsage()
		os.Exit(1)
	}
	if cfg.Bucket == "" {
		log.Fatal().Msg("Error: -bucket or INVOICE_BUCKET is required")
	}

	ctx := logger.WithContext(context.Background(), log)

	store, err := s3store.New(ctx, cfg.Region)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not create object store client")
	}

	tx, err := expense.New(ctx, cfg.Region, cfg.PollInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not create analysis client")
	}

	deps := pipeline.Deps{Store: store, Analyzer: tx, Detector: tx}

	log.Info().
		Str("bucket", cfg.Bucket).
		Int("files", len(files)).
		Int("concurrency", cfg.Concurrency).
		Msg("Starting invoice processing")

	results := pipeline.Run(ctx, deps, cfg, files, os.Stdout)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	if failed > 0 {
		log.Error().Int("failed", failed).Int("total", len(results)).Msg("Some invoices failed to process")
		os.Exit(1)
	}
	log.Info().Int("processed", len(results)).Msg("All invoices processed")
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: process [flags] FILE [FILE...]")
	fmt.Fprintln(os.Stderr, "\nUploads invoice PDFs to S3, extracts expense fields, and prints the results.")
	fmt.Fprintln(os.Stderr, "\nFlags:")
	flag.PrintDefaults()
}
