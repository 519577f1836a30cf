package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/dvloznov/invoice-extract/internal/config"
	"github.com/dvloznov/invoice-extract/internal/logger"
	"github.com/dvloznov/invoice-extract/internal/s3store"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	var (
		bucketName string
		objectName string
		filePath   string
	)

	flag.StringVar(&bucketName, "bucket", "", "S3 bucket name (defaults to INVOICE_BUCKET)")
	flag.StringVar(&objectName, "object", "", "S3 object key (optional; defaults to file name)")
	flag.StringVar(&filePath, "file", "", "Path to local PDF file (required)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if bucketName == "" {
		bucketName = cfg.Bucket
	}

	if bucketName == "" || filePath == "" {
		log.Fatal().Msg("Usage: upload-pdf -bucket BUCKET_NAME -file /path/to/file.pdf [-object OBJECT_KEY]")
	}

	if objectName == "" {
		objectName = s3store.ObjectKey(filePath)
	}

	ctx := context.Background()
	ctx = logger.WithContext(ctx, log)

	store, err := s3store.New(ctx, cfg.Region)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not create object store client")
	}

	log.Info().
		Str("bucket", bucketName).
		Str("object", objectName).
		Str("file", filePath).
		Msg("Uploading file to S3")

	if err := store.UploadAs(ctx, bucketName, objectName, filePath); err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}

	fmt.Printf("Uploaded %s to s3://%s/%s\n", filePath, bucketName, objectName)
}
