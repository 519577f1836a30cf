package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultPollInterval = 5 * time.Second
	DefaultConcurrency  = 1
)

// Config holds the runtime settings for invoice processing. The bucket is
// carried here explicitly so the pipeline entry point receives it as a value
// and tests can substitute a fake store against any bucket name.
type Config struct {
	// Bucket is the S3 bucket invoices are uploaded to before analysis.
	Bucket string

	// Region is the AWS region; empty means the SDK's own resolution.
	Region string

	// PollInterval is how often asynchronous analysis jobs are polled.
	PollInterval time.Duration

	// Concurrency is the number of files processed in parallel.
	Concurrency int

	// KeepObjects disables deleting uploaded objects after processing.
	KeepObjects bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Bucket:       os.Getenv("INVOICE_BUCKET"),
		Region:       os.Getenv("AWS_REGION"),
		PollInterval: DefaultPollInterval,
		Concurrency:  DefaultConcurrency,
	}

	if v := os.Getenv("INVOICE_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse INVOICE_POLL_INTERVAL %q: %w", v, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("INVOICE_POLL_INTERVAL must be positive, got %q", v)
		}
		cfg.PollInterval = d
	}

	if v := os.Getenv("INVOICE_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse INVOICE_CONCURRENCY %q: %w", v, err)
		}
		if n < 1 {
			return Config{}, fmt.Errorf("INVOICE_CONCURRENCY must be at least 1, got %d", n)
		}
		cfg.Concurrency = n
	}

	if v := os.Getenv("INVOICE_KEEP_OBJECTS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse INVOICE_KEEP_OBJECTS %q: %w", v, err)
		}
		cfg.KeepObjects = b
	}

	return cfg, nil
}
