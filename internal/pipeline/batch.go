package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dvloznov/invoice-extract/internal/config"
	"github.com/dvloznov/invoice-extract/internal/invoice"
	"github.com/dvloznov/invoice-extract/internal/logger"
)

// Result is the outcome of processing one input file. Exactly one of
// Record and Err is meaningfully set.
type Result struct {
	// RunID identifies this file's processing run in the logs.
	RunID string

	Path   string
	Record *invoice.Record
	Err    error
}

// Failed reports whether any result in the batch carries an error.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Run processes each input file and renders every outcome to out in input
// order. Files are independent: one file's failure is recorded in its
// Result and the batch moves on. cfg.Concurrency bounds how many files are
// in flight at once; each file's upload/analyze/fallback sequence completes
// or fails as a unit before its result is rendered.
func Run(ctx context.Context, deps Deps, cfg config.Config, paths []string, out io.Writer) []Result {
	results := make([]Result, len(paths))

	var g errgroup.Group
	// errgroup treats a limit of zero as "start nothing", so an unvalidated
	// zero-value config must still mean sequential processing.
	limit := cfg.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = processOne(ctx, deps, cfg, path)
			return nil
		})
	}
	// Workers never return errors; failures live in their Result.
	_ = g.Wait()

	for i := range results {
		r := &results[i]
		if r.Err != nil {
			fmt.Fprintf(out, "\nFailed to process %s: %v\n", r.Path, r.Err)
			continue
		}
		r.Record.Render(out)
	}

	return results
}

// processOne wraps ProcessFile with per-run logging and object cleanup. The
// uploaded object is deleted once the file is done with it, success or not,
// unless the configuration says to keep it; a failed delete is logged and
// otherwise ignored.
func processOne(ctx context.Context, deps Deps, cfg config.Config, path string) Result {
	res := Result{RunID: uuid.NewString(), Path: path}

	log := logger.FromContext(ctx).With().Str("run_id", res.RunID).Str("file", path).Logger()
	ctx = logger.WithContext(ctx, log)

	log.Info().Msg("Processing invoice")

	rec, key, err := ProcessFile(ctx, deps, cfg.Bucket, path)
	res.Record = rec
	res.Err = err

	if key != "" && !cfg.KeepObjects {
		if derr := deps.Store.Delete(ctx, cfg.Bucket, key); derr != nil {
			log.Warn().Err(derr).Msg("Could not delete uploaded object")
		}
	}

	if err != nil {
		log.Error().Err(err).Msg("Processing failed")
	} else {
		log.Info().Msg("Processing finished")
	}

	return res
}
