package pipeline

import (
	"context"
	"fmt"

	"github.com/dvloznov/invoice-extract/internal/invoice"
	"github.com/dvloznov/invoice-extract/internal/logger"
)

// ProcessFile runs the fixed per-file sequence against one local invoice:
// upload to the bucket, expense analysis, and, only when the analysis came
// back without payment terms, the text-detection fallback.
//
// The returned key is the uploaded object's key, or "" when the upload
// never completed; callers that clean up after themselves need it even when
// a later step failed. A fallback failure is swallowed: the record is still
// returned, just without payment terms.
func ProcessFile(ctx context.Context, deps Deps, bucket, filePath string) (*invoice.Record, string, error) {
	log := logger.FromContext(ctx)

	key, err := deps.Store.Upload(ctx, bucket, filePath)
	if err != nil {
		if isLocalReadError(err) {
			return nil, "", fmt.Errorf("%w: %w", ErrReadFile, err)
		}
		return nil, "", fmt.Errorf("%w: %w", ErrUpload, err)
	}

	log.Info().Str("bucket", bucket).Str("key", key).Msg("Invoice uploaded")

	x, err := deps.Analyzer.AnalyzeExpense(ctx, bucket, key)
	if err != nil {
		return nil, key, fmt.Errorf("%w: %w", ErrAnalysis, err)
	}

	rec := &invoice.Record{
		SourcePath:    filePath,
		Vendor:        x.Vendor,
		InvoiceNumber: x.InvoiceNumber,
		InvoiceDate:   x.InvoiceDate,
		Total:         x.Total,
		PaymentTerms:  x.PaymentTerms,
		LineItems:     x.LineItems,
	}

	if rec.PaymentTerms == "" {
		log.Info().Str("key", key).Msg("No payment terms from analysis, running text-detection fallback")

		lines, err := deps.Detector.DetectText(ctx, bucket, key)
		if err != nil {
			// Non-fatal: report the record without payment terms.
			log.Warn().Err(fmt.Errorf("%w: %w", ErrDetectText, err)).Msg("Payment-terms fallback failed")
			return rec, key, nil
		}

		if terms := invoice.FindPaymentTerms(lines); terms != "" {
			rec.PaymentTerms = terms
			log.Info().Str("terms", terms).Msg("Payment terms recovered by fallback")
		} else {
			log.Info().Msg("Fallback found no payment terms")
		}
	}

	return rec, key, nil
}
