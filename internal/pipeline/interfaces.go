package pipeline

import (
	"context"

	"github.com/dvloznov/invoice-extract/internal/expense"
)

// ObjectStore is an interface for the store invoices are uploaded to.
// This interface enables mocking and testing of storage functionality.
type ObjectStore interface {
	// Upload puts a local file into the bucket and returns the object key.
	// The key is derived from the file name, so uploading the same file
	// again overwrites the same object.
	Upload(ctx context.Context, bucket, filePath string) (string, error)

	// Delete removes an uploaded object.
	Delete(ctx context.Context, bucket, key string) error
}

// ExpenseAnalyzer is an interface for the managed expense-analysis call.
type ExpenseAnalyzer interface {
	AnalyzeExpense(ctx context.Context, bucket, key string) (*expense.Extraction, error)
}

// TextDetector is an interface for the generic text-detection call used as
// the payment-terms fallback.
type TextDetector interface {
	DetectText(ctx context.Context, bucket, key string) ([]string, error)
}

// Deps bundles the external collaborators of the processing pipeline so
// tests can substitute fakes without a live network dependency.
type Deps struct {
	Store    ObjectStore
	Analyzer ExpenseAnalyzer
	Detector TextDetector
}
