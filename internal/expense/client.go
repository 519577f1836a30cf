// Package expense wraps the Textract expense-analysis and text-detection
// APIs behind the small contracts the processing pipeline consumes. Both
// operations are asynchronous on the service side; the client starts a job
// and polls until it settles, fetching every result page.
package expense

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/textract"
)

// TextractAPI is the subset of the Textract client the wrapper calls.
type TextractAPI interface {
	StartExpenseAnalysis(ctx context.Context, params *textract.StartExpenseAnalysisInput, optFns ...func(*textract.Options)) (*textract.StartExpenseAnalysisOutput, error)
	GetExpenseAnalysis(ctx context.Context, params *textract.GetExpenseAnalysisInput, optFns ...func(*textract.Options)) (*textract.GetExpenseAnalysisOutput, error)
	StartDocumentTextDetection(ctx context.Context, params *textract.StartDocumentTextDetectionInput, optFns ...func(*textract.Options)) (*textract.StartDocumentTextDetectionOutput, error)
	GetDocumentTextDetection(ctx context.Context, params *textract.GetDocumentTextDetectionInput, optFns ...func(*textract.Options)) (*textract.GetDocumentTextDetectionOutput, error)
}

// Client calls Textract against objects already uploaded to S3.
type Client struct {
	tx           TextractAPI
	pollInterval time.Duration
}

// New creates a Client using the default AWS configuration.
func New(ctx context.Context, region string, pollInterval time.Duration) (*Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return NewWithAPI(textract.NewFromConfig(cfg), pollInterval), nil
}

// NewWithAPI creates a Client around an existing Textract client.
func NewWithAPI(tx TextractAPI, pollInterval time.Duration) *Client {
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	return &Client{tx: tx, pollInterval: pollInterval}
}

// wait blocks for one poll interval or until the context is cancelled.
func (c *Client) wait(ctx context.Context) error {
	timer := time.NewTimer(c.pollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
