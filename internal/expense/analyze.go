package expense

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/dvloznov/invoice-extract/internal/logger"
)

// AnalyzeExpense runs the managed expense analysis against an uploaded
// object and returns the mapped extraction. It blocks until the analysis
// job settles, polling on the client's interval, then fetches all result
// pages. A job that finishes in any state other than SUCCEEDED is an error;
// callers decide what a failed file means for the rest of their batch.
func (c *Client) AnalyzeExpense(ctx context.Context, bucket, key string) (*Extraction, error) {
	log := logger.FromContext(ctx)

	start, err := c.tx.StartExpenseAnalysis(ctx, &textract.StartExpenseAnalysisInput{
		DocumentLocation: s3Location(bucket, key),
	})
	if err != nil {
		return nil, fmt.Errorf("start expense analysis for s3://%s/%s: %w", bucket, key, err)
	}
	jobID := aws.ToString(start.JobId)

	log.Info().Str("job_id", jobID).Str("object", key).Msg("Expense analysis job started")

	var out *textract.GetExpenseAnalysisOutput
	for {
		if err := c.wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for expense analysis job %s: %w", jobID, err)
		}

		out, err = c.tx.GetExpenseAnalysis(ctx, &textract.GetExpenseAnalysisInput{
			JobId: aws.String(jobID),
		})
		if err != nil {
			return nil, fmt.Errorf("get expense analysis for job %s: %w", jobID, err)
		}

		log.Debug().Str("job_id", jobID).Str("status", string(out.JobStatus)).Msg("Expense analysis job status")

		if out.JobStatus != types.JobStatusInProgress {
			break
		}
	}

	if out.JobStatus != types.JobStatusSucceeded {
		return nil, fmt.Errorf("expense analysis job %s finished with status %s", jobID, out.JobStatus)
	}

	docs := out.ExpenseDocuments
	token := out.NextToken
	for token != nil {
		page, err := c.tx.GetExpenseAnalysis(ctx, &textract.GetExpenseAnalysisInput{
			JobId:     aws.String(jobID),
			NextToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("get expense analysis page for job %s: %w", jobID, err)
		}
		docs = append(docs, page.ExpenseDocuments...)
		token = page.NextToken
	}

	return parseExpenseDocuments(docs), nil
}

func s3Location(bucket, key string) *types.DocumentLocation {
	return &types.DocumentLocation{
		S3Object: &types.S3Object{
			Bucket: aws.String(bucket),
			Name:   aws.String(key),
		},
	}
}
