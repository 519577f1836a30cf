package expense

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"github.com/dvloznov/invoice-extract/internal/logger"
)

// DetectText runs generic text detection against an uploaded object and
// returns the detected LINE blocks' text in the order the service emitted
// them (top-to-bottom, left-to-right per the service's convention).
func (c *Client) DetectText(ctx context.Context, bucket, key string) ([]string, error) {
	log := logger.FromContext(ctx)

	start, err := c.tx.StartDocumentTextDetection(ctx, &textract.StartDocumentTextDetectionInput{
		DocumentLocation: s3Location(bucket, key),
	})
	if err != nil {
		return nil, fmt.Errorf("start text detection for s3://%s/%s: %w", bucket, key, err)
	}
	jobID := aws.ToString(start.JobId)

	log.Info().Str("job_id", jobID).Str("object", key).Msg("Text detection job started")

	var out *textract.GetDocumentTextDetectionOutput
	for {
		if err := c.wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for text detection job %s: %w", jobID, err)
		}

		out, err = c.tx.GetDocumentTextDetection(ctx, &textract.GetDocumentTextDetectionInput{
			JobId: aws.String(jobID),
		})
		if err != nil {
			return nil, fmt.Errorf("get text detection for job %s: %w", jobID, err)
		}

		log.Debug().Str("job_id", jobID).Str("status", string(out.JobStatus)).Msg("Text detection job status")

		if out.JobStatus != types.JobStatusInProgress {
			break
		}
	}

	if out.JobStatus != types.JobStatusSucceeded {
		return nil, fmt.Errorf("text detection job %s finished with status %s", jobID, out.JobStatus)
	}

	lines := lineTexts(out.Blocks)
	token := out.NextToken
	for token != nil {
		page, err := c.tx.GetDocumentTextDetection(ctx, &textract.GetDocumentTextDetectionInput{
			JobId:     aws.String(jobID),
			NextToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("get text detection page for job %s: %w", jobID, err)
		}
		lines = append(lines, lineTexts(page.Blocks)...)
		token = page.NextToken
	}

	return lines, nil
}

func lineTexts(blocks []types.Block) []string {
	var lines []string
	for _, b := range blocks {
		if b.BlockType == types.BlockTypeLine {
			lines = append(lines, aws.ToString(b.Text))
		}
	}
	return lines
}
