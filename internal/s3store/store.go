package s3store

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Store uploads and removes invoice objects in S3. It assumes credentials
// are resolved by the SDK's default chain (env vars, shared config, IAM).
type Store struct {
	client *s3.Client
}

// New creates a Store using the default AWS configuration. An empty region
// leaves the SDK's own region resolution in effect.
func New(ctx context.Context, region string) (*Store, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Store{client: s3.NewFromConfig(cfg)}, nil
}

// NewWithClient creates a Store around an existing S3 client.
func NewWithClient(client *s3.Client) *Store {
	return &Store{client: client}
}

// ObjectKey derives the S3 object key for a local file. The key is the
// file's base name, so re-uploading the same file always hits the same key
// and overwrites the previous object.
func ObjectKey(filePath string) string {
	return filepath.Base(filePath)
}

// Upload reads the local file and puts it into the bucket under its derived
// key, returning the key.
func (s *Store) Upload(ctx context.Context, bucket, filePath string) (string, error) {
	key := ObjectKey(filePath)
	if err := s.UploadAs(ctx, bucket, key, filePath); err != nil {
		return "", err
	}
	return key, nil
}

// UploadAs puts the local file into the bucket under an explicit key. Read
// failures and upload failures are returned separately wrapped so callers
// can tell a local problem from a remote one.
func (s *Store) UploadAs(ctx context.Context, bucket, key, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open file %q: %w", filePath, err)
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object s3://%s/%s: %w", bucket, key, err)
	}

	return nil
}

// Delete removes the object from the bucket.
func (s *Store) Delete(ctx context.Context, bucket, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}
