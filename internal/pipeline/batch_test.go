package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dvloznov/invoice-extract/internal/config"
	"github.com/dvloznov/invoice-extract/internal/expense"
	"github.com/dvloznov/invoice-extract/internal/pipeline"
)

func testConfig() config.Config {
	return config.Config{
		Bucket:      testBucket,
		Concurrency: 1,
	}
}

func TestRun_FailureDoesNotStopBatch(t *testing.T) {
	analyzer := &MockExpenseAnalyzer{
		AnalyzeExpenseFunc: func(ctx context.Context, bucket, key string) (*expense.Extraction, error) {
			if key == "bad.pdf" {
				return nil, errors.New("malformed document")
			}
			return &expense.Extraction{Vendor: "Acme", PaymentTerms: "Net 30"}, nil
		},
	}
	store := &MockObjectStore{
		UploadFunc: func(ctx context.Context, bucket, filePath string) (string, error) {
			return filePath, nil
		},
	}

	out := &bytes.Buffer{}
	results := pipeline.Run(context.Background(), mockDeps(store, analyzer, nil), testConfig(),
		[]string{"bad.pdf", "good.pdf"}, out)

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if !errors.Is(results[0].Err, pipeline.ErrAnalysis) {
		t.Errorf("first result error = %v, want ErrAnalysis", results[0].Err)
	}
	if results[1].Err != nil {
		t.Errorf("second file should still process, got: %v", results[1].Err)
	}
	if results[1].Record == nil || results[1].Record.SourcePath != "good.pdf" {
		t.Errorf("unexpected second record: %+v", results[1].Record)
	}

	if !pipeline.Failed(results) {
		t.Error("Failed() should report the batch as failed")
	}
	if !strings.Contains(out.String(), "Failed to process bad.pdf") {
		t.Errorf("output should report the failed file:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Extraction Results for: good.pdf") {
		t.Errorf("output should render the successful file:\n%s", out.String())
	}
}

func TestRun_ResultsInInputOrder(t *testing.T) {
	store := &MockObjectStore{
		UploadFunc: func(ctx context.Context, bucket, filePath string) (string, error) {
			return filePath, nil
		},
	}
	cfg := testConfig()
	cfg.Concurrency = 4

	paths := []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf", "e.pdf"}
	out := &bytes.Buffer{}
	results := pipeline.Run(context.Background(), mockDeps(store, nil, nil), cfg, paths, out)

	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Errorf("result %d path = %q, want %q", i, r.Path, paths[i])
		}
		if r.Record == nil {
			t.Errorf("result %d missing record", i)
		}
		if r.RunID == "" {
			t.Errorf("result %d missing run ID", i)
		}
	}

	// Rendered output follows input order too.
	first := strings.Index(out.String(), "a.pdf")
	last := strings.Index(out.String(), "e.pdf")
	if first == -1 || last == -1 || first > last {
		t.Errorf("rendered output out of order:\n%s", out.String())
	}
}

func TestRun_ZeroConcurrencyRunsSequentially(t *testing.T) {
	cfg := testConfig()
	cfg.Concurrency = 0

	out := &bytes.Buffer{}
	results := pipeline.Run(context.Background(), mockDeps(nil, nil, nil), cfg,
		[]string{"a.pdf", "b.pdf"}, out)

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("result %d failed: %v", i, r.Err)
		}
	}
}

func TestRun_DeletesUploadedObjects(t *testing.T) {
	store := &MockObjectStore{
		UploadFunc: func(ctx context.Context, bucket, filePath string) (string, error) {
			return filePath, nil
		},
	}

	pipeline.Run(context.Background(), mockDeps(store, nil, nil), testConfig(),
		[]string{"a.pdf", "b.pdf"}, &bytes.Buffer{})

	if len(store.DeleteCalls) != 2 {
		t.Errorf("got %d deletes, want 2: %v", len(store.DeleteCalls), store.DeleteCalls)
	}
}

func TestRun_KeepObjectsSkipsDelete(t *testing.T) {
	store := &MockObjectStore{}
	cfg := testConfig()
	cfg.KeepObjects = true

	pipeline.Run(context.Background(), mockDeps(store, nil, nil), cfg,
		[]string{"a.pdf"}, &bytes.Buffer{})

	if len(store.DeleteCalls) != 0 {
		t.Errorf("expected no deletes with KeepObjects, got: %v", store.DeleteCalls)
	}
}

func TestRun_DeletesAfterAnalysisFailure(t *testing.T) {
	analyzer := &MockExpenseAnalyzer{
		AnalyzeExpenseFunc: func(ctx context.Context, bucket, key string) (*expense.Extraction, error) {
			return nil, errors.New("throttled")
		},
	}
	store := &MockObjectStore{}

	pipeline.Run(context.Background(), mockDeps(store, analyzer, nil), testConfig(),
		[]string{"a.pdf"}, &bytes.Buffer{})

	if len(store.DeleteCalls) != 1 {
		t.Errorf("uploaded object should be cleaned up after a failed analysis, deletes: %v", store.DeleteCalls)
	}
}

func TestRun_NoDeleteWhenUploadFailed(t *testing.T) {
	store := &MockObjectStore{
		UploadFunc: func(ctx context.Context, bucket, filePath string) (string, error) {
			return "", errors.New("access denied")
		},
	}

	results := pipeline.Run(context.Background(), mockDeps(store, nil, nil), testConfig(),
		[]string{"a.pdf"}, &bytes.Buffer{})

	if len(store.DeleteCalls) != 0 {
		t.Errorf("nothing was uploaded, expected no deletes: %v", store.DeleteCalls)
	}
	if !errors.Is(results[0].Err, pipeline.ErrUpload) {
		t.Errorf("result error = %v, want ErrUpload", results[0].Err)
	}
}

func TestRun_EmptyBatch(t *testing.T) {
	out := &bytes.Buffer{}
	results := pipeline.Run(context.Background(), mockDeps(nil, nil, nil), testConfig(), nil, out)

	if len(results) != 0 {
		t.Errorf("got %d results for empty batch, want 0", len(results))
	}
	if pipeline.Failed(results) {
		t.Error("empty batch should not be failed")
	}
}
