package pipeline_test

import (
	"context"
	"sync"

	"github.com/dvloznov/invoice-extract/internal/expense"
	"github.com/dvloznov/invoice-extract/internal/pipeline"
)

// MockObjectStore is a mock implementation of ObjectStore for testing.
type MockObjectStore struct {
	UploadFunc func(ctx context.Context, bucket, filePath string) (string, error)
	DeleteFunc func(ctx context.Context, bucket, key string) error

	mu          sync.Mutex
	UploadCalls []string
	DeleteCalls []string
}

func (m *MockObjectStore) Upload(ctx context.Context, bucket, filePath string) (string, error) {
	m.mu.Lock()
	m.UploadCalls = append(m.UploadCalls, filePath)
	m.mu.Unlock()

	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, bucket, filePath)
	}
	return "mock-key.pdf", nil
}

func (m *MockObjectStore) Delete(ctx context.Context, bucket, key string) error {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, key)
	m.mu.Unlock()

	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, bucket, key)
	}
	return nil
}

// MockExpenseAnalyzer is a mock implementation of ExpenseAnalyzer for testing.
type MockExpenseAnalyzer struct {
	AnalyzeExpenseFunc func(ctx context.Context, bucket, key string) (*expense.Extraction, error)

	mu           sync.Mutex
	AnalyzeCalls []string
}

func (m *MockExpenseAnalyzer) AnalyzeExpense(ctx context.Context, bucket, key string) (*expense.Extraction, error) {
	m.mu.Lock()
	m.AnalyzeCalls = append(m.AnalyzeCalls, key)
	m.mu.Unlock()

	if m.AnalyzeExpenseFunc != nil {
		return m.AnalyzeExpenseFunc(ctx, bucket, key)
	}
	return &expense.Extraction{}, nil
}

// MockTextDetector is a mock implementation of TextDetector for testing.
type MockTextDetector struct {
	DetectTextFunc func(ctx context.Context, bucket, key string) ([]string, error)

	mu          sync.Mutex
	DetectCalls []string
}

func (m *MockTextDetector) DetectText(ctx context.Context, bucket, key string) ([]string, error) {
	m.mu.Lock()
	m.DetectCalls = append(m.DetectCalls, key)
	m.mu.Unlock()

	if m.DetectTextFunc != nil {
		return m.DetectTextFunc(ctx, bucket, key)
	}
	return nil, nil
}

func (m *MockTextDetector) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.DetectCalls)
}

func mockDeps(store *MockObjectStore, analyzer *MockExpenseAnalyzer, detector *MockTextDetector) pipeline.Deps {
	if store == nil {
		store = &MockObjectStore{}
	}
	if analyzer == nil {
		analyzer = &MockExpenseAnalyzer{}
	}
	if detector == nil {
		detector = &MockTextDetector{}
	}
	return pipeline.Deps{Store: store, Analyzer: analyzer, Detector: detector}
}
