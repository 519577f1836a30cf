package pipeline

import (
	"errors"
	"io/fs"
)

// Failure classes for per-file processing. Matched with errors.Is; each
// carries the underlying cause via wrapping.
var (
	// ErrReadFile marks a local file that could not be read.
	ErrReadFile = errors.New("read invoice file")

	// ErrUpload marks a failed upload to the object store.
	ErrUpload = errors.New("upload invoice")

	// ErrAnalysis marks a failed expense-analysis call. Never retried.
	ErrAnalysis = errors.New("analyze invoice")

	// ErrDetectText marks a failed text-detection call. Non-fatal: the
	// record is still produced, just without payment terms.
	ErrDetectText = errors.New("detect invoice text")
)

// isLocalReadError distinguishes a local filesystem failure from a remote
// store failure on upload.
func isLocalReadError(err error) bool {
	var pathErr *fs.PathError
	return errors.As(err, &pathErr)
}
