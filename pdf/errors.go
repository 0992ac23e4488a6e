package pdf

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an input file or folder does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoPDFFiles is returned when a folder holds no PDF files to merge.
	ErrNoPDFFiles = errors.New("no PDF files found")

	// ErrEmptySelection is returned when a page selection resolved to nothing.
	ErrEmptySelection = errors.New("no pages selected")

	// ErrAllPagesSelected is returned when a deletion would leave no pages.
	ErrAllPagesSelected = errors.New("cannot delete every page of the document")

	// ErrPageOutOfRange is returned when a page number lies outside the document.
	ErrPageOutOfRange = errors.New("page out of range")
)

// LibraryError wraps a failure reported by pdfcpu while reading, collecting
// or merging a document.
type LibraryError struct {
	Op   string
	Path string
	Err  error
}

func (e *LibraryError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("pdfcpu %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("pdfcpu %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *LibraryError) Unwrap() error {
	return e.Err
}

// IsLibraryError reports whether err carries a pdfcpu failure.
func IsLibraryError(err error) bool {
	var libErr *LibraryError
	return errors.As(err, &libErr)
}
