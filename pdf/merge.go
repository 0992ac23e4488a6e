package pdf

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ProgressFunc is called before each source of a merge is opened.
type ProgressFunc func(index, total int, name string)

// ListPDFFiles returns the PDF files directly inside dir, naturally sorted.
func ListPDFFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !HasPDFExt(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPDFFiles, dir)
	}

	SortNatural(files)
	return files, nil
}

// MergePDFFiles concatenates files in natural filename order into outFile.
// The first source pdfcpu cannot read aborts the whole merge.
func MergePDFFiles(files []string, outFile string, progress ProgressFunc) (*Result, error) {
	if len(files) == 0 {
		return nil, ErrNoPDFFiles
	}

	ordered := slices.Clone(files)
	SortNatural(ordered)

	sources := make([]io.ReadSeeker, 0, len(ordered))
	totalPages := 0
	for i, file := range ordered {
		if progress != nil {
			progress(i+1, len(ordered), filepath.Base(file))
		}

		doc, err := OpenDocument(file)
		if err != nil {
			return nil, err
		}
		sources = append(sources, doc.Reader())
		totalPages += doc.PageCount
	}

	size, err := writeFileAtomic(outFile, func(w io.Writer) error {
		if err := api.MergeRaw(sources, w, false, newConfiguration()); err != nil {
			return &LibraryError{Op: "merge", Path: outFile, Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Result{OutFile: outFile, Pages: totalPages, Size: size}, nil
}
