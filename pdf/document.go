package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// newConfiguration returns a fresh pdfcpu configuration. pdfcpu mutates the
// configuration it is given, so every call gets its own.
func newConfiguration() *model.Configuration {
	// keep pdfcpu from creating a config directory under the user's home
	disableConfigDir.Do(func() { model.ConfigPath = "disable" })

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Document is a source PDF held in memory for the duration of one operation.
// It is never modified; rewrites always produce a new file.
type Document struct {
	Path      string
	PageCount int

	raw []byte
}

// OpenDocument reads path and determines its page count. The file handle is
// released before OpenDocument returns.
func OpenDocument(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	pageCount, err := api.PageCount(bytes.NewReader(raw), newConfiguration())
	if err != nil {
		return nil, &LibraryError{Op: "read", Path: path, Err: err}
	}

	return &Document{Path: path, PageCount: pageCount, raw: raw}, nil
}

// Reader returns a fresh reader over the document bytes.
func (d *Document) Reader() io.ReadSeeker {
	return bytes.NewReader(d.raw)
}

// writePages writes the given 1-based pages of d, in the given order, to outFile.
func (d *Document) writePages(pages []int, outFile string) (*Result, error) {
	selected := make([]string, len(pages))
	for i, p := range pages {
		selected[i] = strconv.Itoa(p)
	}

	size, err := writeFileAtomic(outFile, func(w io.Writer) error {
		if err := api.Collect(d.Reader(), w, selected, newConfiguration()); err != nil {
			return &LibraryError{Op: "collect", Path: d.Path, Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Result{OutFile: outFile, Pages: len(pages), Size: size}, nil
}

// Result describes a written output document.
type Result struct {
	OutFile string `json:"out_file"`
	Pages   int    `json:"pages"`
	Size    int64  `json:"size"`
}
