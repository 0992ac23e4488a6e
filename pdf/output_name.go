package pdf

import (
	"path/filepath"
	"strings"
)

// DefaultOutputName derives "<input without extension>_<suffix>.pdf".
func DefaultOutputName(inFile, suffix string) string {
	return strings.TrimSuffix(inFile, filepath.Ext(inFile)) + "_" + suffix + PDFExt
}

// EnsurePDFExt appends ".pdf" unless name already ends with it.
func EnsurePDFExt(name string) string {
	if HasPDFExt(name) {
		return name
	}
	return name + PDFExt
}

// HasPDFExt reports whether name ends in ".pdf", ignoring case.
func HasPDFExt(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), PDFExt)
}
