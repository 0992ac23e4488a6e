// Package testutil builds small but valid PDF files for tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// PageWidth is the MediaBox width given to page n of a document built with
// base width base. Tests read widths back to tell pages apart.
func PageWidth(base, n int) float64 {
	return float64(base + n)
}

// BuildPDF returns a PDF with pageCount pages. Page n has a MediaBox of
// (base+n) x 792 and a content stream drawing "Page n".
func BuildPDF(pageCount, base int) []byte {
	// objects: 1 catalog, 2 pages, 3 font, then a page/content pair per page
	objCount := 3 + 2*pageCount
	offsets := make([]int, objCount+1)

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	kids := make([]string, pageCount)
	for i := 0; i < pageCount; i++ {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	fmt.Fprintf(&b, "2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), pageCount)

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	for i := 0; i < pageCount; i++ {
		pageObj, contentObj := 4+2*i, 5+2*i
		stream := fmt.Sprintf("BT\n/F1 12 Tf\n20 700 Td\n(Page %d) Tj\nET", i+1)

		offsets[pageObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d 792] /Contents %d 0 R /Resources << /Font << /F1 3 0 R >> >> >>\nendobj\n",
			pageObj, base+i+1, contentObj)

		offsets[contentObj] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", contentObj, len(stream), stream)
	}

	xrefOffset := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", objCount+1)
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= objCount; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", objCount+1, xrefOffset)

	return []byte(b.String())
}

// WritePDF writes a BuildPDF document named name into dir and returns its path.
func WritePDF(t testing.TB, dir, name string, pageCount, base int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, BuildPDF(pageCount, base), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Widths returns the expected MediaBox widths for the given pages of a
// document built with base.
func Widths(base int, pages ...int) []float64 {
	widths := make([]float64, len(pages))
	for i, p := range pages {
		widths[i] = PageWidth(base, p)
	}
	return widths
}
