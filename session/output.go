package session

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gookit/color"

	"pdf_toolkit/pdf"
)

// previewLimit is the selection size above which only both ends are shown.
const previewLimit = 20

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) paint(c color.Color, text string) string {
	if !s.opts.Color {
		return text
	}
	return c.Render(text)
}

func (s *Session) rule() {
	s.printf("%s\n", strings.Repeat("=", ruleWidth))
}

func (s *Session) header(title string) {
	s.printf("\n")
	s.rule()
	s.printf("%s\n", s.paint(color.Cyan, title))
	s.rule()
}

func (s *Session) failf(format string, args ...any) {
	s.printf("\n%s\n", s.paint(color.Red, "❌ "+fmt.Sprintf(format, args...)))
}

func (s *Session) warn(warnings []pdf.Warning) {
	for _, w := range warnings {
		s.logger.Debug("skipped page token", "token", w.Token, "reason", w.Reason)
		s.printf("%s\n", s.paint(color.Yellow, "⚠️  "+w.String()))
	}
}

func (s *Session) success(title string, res *pdf.Result) {
	location := res.OutFile
	if abs, err := filepath.Abs(res.OutFile); err == nil {
		location = abs
	}

	s.printf("\n")
	s.rule()
	s.printf("%s\n", s.paint(color.Green, "✅ "+title))
	s.rule()
	s.printf("📁 Saved to: %s\n", location)
	s.printf("📊 File size: %s bytes (%s)\n", humanize.Comma(res.Size), humanize.Bytes(uint64(res.Size)))
	s.printf("📄 Pages: %d\n", res.Pages)
	s.rule()
}

// formatPages renders pages as "[1, 3, 5]".
func formatPages(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// previewPages shortens long selections to their first and last ten pages.
func previewPages(pages []int) string {
	if len(pages) <= previewLimit {
		return formatPages(pages)
	}
	return formatPages(pages[:10]) + " ... " + formatPages(pages[len(pages)-10:])
}
