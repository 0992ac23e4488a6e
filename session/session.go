// Package session implements the interactive, menu-driven console front end.
// Every menu choice runs one operation to completion; its errors are reported
// and never end the session.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"pdf_toolkit/internal/logging"
	"pdf_toolkit/pdf"
)

const (
	ruleWidth = 60

	// maxLineBytes bounds a single answer; longer lines are rejected and
	// the question is asked again.
	maxLineBytes = 1 << 20
)

var (
	errInputClosed = errors.New("input closed")
	errCancelled   = errors.New("cancelled")
	errLineTooLong = errors.New("input line too long")
)

// Options tunes a Session.
type Options struct {
	// Color enables ANSI colors; set it only when out is a terminal.
	Color bool

	// Parity is the word table for odd/even page filters.
	Parity pdf.ParityTable

	// MergeOutputName is offered when no merge output name is entered.
	MergeOutputName string

	Logger *slog.Logger
}

// Session reads answers line by line from in and writes prompts to out.
type Session struct {
	in     *bufio.Reader
	out    io.Writer
	opts   Options
	logger *slog.Logger
}

// New creates a session. Zero-valued options get their defaults.
func New(in io.Reader, out io.Writer, opts Options) *Session {
	if opts.Parity == nil {
		opts.Parity = pdf.DefaultParityTable()
	}
	if opts.MergeOutputName == "" {
		opts.MergeOutputName = pdf.DefaultMergeOutputName
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	return &Session{
		in:     bufio.NewReader(in),
		out:    out,
		opts:   opts,
		logger: opts.Logger,
	}
}

// Run shows the main menu until the user exits, the input ends or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	s.rule()
	s.printf("PDF toolkit started\n")
	s.rule()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()
		choice, err := s.prompt("\nChoose (1-4): ")
		if err != nil {
			return nil
		}

		switch choice {
		case "1":
			err = s.run("merge", s.merge)
		case "2":
			err = s.run("delete", s.deletePages)
		case "3":
			err = s.run("extract", s.extractPages)
		case "4":
			s.printf("\n👋 Exiting.\n")
			return nil
		default:
			s.failf("Invalid choice. Please choose 1-4.")
		}
		if errors.Is(err, errInputClosed) {
			return nil
		}

		if _, err := s.prompt("\nPress Enter to return to the main menu..."); err != nil {
			return nil
		}
	}
}

func (s *Session) printMenu() {
	s.printf("\n")
	s.rule()
	s.printf("📚 PDF toolkit\n")
	s.rule()
	s.printf("1. 📄 Merge PDFs (combine every PDF in a folder)\n")
	s.printf("2. 🗑️  Delete pages (remove selected pages)\n")
	s.printf("3. 📑 Extract pages (keep only selected pages)\n")
	s.printf("4. 🚪 Exit\n")
	s.rule()
}

// run executes one operation and reports its failure. Only a closed input is
// passed back to the menu loop.
func (s *Session) run(name string, op func() error) error {
	err := op()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errInputClosed):
		return err
	case errors.Is(err, errCancelled):
		s.failf("Cancelled.")
	case errors.Is(err, pdf.ErrAllPagesSelected):
		s.failf("Cannot delete every page.")
	default:
		s.logger.Warn("operation failed", "op", name, "error", err)
		s.failf("Error: %v", err)
	}
	return nil
}

func (s *Session) merge() error {
	s.header("📄 Merge PDFs")

	folder, err := s.prompt("\nFolder containing the PDFs (Enter = current folder): ")
	if err != nil {
		return err
	}
	if folder == "" {
		folder = "."
	}

	files, err := pdf.ListPDFFiles(folder)
	if err != nil {
		return err
	}

	s.printf("\n📋 Found %d PDF files:\n", len(files))
	for i, file := range files {
		s.printf("  %2d. %s\n", i+1, filepath.Base(file))
	}

	s.printf("\n💾 Output file name\n")
	output, err := s.prompt(fmt.Sprintf("   (Enter = '%s'): ", s.opts.MergeOutputName))
	if err != nil {
		return err
	}
	if output == "" {
		output = s.opts.MergeOutputName
	}
	output = pdf.EnsurePDFExt(output)

	s.printf("\nMerge order: %d files\n", len(files))
	s.printf("Output file: %s\n", output)
	if err := s.confirm("\nStart merging? (y/n): "); err != nil {
		return err
	}

	s.printf("\n🔄 Merging...\n")
	res, err := pdf.MergePDFFiles(files, output, func(i, n int, name string) {
		s.printf("  [%d/%d] %s\n", i, n, name)
	})
	if err != nil {
		return err
	}

	s.logger.Info("merged documents", "files", len(files), "output", res.OutFile, "pages", res.Pages)
	s.success("Merge complete!", res)
	return nil
}

func (s *Session) deletePages() error {
	s.header("🗑️  Delete PDF pages")

	doc, err := s.openSource()
	if err != nil {
		return err
	}

	s.printf("\n🗑️  Enter the pages to delete\n")
	s.printf("    Examples:\n")
	s.printf("    - single: 1,3,5\n")
	s.printf("    - range: 1-5\n")
	s.printf("    - mixed: 1,3-5,7,10-12\n")
	s.printf("    - odd pages: odd\n")
	s.printf("    - even pages: even\n")
	s.printf("    - odd pages from a start page: 5 odd (deletes 5, 7, 9, ...)\n")
	s.printf("    - even pages from a start page: 6 even (deletes 6, 8, 10, ...)\n")

	spec, err := s.prompt("\nPages to delete: ")
	if err != nil {
		return err
	}

	remove, warnings := pdf.ParsePageSelectionWith(spec, doc.PageCount, s.opts.Parity)
	s.warn(warnings)
	if len(remove) == 0 {
		return fmt.Errorf("%w: nothing to delete", pdf.ErrEmptySelection)
	}

	kept := doc.PageCount - len(remove)
	s.printf("\nPages to delete (%d): %s\n", len(remove), previewPages(remove))
	s.printf("Pages to keep: %d\n", kept)
	if kept == 0 {
		return pdf.ErrAllPagesSelected
	}

	output, err := s.outputName(pdf.DefaultOutputName(doc.Path, pdf.EditedSuffix))
	if err != nil {
		return err
	}
	if err := s.confirm("\nContinue? (y/n): "); err != nil {
		return err
	}

	s.printf("\n🔄 Processing...\n")
	res, err := pdf.DeletePages(doc, remove, output)
	if err != nil {
		return err
	}

	s.logger.Info("deleted pages", "input", doc.Path, "removed", len(remove), "output", res.OutFile)
	s.success("Pages deleted!", res)
	return nil
}

func (s *Session) extractPages() error {
	s.header("📑 Extract PDF pages")

	doc, err := s.openSource()
	if err != nil {
		return err
	}

	s.printf("\n📑 Enter the pages to extract\n")
	s.printf("   Examples:\n")
	s.printf("   - single: 1,3,5\n")
	s.printf("   - range: 1-5\n")
	s.printf("   - mixed: 1,3-5,7,10-12\n")
	s.printf("   - everything: all\n")

	spec, err := s.prompt("\nPages to extract: ")
	if err != nil {
		return err
	}

	var keep pdf.PageSet
	if pdf.IsAllLiteral(spec) {
		keep = pdf.SelectAll(doc.PageCount)
	} else {
		var warnings []pdf.Warning
		keep, warnings = pdf.ParsePageSelectionWith(spec, doc.PageCount, s.opts.Parity)
		s.warn(warnings)
	}
	if len(keep) == 0 {
		return fmt.Errorf("%w: nothing to extract", pdf.ErrEmptySelection)
	}

	s.printf("\nPages to extract (%d): %s\n", len(keep), formatPages(keep))

	output, err := s.outputName(pdf.DefaultOutputName(doc.Path, pdf.ExtractedSuffix))
	if err != nil {
		return err
	}
	if err := s.confirm("\nContinue? (y/n): "); err != nil {
		return err
	}

	s.printf("\n🔄 Processing...\n")
	res, err := pdf.ExtractPages(doc, keep, output)
	if err != nil {
		return err
	}

	s.logger.Info("extracted pages", "input", doc.Path, "pages", res.Pages, "output", res.OutFile)
	s.success("Pages extracted!", res)
	return nil
}

func (s *Session) openSource() (*pdf.Document, error) {
	input, err := s.prompt("\n📄 Source PDF file: ")
	if err != nil {
		return nil, err
	}

	doc, err := pdf.OpenDocument(input)
	if err != nil {
		return nil, err
	}

	s.printf("\n📊 Total pages: %d\n", doc.PageCount)
	s.printf("    (range 1 ~ %d)\n", doc.PageCount)
	return doc, nil
}

func (s *Session) outputName(defaultName string) (string, error) {
	s.printf("\n💾 Output file name\n")
	output, err := s.prompt(fmt.Sprintf("    (Enter = '%s'): ", defaultName))
	if err != nil {
		return "", err
	}
	if output == "" {
		output = defaultName
	}
	return pdf.EnsurePDFExt(output), nil
}

func (s *Session) prompt(text string) (string, error) {
	for {
		s.printf("%s", text)

		line, err := s.readLine()
		switch {
		case err == nil:
			return line, nil
		case errors.Is(err, errLineTooLong):
			s.failf("Input is longer than %d bytes. Please try again.", maxLineBytes)
		case errors.Is(err, io.EOF):
			return "", errInputClosed
		default:
			s.logger.Error("reading input", "error", err)
			s.failf("Error reading input: %v", err)
			return "", errInputClosed
		}
	}
}

// readLine returns the next trimmed line. A line over maxLineBytes is
// consumed completely and reported as errLineTooLong. A final line without a
// trailing newline is still returned.
func (s *Session) readLine() (string, error) {
	var line []byte
	tooLong := false

	for {
		chunk, err := s.in.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(chunk) > maxLineBytes {
				tooLong, line = true, nil
			} else {
				line = append(line, chunk...)
			}
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && !(errors.Is(err, io.EOF) && (len(line) > 0 || tooLong)) {
			return "", err
		}

		if tooLong {
			return "", errLineTooLong
		}
		return strings.TrimSpace(string(line)), nil
	}
}

func (s *Session) confirm(text string) error {
	answer, err := s.prompt(text)
	if err != nil {
		return err
	}
	if strings.ToLower(answer) != "y" {
		return errCancelled
	}
	return nil
}
