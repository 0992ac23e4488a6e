package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pdf_toolkit/pdf"
)

// pageOperation rewrites doc into outFile and reports skipped page tokens.
type pageOperation func(doc *pdf.Document, outFile string) (*pdf.Result, []pdf.Warning, error)

// HandleInspect reports the page count of an uploaded PDF and, when a
// "pages" field is present, the pages it selects.
func (s *Server) HandleInspect(c *gin.Context) {
	inFile, _, ok := s.receiveUpload(c)
	if !ok {
		return
	}
	defer os.Remove(inFile)

	doc, err := pdf.OpenDocument(inFile)
	if err != nil {
		s.respondError(c, err)
		return
	}

	pages := pdf.PageSet{}
	warnings := []pdf.Warning{}
	if spec := c.PostForm("pages"); spec != "" {
		pages, warnings = s.selectPages(spec, doc.PageCount, true)
	}

	c.JSON(http.StatusOK, gin.H{
		"total_pages": doc.PageCount,
		"pages":       pages,
		"warnings":    warnings,
	})
}

func (s *Server) HandleRemovePages(c *gin.Context) {
	spec := c.PostForm("pages")
	if spec == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No pages specified"})
		return
	}

	s.handlePDFFile(c, pdf.EditedSuffix, func(doc *pdf.Document, outFile string) (*pdf.Result, []pdf.Warning, error) {
		remove, warnings := s.selectPages(spec, doc.PageCount, false)
		res, err := pdf.DeletePages(doc, remove, outFile)
		return res, warnings, err
	})
}

func (s *Server) HandleExtractPages(c *gin.Context) {
	spec := c.PostForm("pages")
	if spec == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No pages specified"})
		return
	}

	s.handlePDFFile(c, pdf.ExtractedSuffix, func(doc *pdf.Document, outFile string) (*pdf.Result, []pdf.Warning, error) {
		keep, warnings := s.selectPages(spec, doc.PageCount, true)
		res, err := pdf.ExtractPages(doc, keep, outFile)
		return res, warnings, err
	})
}

// HandleMerge merges every uploaded "pdf" part in natural filename order.
func (s *Server) HandleMerge(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	headers := form.File["pdf"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF files provided"})
		return
	}
	if len(headers) > MaxMergeFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("At most %d files can be merged at once", MaxMergeFiles)})
		return
	}

	workDir := filepath.Join(s.config.TempDir, "merge_"+generateUniqueID())
	if err := os.MkdirAll(workDir, DefaultFilePermissions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp directory"})
		return
	}
	defer os.RemoveAll(workDir)

	// keep the original names so natural ordering follows what the client sent
	var inFiles []string
	used := make(map[string]bool, len(headers))
	for i, header := range headers {
		name := sanitizeFilename(header.Filename)
		if used[name] {
			name = strconv.Itoa(i) + "_" + name
		}
		used[name] = true

		path := filepath.Join(workDir, name)
		if err := saveUpload(header, path, s.config.MaxFileSize); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s: %v", header.Filename, err)})
			return
		}
		inFiles = append(inFiles, path)
	}

	outFile := filepath.Join(s.config.TempDir, "output_"+generateUniqueID()+".pdf")
	defer os.Remove(outFile)

	res, err := pdf.MergePDFFiles(inFiles, outFile, func(i, n int, name string) {
		s.logger.Debug("merging", "index", i, "total", n, "file", name)
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info("merged uploads", "files", len(inFiles), "pages", res.Pages, "size", res.Size)
	s.sendPDF(c, res, s.config.MergeOutputName, nil)
}

func (s *Server) handlePDFFile(c *gin.Context, suffix string, operation pageOperation) {
	inFile, header, ok := s.receiveUpload(c)
	if !ok {
		return
	}
	defer os.Remove(inFile)

	outFile := strings.TrimSuffix(inFile, pdf.PDFExt) + "_" + suffix + pdf.PDFExt
	defer os.Remove(outFile)

	doc, err := pdf.OpenDocument(inFile)
	if err != nil {
		s.respondError(c, err)
		return
	}

	res, warnings, err := operation(doc, outFile)
	for _, w := range warnings {
		s.logger.Debug("skipped page token", "token", w.Token, "reason", w.Reason)
	}
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info("page operation finished", "op", suffix, "pages", res.Pages, "size", res.Size)
	s.sendPDF(c, res, pdf.DefaultOutputName(sanitizeFilename(header.Filename), suffix), warnings)
}

// selectPages parses spec; allowAll enables the "all" shortcut.
func (s *Server) selectPages(spec string, totalPages int, allowAll bool) (pdf.PageSet, []pdf.Warning) {
	if allowAll && pdf.IsAllLiteral(spec) {
		return pdf.SelectAll(totalPages), []pdf.Warning{}
	}
	pages, warnings := pdf.ParsePageSelectionWith(spec, totalPages, s.parity)
	if warnings == nil {
		warnings = []pdf.Warning{}
	}
	return pages, warnings
}

// receiveUpload stores the "pdf" form file under TempDir and returns its path.
// On failure the response has already been written.
func (s *Server) receiveUpload(c *gin.Context) (string, *multipart.FileHeader, bool) {
	header, err := c.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No PDF file provided"})
		return "", nil, false
	}

	if err := ensureTempDir(s.config.TempDir); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temp directory"})
		return "", nil, false
	}

	inFile := filepath.Join(s.config.TempDir, "input_"+generateUniqueID()+pdf.PDFExt)
	if err := saveUpload(header, inFile, s.config.MaxFileSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", nil, false
	}

	return inFile, header, true
}

func (s *Server) sendPDF(c *gin.Context, res *pdf.Result, filename string, warnings []pdf.Warning) {
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("X-Page-Count", strconv.Itoa(res.Pages))
	c.Header("X-Page-Warnings", strconv.Itoa(len(warnings)))
	c.File(res.OutFile)
}

func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, pdf.ErrEmptySelection), errors.Is(err, pdf.ErrPageOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, pdf.ErrAllPagesSelected):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, pdf.ErrNotFound):
		status = http.StatusNotFound
	}

	s.logger.Warn("PDF operation error", "status", status, "error", err)

	errorMsg := err.Error()
	if len(errorMsg) > maxErrorLength {
		errorMsg = errorMsg[:maxErrorLength] + "..."
	}
	c.JSON(status, gin.H{"error": errorMsg})
}

// saveUpload validates an uploaded PDF and copies it to dst.
func saveUpload(header *multipart.FileHeader, dst string, maxSize int64) error {
	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	if err := validatePDFFile(file, header, maxSize); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

// ensureTempDir creates the temp directory if it doesn't exist
func ensureTempDir(tempDir string) error {
	return os.MkdirAll(tempDir, DefaultFilePermissions)
}

// sanitizeFilename removes path traversal attempts and dangerous characters
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "..", "")
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.TrimSpace(filepath.Base(filename))

	if filename == "" || filename == "." {
		filename = "document.pdf"
	}

	return filename
}

func generateUniqueID() string {
	return uuid.NewString()
}

// validatePDFFile checks the size limit and the "%PDF" header
func validatePDFFile(file multipart.File, header *multipart.FileHeader, maxSize int64) error {
	if header.Size > maxSize {
		return fmt.Errorf("file size %d exceeds maximum allowed %d bytes", header.Size, maxSize)
	}

	buffer := make([]byte, 4)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read file header: %w", err)
	}

	if n < 4 || string(buffer) != "%PDF" {
		return errors.New("invalid PDF file: header does not match")
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to reset file position: %w", err)
	}

	return nil
}
