package pdf

import "os"

const (
	// PDFExt is the extension every input and output document carries
	PDFExt = ".pdf"

	// DefaultMergeOutputName is used when no merge output name is given
	DefaultMergeOutputName = "merged_output.pdf"

	// EditedSuffix is appended to the input name for page deletion output
	EditedSuffix = "edited"

	// ExtractedSuffix is appended to the input name for page extraction output
	ExtractedSuffix = "extracted"

	// DefaultOutputPermissions for written documents
	DefaultOutputPermissions os.FileMode = 0644
)
