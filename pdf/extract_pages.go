package pdf

// ExtractPages writes the pages listed in keep, in that order, to outFile.
func ExtractPages(doc *Document, keep []int, outFile string) (*Result, error) {
	if len(keep) == 0 {
		return nil, ErrEmptySelection
	}

	if err := ValidatePageNumbers(keep, doc.PageCount); err != nil {
		return nil, err
	}

	return doc.writePages(keep, outFile)
}
