package pdf

import "slices"

// KeptPages returns the pages of a totalPages document that survive removing
// remove, in original order.
func KeptPages(totalPages int, remove []int) []int {
	drop := PageSet(slices.Clone(remove))
	slices.Sort(drop)

	kept := make([]int, 0, totalPages)
	for p := 1; p <= totalPages; p++ {
		if !drop.Contains(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

// DeletePages writes doc without the pages in remove to outFile.
// Deleting every page is refused before anything is written.
func DeletePages(doc *Document, remove []int, outFile string) (*Result, error) {
	if len(remove) == 0 {
		return nil, ErrEmptySelection
	}

	kept := KeptPages(doc.PageCount, remove)
	if len(kept) == 0 {
		return nil, ErrAllPagesSelected
	}

	return doc.writePages(kept, outFile)
}
