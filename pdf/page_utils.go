package pdf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// PageSet is a strictly ascending list of distinct 1-based page numbers.
type PageSet []int

// Contains reports whether page is part of the set.
func (s PageSet) Contains(page int) bool {
	i := sort.SearchInts(s, page)
	return i < len(s) && s[i] == page
}

// Warning describes a token of a page specification that was skipped.
type Warning struct {
	Token  string `json:"token"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %q", w.Reason, w.Token)
}

// Parity selects odd or even pages.
type Parity int

const (
	ParityOdd Parity = iota + 1
	ParityEven
)

func (p Parity) String() string {
	switch p {
	case ParityOdd:
		return "odd"
	case ParityEven:
		return "even"
	}
	return "unknown"
}

func (p Parity) matches(page int) bool {
	if p == ParityOdd {
		return page%2 == 1
	}
	return page%2 == 0
}

// ParityTable maps each parity filter to the words that select it.
type ParityTable map[Parity][]string

// DefaultParityTable accepts the English words and their Korean equivalents.
func DefaultParityTable() ParityTable {
	return ParityTable{
		ParityOdd:  {"odd", "홀수"},
		ParityEven: {"even", "짝수"},
	}
}

// With returns a copy of t with extra synonyms registered for p.
func (t ParityTable) With(p Parity, synonyms ...string) ParityTable {
	out := make(ParityTable, len(t)+1)
	for k, v := range t {
		out[k] = append([]string(nil), v...)
	}
	out[p] = append(out[p], synonyms...)
	return out
}

// Lookup resolves word to a parity filter. Matching ignores case and
// surrounding whitespace and compares NFC-normalized text.
func (t ParityTable) Lookup(word string) (Parity, bool) {
	word = foldToken(word)
	if word == "" {
		return 0, false
	}
	for _, p := range []Parity{ParityOdd, ParityEven} {
		for _, synonym := range t[p] {
			if foldToken(synonym) == word {
				return p, true
			}
		}
	}
	return 0, false
}

func foldToken(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// IsAllLiteral reports whether spec asks for every page.
func IsAllLiteral(spec string) bool {
	return foldToken(spec) == "all"
}

// SelectAll returns every page of a document with totalPages pages.
func SelectAll(totalPages int) PageSet {
	pages := make(PageSet, 0, max(totalPages, 0))
	for p := 1; p <= totalPages; p++ {
		pages = append(pages, p)
	}
	return pages
}

// ParsePageSelection parses spec against the default parity table.
func ParsePageSelection(spec string, totalPages int) (PageSet, []Warning) {
	return ParsePageSelectionWith(spec, totalPages, DefaultParityTable())
}

// ParsePageSelectionWith converts spec into the pages it selects out of
// totalPages. Supported forms:
//
//	"1,3,5"  "1-5"  "1,3-5,7"  "odd"  "even"  "5 odd"  "6 even"
//
// Malformed tokens are skipped and reported as warnings, pages outside
// [1, totalPages] are dropped. The result is ascending without duplicates.
func ParsePageSelectionWith(spec string, totalPages int, table ParityTable) (PageSet, []Warning) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return PageSet{}, nil
	}

	if parity, ok := table.Lookup(spec); ok {
		return parityPages(1, totalPages, parity), nil
	}

	var warnings []Warning

	// "<start> odd|even"; anything that does not fully match falls back to
	// the comma/range parser below.
	if fields := strings.Fields(spec); len(fields) == 2 {
		if start, err := strconv.Atoi(fields[0]); err == nil {
			if start >= 1 && start <= totalPages {
				if parity, ok := table.Lookup(fields[1]); ok {
					if pages := parityPages(start, totalPages, parity); len(pages) > 0 {
						return pages, nil
					}
				}
			} else {
				warnings = append(warnings, Warning{
					Token:  fields[0],
					Reason: fmt.Sprintf("start page outside 1-%d", totalPages),
				})
			}
		}
	}

	pages, rangeWarnings := parsePageRanges(spec, totalPages)
	return pages, append(warnings, rangeWarnings...)
}

func parityPages(start, totalPages int, parity Parity) PageSet {
	pages := PageSet{}
	for p := max(start, 1); p <= totalPages; p++ {
		if parity.matches(p) {
			pages = append(pages, p)
		}
	}
	return pages
}

// parsePageRanges handles the general "1,3-5,7" form.
func parsePageRanges(spec string, totalPages int) (PageSet, []Warning) {
	// Remove all whitespace
	spec = strings.Join(strings.Fields(spec), "")

	var warnings []Warning
	seen := make(map[int]struct{})

	for _, part := range strings.Split(spec, ",") {
		if strings.Contains(part, "-") {
			// Range like "1-5"
			rangeParts := strings.Split(part, "-")
			if len(rangeParts) != 2 {
				warnings = append(warnings, Warning{Token: part, Reason: "invalid range"})
				continue
			}

			start, err := strconv.Atoi(rangeParts[0])
			if err != nil {
				warnings = append(warnings, Warning{Token: part, Reason: "invalid range start"})
				continue
			}

			end, err := strconv.Atoi(rangeParts[1])
			if err != nil {
				warnings = append(warnings, Warning{Token: part, Reason: "invalid range end"})
				continue
			}

			if start > end {
				warnings = append(warnings, Warning{Token: part, Reason: "range start is after range end"})
				continue
			}

			// clamp so huge ranges cost nothing; out-of-range pages are dropped anyway
			for i := max(start, 1); i <= min(end, totalPages); i++ {
				seen[i] = struct{}{}
			}
		} else {
			// Single page like "3"
			pageNum, err := strconv.Atoi(part)
			if err != nil {
				warnings = append(warnings, Warning{Token: part, Reason: "invalid page number"})
				continue
			}
			if pageNum >= 1 && pageNum <= totalPages {
				seen[pageNum] = struct{}{}
			}
		}
	}

	pages := make(PageSet, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	return pages, warnings
}

// ValidatePageNumbers checks if all page numbers are valid for a given total number of pages
func ValidatePageNumbers(pages []int, totalPages int) error {
	for _, page := range pages {
		if page < 1 {
			return fmt.Errorf("%w: page numbers must be positive, got %d", ErrPageOutOfRange, page)
		}
		if page > totalPages {
			return fmt.Errorf("%w: page %d exceeds total pages (%d)", ErrPageOutOfRange, page, totalPages)
		}
	}
	return nil
}
