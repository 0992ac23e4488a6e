package pdf

import (
	"math"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
)

var digitRun = regexp.MustCompile(`[0-9]+`)

// NaturalSortKey returns the digit runs of filename as integers, left to
// right, so "page2.pdf" orders before "page10.pdf". A name without digits
// yields [0].
func NaturalSortKey(filename string) []int {
	runs := digitRun.FindAllString(filename, -1)
	if len(runs) == 0 {
		return []int{0}
	}

	key := make([]int, len(runs))
	for i, run := range runs {
		n, err := strconv.Atoi(run)
		if err != nil {
			// only overflow is possible here
			n = math.MaxInt
		}
		key[i] = n
	}
	return key
}

// CompareNatural compares two filenames by their natural sort keys.
func CompareNatural(a, b string) int {
	return slices.Compare(NaturalSortKey(a), NaturalSortKey(b))
}

// SortNatural sorts paths in place by the natural key of their base name.
// Names with equal keys keep their relative order.
func SortNatural(paths []string) {
	slices.SortStableFunc(paths, func(a, b string) int {
		return CompareNatural(filepath.Base(a), filepath.Base(b))
	})
}
