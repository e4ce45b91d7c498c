package train

import (
	"sort"
)

// FreqMap counts morph occurrences.
type FreqMap map[string]int

// Add increments the count of morph by n.
func (fm FreqMap) Add(morph string, n int) {
	fm[morph] += n
}

// Prune returns a copy holding only the morphs seen at least
// minCount times.
func (fm FreqMap) Prune(minCount int) FreqMap {
	out := make(FreqMap, len(fm))
	for m, c := range fm {
		if c >= minCount {
			out[m] = c
		}
	}
	return out
}

// Sorted returns the morphs in lexicographic order.
func (fm FreqMap) Sorted() []string {
	out := make([]string, 0, len(fm))
	for m := range fm {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
