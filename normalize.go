package yongeon

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeWord trims surrounding whitespace and composes conjoining
// jamo sequences (as produced by some input methods and by NFD text)
// into precomposed syllables, which is the form all the lexicons use.
func NormalizeWord(s string) string {
	s = strings.TrimSpace(s)
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}
