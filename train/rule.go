// Package train extracts sound-change rules and lexicon frequencies
// from a morpheme-annotated corpus and writes them as a dictionary set.
package train

import (
	"fmt"

	"github.com/hangul-nlp/yongeon"
	"github.com/hangul-nlp/yongeon/hangle"
)

// Rule is one extracted sound-change rule: the surface window observed
// in a word-form and the canonical (stem tail, ending head) it realizes.
type Rule struct {
	Surface string
	Canon   yongeon.RulePair
}

func (r Rule) String() string {
	return fmt.Sprintf("%s -> (%s, %s)", r.Surface, r.Canon.Stem, r.Canon.Ending)
}

// isHangle reports whether the surface and the canonical pair are made
// of syllables and bare jamo only.
func (r *Rule) isHangle() bool {
	for _, s := range []string{r.Surface, r.Canon.Stem, r.Canon.Ending} {
		for _, c := range s {
			if !hangle.IsSyllable(c) && !hangle.IsJaum(c) && !hangle.IsMoum(c) {
				return false
			}
		}
	}
	return true
}

// RuleInconsistencyError reports a word-form whose annotation cannot be
// turned into a sound-change rule, either because the lengths of the
// morphs and the word-form are incompatible, because the window does
// not share the consonants of the canonical pair, or because the rule
// would hold characters other than hangle.
type RuleInconsistencyError struct {
	Eojeol string
	Left   yongeon.Morph
	Right  yongeon.Morph
	Reason string
}

func (e *RuleInconsistencyError) Error() string {
	return fmt.Sprintf("cannot extract rule from %s = %s + %s: %s", e.Eojeol, e.Left, e.Right, e.Reason)
}

// jamo decomposes a syllable. A bare consonant jamo (an ending such as
// "ㄴ") is treated as a lead consonant with neither vowel nor tail.
func jamo(r rune) (lead, vowel, tail rune, ok bool) {
	if hangle.IsJaum(r) {
		return r, hangle.Filler, hangle.Filler, true
	}
	return hangle.Decompose(r)
}

func leadOf(r rune) (rune, bool) {
	lead, _, _, ok := hangle.Decompose(r)
	return lead, ok
}

// alternates reports whether two lead consonants belong to the
// fricative/affricate pair accepted as a historical alternation.
func alternates(a, b rune) bool {
	return (a == 'ㅅ' && b == 'ㅈ') || (a == 'ㅈ' && b == 'ㅅ')
}

// ExtractRule derives the sound-change rule realized by eojeol, annotated
// as the stem lw (tag lt) followed by the ending rw (tag rt). It returns
// nil when no rule applies: the stem is not a predicate, the word-form is
// the plain concatenation of the morphs, or the surface window does not
// start with the lead consonant of the stem.
func ExtractRule(eojeol, lw string, lt yongeon.Tag, rw string, rt yongeon.Tag) (*Rule, error) {
	if !lt.IsPredicate() {
		return nil, nil
	}
	if lw+rw == eojeol {
		return nil, nil
	}
	e, l, r := []rune(eojeol), []rune(lw), []rune(rw)
	if len(l) == 0 || len(r) == 0 {
		return nil, nil
	}
	inconsistent := func(format string, args ...any) error {
		return &RuleInconsistencyError{
			Eojeol: eojeol,
			Left:   yongeon.Morph{Form: lw, Tag: lt},
			Right:  yongeon.Morph{Form: rw, Tag: rt},
			Reason: fmt.Sprintf(format, args...),
		}
	}

	checked := func(rule *Rule) (*Rule, error) {
		if rule != nil && !rule.isHangle() {
			return nil, inconsistent("window or canonical pair is not hangle")
		}
		return rule, nil
	}

	window := runeSlice(e, len(l)-1, len(l)+1)
	if len(window) == 0 {
		return checked(divergingRule(e, l, r))
	}

	wLead, ok := leadOf(window[0])
	if !ok {
		return nil, nil
	}
	sLead, ok := leadOf(l[len(l)-1])
	if !ok || wLead != sLead {
		return nil, nil
	}

	stemTail := string(l[len(l)-1])
	var canon yongeon.RulePair
	switch total := len(l) + len(r); {
	case total == len(e):
		canon = yongeon.RulePair{Stem: stemTail, Ending: string(r[0])}
	case total > len(e):
		canon = yongeon.RulePair{Stem: stemTail, Ending: string(runeSlice(r, 0, 2))}
	case total+1 == len(e):
		window = runeSlice(e, len(l)-1, len(l)+2)
		canon = yongeon.RulePair{Stem: stemTail, Ending: string(r[0])}
	default:
		return nil, inconsistent("word-form is %d syllables longer than its morphs", len(e)-total)
	}

	if len(window) == 2 && len([]rune(canon.Ending)) == 1 {
		if err := checkConsonants(window, l[len(l)-1], []rune(canon.Ending)[0]); err != "" {
			return nil, inconsistent("%s", err)
		}
	}
	return checked(&Rule{Surface: string(window), Canon: canon})
}

// divergingRule handles a word-form shorter than the stem: the window
// starts at the first syllable where the word-form and the stem differ.
func divergingRule(e, l, r []rune) *Rule {
	for b := 0; b < len(e); b++ {
		if b >= len(l) || e[b] != l[b] {
			return &Rule{
				Surface: string(e[b:]),
				Canon:   yongeon.RulePair{Stem: string(l[b:]), Ending: string(r[0])},
			}
		}
	}
	return nil
}

// checkConsonants compares the consonants of a two-syllable window with
// those of the canonical stem tail and ending head. It returns the
// reason of the mismatch or an empty string.
func checkConsonants(window []rune, stemTail, endingHead rune) string {
	w0, _, _, ok0 := jamo(window[0])
	w1, _, w1Tail, ok1 := jamo(window[1])
	s, _, _, okS := jamo(stemTail)
	c, cVowel, _, okC := jamo(endingHead)
	if !ok0 || !ok1 || !okS || !okC {
		return "window or canonical pair is not hangle"
	}
	if w0 != s {
		return fmt.Sprintf("stem lead consonant %c does not match window %c", s, w0)
	}
	if w1 == c {
		return ""
	}
	if cVowel == hangle.Filler && w1Tail == c {
		return ""
	}
	if c == hangle.ZeroConsonant || alternates(w1, c) {
		return ""
	}
	return fmt.Sprintf("ending lead consonant %c does not match window %c", c, w1)
}

// runeSlice returns s[from:to] clamped to the bounds of s.
func runeSlice(s []rune, from, to int) []rune {
	if from < 0 {
		from = 0
	}
	if to > len(s) {
		to = len(s)
	}
	if from >= to {
		return nil
	}
	return s[from:to]
}
