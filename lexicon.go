package yongeon

import (
	"sort"
)

// Lexicon is the set of known morphs of a single tag.
type Lexicon struct {
	tag    Tag
	morphs map[string]struct{}
}

// NewLexicon creates a lexicon from morphs. Duplicates are merged;
// an empty morph or a morph containing whitespace is rejected.
func NewLexicon(tag Tag, morphs ...string) (*Lexicon, error) {
	switch tag {
	case TagAdjective, TagVerb, TagEnding:
	default:
		return nil, newConfigError("lexicon", "unsupported tag %s", tag)
	}
	lex := &Lexicon{
		tag:    tag,
		morphs: make(map[string]struct{}, len(morphs)),
	}
	for _, m := range morphs {
		if !validMorph(m) {
			return nil, newConfigError("lexicon", "invalid %s entry %q", tag, m)
		}
		lex.morphs[m] = struct{}{}
	}
	return lex, nil
}

// Tag returns the tag shared by all the morphs.
func (lex *Lexicon) Tag() Tag {
	if lex == nil {
		return 0
	}
	return lex.tag
}

// Contains reports whether morph is in the lexicon.
func (lex *Lexicon) Contains(morph string) bool {
	if lex == nil {
		return false
	}
	_, ok := lex.morphs[morph]
	return ok
}

// Len returns the number of morphs.
func (lex *Lexicon) Len() int {
	if lex == nil {
		return 0
	}
	return len(lex.morphs)
}

// Morphs returns all the morphs in lexicographic order.
func (lex *Lexicon) Morphs() []string {
	if lex == nil {
		return nil
	}
	out := make([]string, 0, len(lex.morphs))
	for m := range lex.morphs {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
