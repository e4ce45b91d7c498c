package yongeon

import (
	"fmt"
)

// Tag is the grammatical category of a morph.
type Tag rune

const (
	TagAdjective Tag = 'a'
	TagVerb      Tag = 'v'
	TagEnding    Tag = 'e'
)

// String returns the tag name used in dictionary and corpus files.
func (t Tag) String() string {
	switch t {
	case TagAdjective:
		return "Adjective"
	case TagVerb:
		return "Verb"
	case TagEnding:
		return "Eomi"
	default:
		return fmt.Sprintf("Tag(%d)", rune(t))
	}
}

// IsPredicate reports whether t is an inflecting stem class.
func (t Tag) IsPredicate() bool {
	return t == TagAdjective || t == TagVerb
}

// MarshalText encodes the tag by its name.
func (t Tag) MarshalText() ([]byte, error) {
	switch t {
	case TagAdjective, TagVerb, TagEnding:
		return []byte(t.String()), nil
	}
	return nil, fmt.Errorf("cannot marshal %s", t)
}

// ParseTag converts a tag name into a Tag. Both "Eomi" and "Ending"
// are accepted for endings.
func ParseTag(s string) (Tag, error) {
	switch s {
	case "Adjective":
		return TagAdjective, nil
	case "Verb":
		return TagVerb, nil
	case "Eomi", "Ending":
		return TagEnding, nil
	}
	return 0, newConfigError("tag", "unknown tag %q", s)
}

// Morph is a stem or an ending together with its tag.
type Morph struct {
	Form string `json:"form"`
	Tag  Tag    `json:"tag"`
}

func (m Morph) String() string {
	return m.Form + "/" + m.Tag.String()
}

// Analysis is one attested decomposition of a word-form.
type Analysis struct {
	Stem   Morph `json:"stem"`
	Ending Morph `json:"ending"`
}

func (a Analysis) String() string {
	return a.Stem.String() + " + " + a.Ending.String()
}

// Lemma is the citation form of a predicate, i.e. its stem
// followed by the citation marker.
type Lemma struct {
	Form string `json:"form"`
	Tag  Tag    `json:"tag"`
}

// Candidate is a stem/ending split of a word-form that has not been
// checked against any lexicon yet.
type Candidate struct {
	Stem   string
	Ending string
}
