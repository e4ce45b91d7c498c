// Package yongeon recovers the dictionary form of inflected Korean
// predicates (verbs and adjectives) and conjugates a stem and an ending
// back into the surface forms they can take.
//
// Analysis splits a word-form at every syllable boundary, expands splits
// implied by known sound-change rules, and keeps only the splits whose
// stem and ending are attested in the lexicons.
package yongeon

import (
	"github.com/rs/zerolog/log"
)

// Dictionary bundles the lexicons and the rule table an analyzer works with.
type Dictionary struct {
	Verbs      *Lexicon
	Adjectives *Lexicon
	Endings    *Lexicon
	Rules      *RuleTable
}

// Validate checks that all the parts of the dictionary are present
// and carry the expected tags.
func (d *Dictionary) Validate() error {
	if d == nil {
		return newConfigError("dictionary", "missing dictionary")
	}
	parts := []struct {
		lex  *Lexicon
		tag  Tag
		name string
	}{
		{d.Verbs, TagVerb, "verbs"},
		{d.Adjectives, TagAdjective, "adjectives"},
		{d.Endings, TagEnding, "endings"},
	}
	for _, p := range parts {
		if p.lex == nil {
			return newConfigError(p.name, "missing lexicon")
		}
		if p.lex.Tag() != p.tag {
			return newConfigError(p.name, "lexicon tagged %s, expected %s", p.lex.Tag(), p.tag)
		}
	}
	if d.Rules == nil {
		return newConfigError("rules", "missing rule table")
	}
	return nil
}

// Lemmatizer holds a loaded dictionary and provides the public API.
// The lexicons are never modified after construction; the rule table
// may only grow through AddRules.
type Lemmatizer struct {
	verbs      *Lexicon
	adjectives *Lexicon
	endings    *Lexicon
	rules      *RuleTable

	// citationMarker is appended to a stem to form its lemma.
	citationMarker string
}

// New loads the dictionary set selected by conf and returns
// a ready-to-use Lemmatizer.
func New(conf *Config) (*Lemmatizer, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	paths := conf.DictionaryPaths()
	dict, err := LoadDictionary(paths)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("dictionary", paths.Dir).
		Int("verbs", dict.Verbs.Len()).
		Int("adjectives", dict.Adjectives.Len()).
		Int("endings", dict.Endings.Len()).
		Int("rules", dict.Rules.Len()).
		Msg("dictionary loaded")
	return NewFromDictionary(dict, conf.CitationMarker)
}

// NewFromDictionary creates a Lemmatizer over already loaded data.
// An empty citationMarker falls back to DfltCitationMarker.
func NewFromDictionary(dict *Dictionary, citationMarker string) (*Lemmatizer, error) {
	if err := dict.Validate(); err != nil {
		return nil, err
	}
	if citationMarker == "" {
		citationMarker = DfltCitationMarker
	}
	return &Lemmatizer{
		verbs:          dict.Verbs,
		adjectives:     dict.Adjectives,
		endings:        dict.Endings,
		rules:          dict.Rules,
		citationMarker: citationMarker,
	}, nil
}

// Analyze returns every lexicon-attested (stem, ending) analysis of word.
// An unknown word yields an empty result.
func (l *Lemmatizer) Analyze(word string) []Analysis {
	return Analyze(NormalizeWord(word), l.verbs, l.adjectives, l.endings, l.rules)
}

// Lemmatize returns the citation forms word can be derived from.
func (l *Lemmatizer) Lemmatize(word string) []Lemma {
	return lemmatize(l.Analyze(word), l.citationMarker)
}

// Conjugate returns the surface forms of stem followed by ending.
// The regular concatenation is always the last item.
func (l *Lemmatizer) Conjugate(stem, ending string) []string {
	return Conjugate(NormalizeWord(stem), NormalizeWord(ending), l.rules)
}

// AddRules extends the rule table. Either all the rules are added
// or, on a validation error, none of them.
func (l *Lemmatizer) AddRules(rules map[string][]RulePair) error {
	return l.rules.AddRules(rules)
}

// Stats describes the size of the loaded dictionary.
type Stats struct {
	Verbs      int `json:"verbs"`
	Adjectives int `json:"adjectives"`
	Endings    int `json:"endings"`
	Rules      int `json:"rules"`
}

// Stats returns the sizes of the lexicons and the rule table.
func (l *Lemmatizer) Stats() Stats {
	return Stats{
		Verbs:      l.verbs.Len(),
		Adjectives: l.adjectives.Len(),
		Endings:    l.endings.Len(),
		Rules:      l.rules.Len(),
	}
}

// CitationMarker returns the suffix appended to stems by Lemmatize.
func (l *Lemmatizer) CitationMarker() string {
	return l.citationMarker
}
