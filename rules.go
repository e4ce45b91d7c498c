package yongeon

import (
	"sort"
	"strings"
	"sync"
	"unicode"
)

// LegacyEndingHead fills the ending of a two-column rule line.
const LegacyEndingHead = "ㅏ"

// RulePair is the canonical side of a sound-change rule: the tail of
// the stem and the head of the ending that together surface differently.
type RulePair struct {
	Stem   string `json:"stem"`
	Ending string `json:"ending"`
}

// ParseRuleFields builds a rule from the whitespace-separated columns of
// a rule line. Three columns are "surface stem ending"; two columns are
// the legacy "surface stem" form whose ending is LegacyEndingHead.
func ParseRuleFields(fields []string) (string, RulePair, error) {
	switch len(fields) {
	case 3:
		return fields[0], RulePair{Stem: fields[1], Ending: fields[2]}, nil
	case 2:
		return fields[0], RulePair{Stem: fields[1], Ending: LegacyEndingHead}, nil
	default:
		return "", RulePair{}, newConfigError("rule", "expected 2 or 3 columns, got %d", len(fields))
	}
}

func validMorph(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, unicode.IsSpace) < 0
}

func validateRule(surface string, pair RulePair) error {
	if !validMorph(surface) {
		return newConfigError("rule", "invalid surface %q", surface)
	}
	if !validMorph(pair.Stem) {
		return newConfigError("rule", "invalid stem %q for surface %q", pair.Stem, surface)
	}
	if !validMorph(pair.Ending) {
		return newConfigError("rule", "invalid ending %q for surface %q", pair.Ending, surface)
	}
	return nil
}

// RuleTable holds the sound-change rules in both directions.
// conjugateRules is always the exact inverse of lemmaRules: it is
// only ever written together with lemmaRules, under the same lock.
// Both mappings keep insertion order so that lookups are deterministic.
type RuleTable struct {
	mu sync.RWMutex

	// lemmaRules maps a surface window → canonical pairs it realizes.
	lemmaRules map[string][]RulePair

	// conjugateRules maps a canonical pair → surface windows.
	conjugateRules map[RulePair][]string
}

// NewRuleTable creates an empty rule table.
func NewRuleTable() *RuleTable {
	return &RuleTable{
		lemmaRules:     make(map[string][]RulePair),
		conjugateRules: make(map[RulePair][]string),
	}
}

// NewRuleTableFrom creates a rule table from the surface → pairs mapping.
func NewRuleTableFrom(rules map[string][]RulePair) (*RuleTable, error) {
	t := NewRuleTable()
	if err := t.AddRules(rules); err != nil {
		return nil, err
	}
	return t, nil
}

// AddRule adds a single rule.
func (t *RuleTable) AddRule(surface string, pair RulePair) error {
	return t.AddRules(map[string][]RulePair{surface: {pair}})
}

// AddRules validates all the rules first and then adds them as one unit.
// On error the table is not modified.
func (t *RuleTable) AddRules(rules map[string][]RulePair) error {
	surfaces := make([]string, 0, len(rules))
	for surface, pairs := range rules {
		if len(pairs) == 0 {
			return newConfigError("rule", "no canonical pairs for surface %q", surface)
		}
		for _, p := range pairs {
			if err := validateRule(surface, p); err != nil {
				return err
			}
		}
		surfaces = append(surfaces, surface)
	}
	sort.Strings(surfaces)

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, surface := range surfaces {
		for _, p := range rules[surface] {
			t.add(surface, p)
		}
	}
	return nil
}

// add expects the write lock to be held.
func (t *RuleTable) add(surface string, pair RulePair) {
	for _, p := range t.lemmaRules[surface] {
		if p == pair {
			return
		}
	}
	t.lemmaRules[surface] = append(t.lemmaRules[surface], pair)
	t.conjugateRules[pair] = append(t.conjugateRules[pair], surface)
}

// Canonical returns the canonical pairs realized by the surface window.
// The returned slice must not be modified.
func (t *RuleTable) Canonical(surface string) []RulePair {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lemmaRules[surface]
}

// Surfaces returns the surface windows realizing the canonical pair.
// The returned slice must not be modified.
func (t *RuleTable) Surfaces(pair RulePair) []string {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.conjugateRules[pair]
}

// Len returns the number of (surface, pair) rules.
func (t *RuleTable) Len() int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, pairs := range t.lemmaRules {
		n += len(pairs)
	}
	return n
}

// Rules returns a copy of the surface → pairs mapping.
func (t *RuleTable) Rules() map[string][]RulePair {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string][]RulePair, len(t.lemmaRules))
	for surface, pairs := range t.lemmaRules {
		out[surface] = append([]RulePair(nil), pairs...)
	}
	return out
}

// ConjugateRules returns a copy of the pair → surfaces mapping.
func (t *RuleTable) ConjugateRules() map[RulePair][]string {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[RulePair][]string, len(t.conjugateRules))
	for pair, surfaces := range t.conjugateRules {
		out[pair] = append([]string(nil), surfaces...)
	}
	return out
}

// SortedSurfaces returns all surface windows in lexicographic order.
func (t *RuleTable) SortedSurfaces() []string {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.lemmaRules))
	for surface := range t.lemmaRules {
		out = append(out, surface)
	}
	sort.Strings(out)
	return out
}
