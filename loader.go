package yongeon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
)

// LoadDictionary reads the three lexicons and the rule file of one
// dictionary set. The files are read concurrently; any unreadable or
// malformed file fails the whole load.
func LoadDictionary(paths DictionaryPaths) (*Dictionary, error) {
	dict := &Dictionary{}
	var g errgroup.Group
	g.Go(func() error {
		var err error
		dict.Verbs, err = loadLexicon(paths.Verbs, TagVerb)
		return err
	})
	g.Go(func() error {
		var err error
		dict.Adjectives, err = loadLexicon(paths.Adjectives, TagAdjective)
		return err
	})
	g.Go(func() error {
		var err error
		dict.Endings, err = loadLexicon(paths.Endings, TagEnding)
		return err
	})
	g.Go(func() error {
		var err error
		dict.Rules, err = loadRules(paths.Rules)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dict, nil
}

func loadLexicon(path string, tag Tag) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s lexicon: %w", tag, err)
	}
	defer f.Close()
	lex, err := ReadLexicon(f, tag)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lex, nil
}

func loadRules(path string) (*RuleTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules: %w", err)
	}
	defer f.Close()
	rules, err := ReadRules(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rules, nil
}

// ReadLexicon parses a lexicon file. Each non-empty line holds a morph
// optionally followed by its corpus frequency, which is ignored here.
func ReadLexicon(r io.Reader, tag Tag) (*Lexicon, error) {
	var morphs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		morphs = append(morphs, NormalizeWord(fields[0]))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return NewLexicon(tag, morphs...)
}

// ReadRules parses a rule file made of "surface stem ending" lines
// (or legacy "surface stem" lines, see ParseRuleFields).
func ReadRules(r io.Reader) (*RuleTable, error) {
	rules := make(map[string][]RulePair)
	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		for i := range fields {
			fields[i] = NormalizeWord(fields[i])
		}
		surface, pair, err := ParseRuleFields(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		rules[surface] = append(rules[surface], pair)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return NewRuleTableFrom(rules)
}
