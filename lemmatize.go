package yongeon

// Generate enumerates every (stem, ending) split of word that is either
// a literal boundary or implied by a sound-change rule centered at some
// position. Nothing is filtered or deduplicated here.
//
// At position i, with right = word[i+1:]:
//   - the literal split (word[:i+1], right), unless i is the last position
//   - for a rule keyed by word[i]: (word[:i] + stem, ending + right)
//   - for a rule keyed by the 2- or 3-syllable window starting at i:
//     (word[:i] + stem, ending + word[i+len(window):])
//
// The remainder after a window always starts past the whole window. For a
// 2-syllable window this is right[1:]; for a 3-syllable window it is
// right[2:], not right[1:], which is the shape train.ExtractRule gives to
// rules learned from word-forms one syllable longer than their morphs.
func Generate(word string, rules *RuleTable) []Candidate {
	chars := []rune(word)
	n := len(chars)
	var ans []Candidate
	for i := 0; i < n; i++ {
		leftExcl := string(chars[:i])
		right := string(chars[i+1:])
		if i < n-1 {
			ans = append(ans, Candidate{Stem: string(chars[:i+1]), Ending: right})
		}
		for _, p := range rules.Canonical(string(chars[i])) {
			ans = append(ans, Candidate{Stem: leftExcl + p.Stem, Ending: p.Ending + right})
		}
		for size := 2; size <= 3 && i+size <= n; size++ {
			rest := string(chars[i+size:])
			for _, p := range rules.Canonical(string(chars[i : i+size])) {
				ans = append(ans, Candidate{Stem: leftExcl + p.Stem, Ending: p.Ending + rest})
			}
		}
	}
	return ans
}

// Analyze keeps the candidates of word whose ending is a known ending
// and whose stem is a known adjective and/or verb. A stem present in both
// lexicons yields two analyses, the adjective one first.
func Analyze(word string, verbs, adjectives, endings *Lexicon, rules *RuleTable) []Analysis {
	var ans []Analysis
	for _, c := range Generate(word, rules) {
		if !endings.Contains(c.Ending) {
			continue
		}
		ending := Morph{Form: c.Ending, Tag: TagEnding}
		if adjectives.Contains(c.Stem) {
			ans = append(ans, Analysis{Stem: Morph{Form: c.Stem, Tag: TagAdjective}, Ending: ending})
		}
		if verbs.Contains(c.Stem) {
			ans = append(ans, Analysis{Stem: Morph{Form: c.Stem, Tag: TagVerb}, Ending: ending})
		}
	}
	return ans
}

// Lemmatize runs Analyze and turns each stem into its citation form
// by appending citationMarker.
func Lemmatize(word string, verbs, adjectives, endings *Lexicon, rules *RuleTable, citationMarker string) []Lemma {
	return lemmatize(Analyze(word, verbs, adjectives, endings, rules), citationMarker)
}

func lemmatize(analyses []Analysis, citationMarker string) []Lemma {
	if len(analyses) == 0 {
		return nil
	}
	ans := make([]Lemma, 0, len(analyses))
	for _, a := range analyses {
		ans = append(ans, Lemma{Form: a.Stem.Form + citationMarker, Tag: a.Stem.Tag})
	}
	return ans
}
