package yongeon

// Conjugate returns the surface forms of stem followed by ending.
// Every surface registered for (last syllable of stem, first syllable
// of ending) replaces that boundary; when the ending has at least two
// syllables, surfaces registered for (last syllable of stem, first two
// syllables of ending) replace the wider boundary. The literal
// concatenation is always appended last, so the result is never empty.
func Conjugate(stem, ending string, rules *RuleTable) []string {
	s := []rune(stem)
	e := []rune(ending)
	var forms []string
	if len(s) > 0 && len(e) > 0 {
		prefix := string(s[:len(s)-1])
		tail := string(s[len(s)-1])
		for _, surface := range rules.Surfaces(RulePair{Stem: tail, Ending: string(e[0])}) {
			forms = append(forms, prefix+surface+string(e[1:]))
		}
		if len(e) >= 2 {
			for _, surface := range rules.Surfaces(RulePair{Stem: tail, Ending: string(e[:2])}) {
				forms = append(forms, prefix+surface+string(e[2:]))
			}
		}
	}
	forms = append(forms, stem+ending)
	return forms
}

// Unique returns a deduplicated slice preserving order.
func Unique[T comparable](items []T) []T {
	seen := make(map[T]bool, len(items))
	var out []T
	for _, s := range items {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
