package train

import (
	"errors"
	"sort"

	"github.com/hangul-nlp/yongeon"
	"github.com/rs/zerolog/log"
)

// Rejection is a row whose rule extraction failed.
type Rejection struct {
	Row Row
	Err error
}

// Extraction is the outcome of ExtractRules.
type Extraction struct {
	// Rules maps each surface window to its canonical pairs,
	// in order of first appearance.
	Rules map[string][]yongeon.RulePair

	// Rejected holds the rows that failed, with the reason.
	Rejected []Rejection

	// Skipped counts the rows that are not a single stem plus ending.
	Skipped int
}

func (ex *Extraction) add(rule *Rule) {
	for _, p := range ex.Rules[rule.Surface] {
		if p == rule.Canon {
			return
		}
	}
	ex.Rules[rule.Surface] = append(ex.Rules[rule.Surface], rule.Canon)
}

// Len returns the number of distinct (surface, pair) rules.
func (ex *Extraction) Len() int {
	n := 0
	for _, pairs := range ex.Rules {
		n += len(pairs)
	}
	return n
}

// ExtractRules runs ExtractRule over all the rows. A row that fails
// is recorded in Rejected and does not stop the batch.
func ExtractRules(rows []Row) *Extraction {
	ex := &Extraction{Rules: make(map[string][]yongeon.RulePair)}
	for _, row := range rows {
		extractRow(ex, row)
	}
	return ex
}

// extractRow returns the annotation of row when it was processed
// without a rejection.
func extractRow(ex *Extraction, row Row) (left, right yongeon.Morph, ok bool) {
	left, right, ok = row.Predicate()
	if !ok {
		ex.Skipped++
		return left, right, false
	}
	rule, err := ExtractRule(row.Eojeol, left.Form, left.Tag, right.Form, right.Tag)
	if err != nil {
		log.Debug().Err(err).Str("eojeol", row.Eojeol).Int("count", row.Count).Msg("rejected row")
		ex.Rejected = append(ex.Rejected, Rejection{Row: row, Err: err})
		return left, right, false
	}
	if rule != nil {
		ex.add(rule)
	}
	return left, right, true
}

// Model is a trained dictionary set together with training statistics.
type Model struct {
	Adjectives FreqMap
	Verbs      FreqMap
	Endings    FreqMap
	Rules      *yongeon.RuleTable
	Rejected   []Rejection

	// Skipped counts the rows that are not a single stem plus ending.
	Skipped int

	// Total is the summed frequency of all the rows.
	Total int
}

// RejectedCount returns the summed frequency of the rejected rows.
func (m *Model) RejectedCount() int {
	n := 0
	for _, r := range m.Rejected {
		n += r.Row.Count
	}
	return n
}

// RejectionRate returns the share of the corpus frequency that was
// rejected.
func (m *Model) RejectionRate() float64 {
	if m.Total == 0 {
		return 0
	}
	return float64(m.RejectedCount()) / float64(m.Total)
}

// Exceptions groups the rejected rows by annotation, summing their
// frequencies.
func (m *Model) Exceptions() []Exception {
	idx := make(map[Exception]int)
	var out []Exception
	for _, r := range m.Rejected {
		var e Exception
		e.Eojeol = r.Row.Eojeol
		var inc *RuleInconsistencyError
		if errors.As(r.Err, &inc) {
			e.Left, e.Right = inc.Left, inc.Right
		}
		if i, ok := idx[e]; ok {
			out[i].Count += r.Row.Count
			continue
		}
		e2 := e
		e2.Count = r.Row.Count
		idx[e] = len(out)
		out = append(out, e2)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Exception is a rejected annotation with its summed frequency.
type Exception struct {
	Eojeol string
	Left   yongeon.Morph
	Right  yongeon.Morph
	Count  int
}

// TrainFromCorpus extracts the rules of the rows and counts the
// frequency of every stem and ending seen in a row that was not
// rejected, weighted by the row count.
func TrainFromCorpus(rows []Row) (*Model, error) {
	ex := &Extraction{Rules: make(map[string][]yongeon.RulePair)}
	model := &Model{
		Adjectives: make(FreqMap),
		Verbs:      make(FreqMap),
		Endings:    make(FreqMap),
	}
	for _, row := range rows {
		model.Total += row.Count
		left, right, ok := extractRow(ex, row)
		if !ok {
			continue
		}
		switch left.Tag {
		case yongeon.TagAdjective:
			model.Adjectives.Add(left.Form, row.Count)
		case yongeon.TagVerb:
			model.Verbs.Add(left.Form, row.Count)
		default:
			continue
		}
		if right.Tag == yongeon.TagEnding {
			model.Endings.Add(right.Form, row.Count)
		}
	}
	rules, err := yongeon.NewRuleTableFrom(ex.Rules)
	if err != nil {
		return nil, err
	}
	model.Rules = rules
	model.Rejected = ex.Rejected
	model.Skipped = ex.Skipped
	log.Info().
		Int("rows", len(rows)).
		Int("rules", rules.Len()).
		Int("adjectives", len(model.Adjectives)).
		Int("verbs", len(model.Verbs)).
		Int("endings", len(model.Endings)).
		Int("rejected", len(model.Rejected)).
		Int("skipped", model.Skipped).
		Float64("rejectionRate", model.RejectionRate()).
		Msg("corpus processed")
	return model, nil
}
