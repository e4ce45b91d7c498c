package train

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/hangul-nlp/yongeon"
	"github.com/rs/zerolog/log"
)

// ExceptionsFile is the name of the rejected rows log written by SaveModel.
const ExceptionsFile = "exception_cases_logs"

// WriteLexicon writes "morph count" lines sorted by morph.
func WriteLexicon(w io.Writer, fm FreqMap) error {
	bw := bufio.NewWriter(w)
	for _, m := range fm.Sorted() {
		if _, err := fmt.Fprintf(bw, "%s %d\n", m, fm[m]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteRules writes "surface stem ending" lines sorted by surface
// and then by pair.
func WriteRules(w io.Writer, rules *yongeon.RuleTable) error {
	bw := bufio.NewWriter(w)
	all := rules.Rules()
	for _, surface := range rules.SortedSurfaces() {
		pairs := all[surface]
		sort.Slice(pairs, func(i, j int) bool {
			if pairs[i].Stem != pairs[j].Stem {
				return pairs[i].Stem < pairs[j].Stem
			}
			return pairs[i].Ending < pairs[j].Ending
		})
		for _, p := range pairs {
			if _, err := fmt.Fprintf(bw, "%s %s %s\n", surface, p.Stem, p.Ending); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WriteRejections writes one "eojeol, stem, tag, ending, tag<TAB>count"
// line per exception, the most frequent first.
func WriteRejections(w io.Writer, exceptions []Exception) error {
	bw := bufio.NewWriter(w)
	for _, e := range exceptions {
		var err error
		if e.Left.Form == "" {
			_, err = fmt.Fprintf(bw, "%s\t%d\n", e.Eojeol, e.Count)
		} else {
			_, err = fmt.Fprintf(bw, "%s, %s, %s, %s, %s\t%d\n",
				e.Eojeol, e.Left.Form, e.Left.Tag, e.Right.Form, e.Right.Tag, e.Count)
		}
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveModel writes the dictionary set of model into dir, dropping
// the morphs seen less than minCount times. The exceptions log is
// written only when some rows were rejected.
func SaveModel(dir string, model *Model, minCount int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dictionary dir: %w", err)
	}
	paths := yongeon.PathsIn(dir)
	lexicons := []struct {
		path string
		freq FreqMap
	}{
		{paths.Adjectives, model.Adjectives},
		{paths.Verbs, model.Verbs},
		{paths.Endings, model.Endings},
	}
	for _, lex := range lexicons {
		pruned := lex.freq.Prune(minCount)
		if err := writeFile(lex.path, func(w io.Writer) error { return WriteLexicon(w, pruned) }); err != nil {
			return err
		}
	}
	if err := writeFile(paths.Rules, func(w io.Writer) error { return WriteRules(w, model.Rules) }); err != nil {
		return err
	}
	if len(model.Rejected) > 0 {
		exceptions := model.Exceptions()
		path := filepath.Join(dir, ExceptionsFile)
		if err := writeFile(path, func(w io.Writer) error { return WriteRejections(w, exceptions) }); err != nil {
			return err
		}
	}
	log.Info().Str("dir", dir).Int("minCount", minCount).Msg("dictionary saved")
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
