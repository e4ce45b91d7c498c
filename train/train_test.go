package train

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hangul-nlp/yongeon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRows(t *testing.T, lines ...string) []Row {
	t.Helper()
	rows := make([]Row, 0, len(lines))
	for _, line := range lines {
		row, err := ParseRow(line)
		require.NoError(t, err)
		rows = append(rows, row)
	}
	return rows
}

func trainingRows(t *testing.T) []Row {
	return mustRows(t,
		"가까웠는데\t가깝/Adjective + 었는데/Eomi\t3",
		"가까워지며\t가까워지/Verb + 며/Eomi\t2",
		"가까운\t가깝/Adjective + ㄴ/Eomi\t4",
		"가까된\t가깝/Adjective + 는/Eomi\t1",
		"가깝\u3000다\t가깝/Adjective + 다/Eomi\t1",
		"사과\t사과/Noun\t5",
	)
}

func TestExtractRules(t *testing.T) {
	rows := trainingRows(t)
	rows = append(rows, rows[0])
	ex := ExtractRules(rows)

	assert.Equal(t, map[string][]yongeon.RulePair{
		"까웠": {{Stem: "깝", Ending: "었"}},
		"까운": {{Stem: "깝", Ending: "ㄴ"}},
	}, ex.Rules)
	assert.Equal(t, 2, ex.Len())
	assert.Equal(t, 1, ex.Skipped)
	require.Len(t, ex.Rejected, 2)
	assert.Equal(t, "가까된", ex.Rejected[0].Row.Eojeol)
	assert.Equal(t, "가깝\u3000다", ex.Rejected[1].Row.Eojeol)
	for _, r := range ex.Rejected {
		var inc *RuleInconsistencyError
		assert.ErrorAs(t, r.Err, &inc)
	}
}

func TestTrainFromCorpus(t *testing.T) {
	model, err := TrainFromCorpus(trainingRows(t))
	require.NoError(t, err)

	assert.Equal(t, FreqMap{"가깝": 7}, model.Adjectives)
	assert.Equal(t, FreqMap{"가까워지": 2}, model.Verbs)
	assert.Equal(t, FreqMap{"었는데": 3, "며": 2, "ㄴ": 4}, model.Endings)
	assert.Equal(t, 2, model.Rules.Len())
	assert.Equal(t, 16, model.Total)
	assert.Equal(t, 2, model.RejectedCount())
	assert.InDelta(t, 2.0/16.0, model.RejectionRate(), 1e-9)
	assert.Equal(t, 1, model.Skipped)
}

func TestTrainFromCorpusEmpty(t *testing.T) {
	model, err := TrainFromCorpus(nil)
	require.NoError(t, err)
	assert.Zero(t, model.Rules.Len())
	assert.Zero(t, model.RejectionRate())
}

func TestFreqMapPrune(t *testing.T) {
	fm := FreqMap{"가": 1, "하": 5, "먹": 3}
	assert.Equal(t, FreqMap{"하": 5, "먹": 3}, fm.Prune(3))
	assert.Len(t, fm, 3)
	assert.Equal(t, []string{"가", "먹", "하"}, fm.Sorted())
}

func TestWriteLexicon(t *testing.T) {
	var b strings.Builder
	require.NoError(t, WriteLexicon(&b, FreqMap{"하": 5, "가": 1}))
	assert.Equal(t, "가 1\n하 5\n", b.String())
}

func TestWriteRules(t *testing.T) {
	rules, err := yongeon.NewRuleTableFrom(map[string][]yongeon.RulePair{
		"해":  {{Stem: "하", Ending: "여"}, {Stem: "하", Ending: "아"}},
		"까웠": {{Stem: "깝", Ending: "었"}},
	})
	require.NoError(t, err)
	var b strings.Builder
	require.NoError(t, WriteRules(&b, rules))
	assert.Equal(t, "까웠 깝 었\n해 하 아\n해 하 여\n", b.String())
}

func TestWriteRejections(t *testing.T) {
	model := &Model{Rejected: []Rejection{
		{Row: Row{Eojeol: "가까된", Count: 1}, Err: &RuleInconsistencyError{
			Eojeol: "가까된",
			Left:   yongeon.Morph{Form: "가깝", Tag: yongeon.TagAdjective},
			Right:  yongeon.Morph{Form: "는", Tag: yongeon.TagEnding},
		}},
		{Row: Row{Eojeol: "가까랍", Count: 4}, Err: &RuleInconsistencyError{
			Eojeol: "가까랍",
			Left:   yongeon.Morph{Form: "가깝", Tag: yongeon.TagAdjective},
			Right:  yongeon.Morph{Form: "ㅂ", Tag: yongeon.TagEnding},
		}},
		{Row: Row{Eojeol: "가까된", Count: 2}, Err: &RuleInconsistencyError{
			Eojeol: "가까된",
			Left:   yongeon.Morph{Form: "가깝", Tag: yongeon.TagAdjective},
			Right:  yongeon.Morph{Form: "는", Tag: yongeon.TagEnding},
		}},
	}}
	var b strings.Builder
	require.NoError(t, WriteRejections(&b, model.Exceptions()))
	assert.Equal(t,
		"가까랍, 가깝, Adjective, ㅂ, Eomi\t4\n"+
			"가까된, 가깝, Adjective, 는, Eomi\t3\n",
		b.String())
}

func TestSaveModelRoundTrip(t *testing.T) {
	model, err := TrainFromCorpus(trainingRows(t))
	require.NoError(t, err)
	dir := filepath.Join(t.TempDir(), "trained")
	require.NoError(t, SaveModel(dir, model, 1))

	data, err := os.ReadFile(filepath.Join(dir, yongeon.RulesFile))
	require.NoError(t, err)
	assert.Equal(t, "까운 깝 ㄴ\n까웠 깝 었\n", string(data))
	assert.FileExists(t, filepath.Join(dir, ExceptionsFile))

	dict, err := yongeon.LoadDictionary(yongeon.PathsIn(dir))
	require.NoError(t, err)
	lem, err := yongeon.NewFromDictionary(dict, "")
	require.NoError(t, err)

	assert.Equal(t, []yongeon.Analysis{{
		Stem:   yongeon.Morph{Form: "가깝", Tag: yongeon.TagAdjective},
		Ending: yongeon.Morph{Form: "었는데", Tag: yongeon.TagEnding},
	}}, lem.Analyze("가까웠는데"))
	assert.Equal(t, []yongeon.Lemma{{Form: "가깝다", Tag: yongeon.TagAdjective}}, lem.Lemmatize("가까운"))
	assert.Contains(t, lem.Conjugate("가깝", "었는데"), "가까웠는데")
}

func TestSaveModelPrunes(t *testing.T) {
	model, err := TrainFromCorpus(trainingRows(t))
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, SaveModel(dir, model, 3))

	data, err := os.ReadFile(filepath.Join(dir, yongeon.VerbsFile))
	require.NoError(t, err)
	assert.Empty(t, string(data))
	data, err = os.ReadFile(filepath.Join(dir, yongeon.EndingsFile))
	require.NoError(t, err)
	assert.Equal(t, "ㄴ 4\n었는데 3\n", string(data))
}
