package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/hangul-nlp/yongeon"
	"github.com/hangul-nlp/yongeon/train"
	"github.com/rs/zerolog/log"
)

var corpusTypes = map[string]bool{"type1": true, "type2": true, "type3": true}

type trainOptions struct {
	corpus     string
	repository string
	corpusType string
	out        string
	name       string
	minCount   int
	dedupe     bool
	logPath    string
	logLevel   string
}

// corpusPath returns the explicit corpus file or the word/morpheme
// table of the selected corpus type in a cleaned Sejong repository.
func (opts *trainOptions) corpusPath() (string, error) {
	if opts.corpus != "" {
		return opts.corpus, nil
	}
	if opts.repository == "" {
		return "", fmt.Errorf("either -corpus or -repository must be set")
	}
	if !corpusTypes[opts.corpusType] {
		return "", fmt.Errorf("unknown corpus type %q", opts.corpusType)
	}
	return filepath.Join(
		opts.repository, "data", "clean",
		fmt.Sprintf("counter_%s_pair_all.txt", opts.corpusType),
	), nil
}

func runTrain(opts *trainOptions) error {
	path, err := opts.corpusPath()
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()
	rows, err := train.ReadCorpus(f, train.ReadOptions{SkipHeader: true, Dedupe: opts.dedupe})
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	log.Info().Str("corpus", path).Int("rows", len(rows)).Msg("corpus loaded")

	model, err := train.TrainFromCorpus(rows)
	if err != nil {
		return err
	}
	dir := filepath.Join(opts.out, opts.name)
	if err := train.SaveModel(dir, model, opts.minCount); err != nil {
		return err
	}
	if len(model.Rejected) > 0 {
		log.Warn().
			Int("rows", len(model.Rejected)).
			Float64("rate", model.RejectionRate()).
			Str("log", filepath.Join(dir, train.ExceptionsFile)).
			Msg("some rows were rejected")
	}
	return nil
}

func trainCmd() *commander.Command {
	opts := &trainOptions{}
	cmd := &commander.Command{
		UsageLine: "train [options]",
		Short:     "build a dictionary set from a word/morpheme table",
		Long: `
build a dictionary set (Adjectives.txt, Verbs.txt, Eomis.txt, rules.txt)
from a tab-separated "eojeol, morph/Tag + morph/Tag, count" table

	$ yongeon train -corpus <table> -out <dictionary root> [-name default] [-min-count 1]
	$ yongeon train -repository <sejong_corpus_cleaner> -corpus-type type3 -out <dictionary root>

`,
		Flag: *flag.NewFlagSet("train", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&opts.corpus, "corpus", "", "word/morpheme table")
	cmd.Flag.StringVar(&opts.repository, "repository", "", "local sejong_corpus_cleaner repository, used when -corpus is not set")
	cmd.Flag.StringVar(&opts.corpusType, "corpus-type", "type3", "corpus type in the repository: type1, type2 or type3")
	cmd.Flag.StringVar(&opts.out, "out", yongeon.DfltDictionaryDir, "dictionary root directory")
	cmd.Flag.StringVar(&opts.name, "name", yongeon.DfltDictionaryName, "dictionary set name")
	cmd.Flag.IntVar(&opts.minCount, "min-count", 1, "minimum frequency of the kept morphs")
	cmd.Flag.BoolVar(&opts.dedupe, "dedupe", true, "keep only the first annotation of each word-form")
	addLogFlags(&cmd.Flag, &opts.logPath, &opts.logLevel)
	cmd.Run = func(cmd *commander.Command, args []string) error {
		VerifyFlags(cmd, []string{"out", "name"})
		setupLog(opts.logPath, opts.logLevel)
		return runTrain(opts)
	}
	return cmd
}
