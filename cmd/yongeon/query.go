package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/hangul-nlp/yongeon"
	"github.com/hangul-nlp/yongeon/train"
)

type dictOptions struct {
	configPath string
	dataDir    string
	dictName   string
	marker     string
	logPath    string
	logLevel   string
}

func (opts *dictOptions) register(fs *flag.FlagSet) {
	fs.StringVar(&opts.configPath, "config", "", "JSON configuration file")
	fs.StringVar(&opts.dataDir, "data", "", "dictionary root directory (overrides the configuration)")
	fs.StringVar(&opts.dictName, "dict", "", "dictionary set name (overrides the configuration)")
	fs.StringVar(&opts.marker, "marker", "", "citation marker appended to lemmas (overrides the configuration)")
	addLogFlags(fs, &opts.logPath, &opts.logLevel)
}

func (opts *dictOptions) lemmatizer() (*yongeon.Lemmatizer, error) {
	var conf *yongeon.Config
	if opts.configPath != "" {
		var err error
		conf, err = yongeon.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}

	} else {
		conf = yongeon.DefaultConfig()
	}
	if opts.dataDir != "" {
		conf.DictionaryDir = opts.dataDir
	}
	if opts.dictName != "" {
		conf.DictionaryName = opts.dictName
	}
	if opts.marker != "" {
		conf.CitationMarker = opts.marker
	}
	setupLog(opts.logPath, opts.logLevel)
	return yongeon.New(conf)
}

func printAnalyses(w io.Writer, word string, analyses []yongeon.Analysis) {
	if len(analyses) == 0 {
		fmt.Fprintf(w, "%s\t-\n", word)
		return
	}
	for _, a := range analyses {
		fmt.Fprintf(w, "%s\t%s\n", word, a)
	}
}

func printLemmas(w io.Writer, word string, lemmas []yongeon.Lemma) {
	if len(lemmas) == 0 {
		fmt.Fprintf(w, "%s\t-\n", word)
		return
	}
	for _, l := range lemmas {
		fmt.Fprintf(w, "%s\t%s/%s\n", word, l.Form, l.Tag)
	}
}

func analyzeCmd() *commander.Command {
	opts := &dictOptions{}
	cmd := &commander.Command{
		UsageLine: "analyze [options] <word>...",
		Short:     "print the stem/ending analyses of word-forms",
		Flag:      *flag.NewFlagSet("analyze", flag.ExitOnError),
	}
	opts.register(&cmd.Flag)
	cmd.Run = func(cmd *commander.Command, args []string) error {
		if len(args) == 0 {
			cmd.Usage()
			return fmt.Errorf("no word given")
		}
		lem, err := opts.lemmatizer()
		if err != nil {
			return err
		}
		for _, word := range args {
			printAnalyses(os.Stdout, word, yongeon.Unique(lem.Analyze(word)))
		}
		return nil
	}
	return cmd
}

func lemmatizeCmd() *commander.Command {
	opts := &dictOptions{}
	cmd := &commander.Command{
		UsageLine: "lemmatize [options] <word>...",
		Short:     "print the citation forms of word-forms",
		Flag:      *flag.NewFlagSet("lemmatize", flag.ExitOnError),
	}
	opts.register(&cmd.Flag)
	cmd.Run = func(cmd *commander.Command, args []string) error {
		if len(args) == 0 {
			cmd.Usage()
			return fmt.Errorf("no word given")
		}
		lem, err := opts.lemmatizer()
		if err != nil {
			return err
		}
		for _, word := range args {
			printLemmas(os.Stdout, word, yongeon.Unique(lem.Lemmatize(word)))
		}
		return nil
	}
	return cmd
}

func conjugateCmd() *commander.Command {
	opts := &dictOptions{}
	cmd := &commander.Command{
		UsageLine: "conjugate [options] <stem> <ending>",
		Short:     "print the surface forms of a stem followed by an ending",
		Flag:      *flag.NewFlagSet("conjugate", flag.ExitOnError),
	}
	opts.register(&cmd.Flag)
	cmd.Run = func(cmd *commander.Command, args []string) error {
		if len(args) != 2 {
			cmd.Usage()
			return fmt.Errorf("expected a stem and an ending")
		}
		lem, err := opts.lemmatizer()
		if err != nil {
			return err
		}
		stem, ending := yongeon.NormalizeWord(args[0]), yongeon.NormalizeWord(args[1])
		for _, form := range yongeon.Unique(lem.Conjugate(stem, ending)) {
			fmt.Println(form)
		}
		return nil
	}
	return cmd
}

// parseAnnotation reads an "eojeol" argument and a "morph/Tag + morph/Tag"
// argument into a corpus row.
func parseAnnotation(eojeol, morphs string) (train.Row, error) {
	return train.ParseRow(strings.Join([]string{eojeol, morphs, "1"}, "\t"))
}

func extractCmd() *commander.Command {
	cmd := &commander.Command{
		UsageLine: "extract <eojeol> <morph/Tag + morph/Tag>",
		Short:     "print the sound-change rule realized by an annotated word-form",
		Long: `
print the sound-change rule realized by an annotated word-form

	$ yongeon extract 가까웠는데 "가깝/Adjective + 었는데/Eomi"
	까웠 깝 었

`,
		Flag: *flag.NewFlagSet("extract", flag.ExitOnError),
	}
	cmd.Run = func(cmd *commander.Command, args []string) error {
		if len(args) != 2 {
			cmd.Usage()
			return fmt.Errorf("expected a word-form and its annotation")
		}
		row, err := parseAnnotation(args[0], args[1])
		if err != nil {
			return err
		}
		left, right, ok := row.Predicate()
		if !ok {
			return fmt.Errorf("annotation must be a stem and an ending with known tags")
		}
		rule, err := train.ExtractRule(row.Eojeol, left.Form, left.Tag, right.Form, right.Tag)
		if err != nil {
			return err
		}
		if rule == nil {
			fmt.Println("-")
			return nil
		}
		fmt.Printf("%s %s %s\n", rule.Surface, rule.Canon.Stem, rule.Canon.Ending)
		return nil
	}
	return cmd
}
