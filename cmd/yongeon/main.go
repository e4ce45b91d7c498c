// Command yongeon trains dictionary sets from an annotated corpus and
// queries them from the command line.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var levelMapping = map[string]zerolog.Level{
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warning": zerolog.WarnLevel,
	"warn":    zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
}

func setupLog(path, level string) {
	lev, ok := levelMapping[level]
	if !ok {
		log.Fatal().Msgf("invalid logging level: %s", level)
	}
	zerolog.SetGlobalLevel(lev)
	if path != "" {
		log.Logger = log.Output(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    50,
			MaxBackups: 5,
		})

	} else {
		log.Logger = log.Output(
			zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: time.RFC3339,
			},
		)
	}
}

// VerifyFlags stops the command when a required flag has no value.
func VerifyFlags(cmd *commander.Command, required []string) {
	for _, name := range required {
		f := cmd.Flag.Lookup(name)
		if f.Value.String() == "" {
			log.Error().Msgf("Required flag %s not set", f.Name)
			cmd.Usage()
			os.Exit(1)
		}
	}
}

// addLogFlags registers the logging flags shared by all the commands.
func addLogFlags(fs *flag.FlagSet, path, level *string) {
	fs.StringVar(path, "log-path", "", "log file (logs to stderr when empty)")
	fs.StringVar(level, "log-level", "info", "logging level: debug, info, warn, error")
}

func main() {
	cmd := &commander.Command{
		UsageLine: os.Args[0],
		Short:     "Korean predicate lemmatizer",
		Subcommands: []*commander.Command{
			trainCmd(),
			analyzeCmd(),
			lemmatizeCmd(),
			conjugateCmd(),
			extractCmd(),
		},
		Flag: *flag.NewFlagSet("yongeon", flag.ExitOnError),
	}
	if err := cmd.Dispatch(os.Args[1:]); err != nil {
		fmt.Printf("**err**: %v\n", err)
		os.Exit(1)
	}
}
