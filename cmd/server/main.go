// Command server exposes the Korean predicate lemmatizer as a JSON REST API.
//
// Endpoints:
//
//	GET  /api/analyze?word=<eojeol>
//	GET  /api/lemmatize?word=<eojeol>
//	POST /api/lemmatize/text   body: {"words":["...", ...]}
//	GET  /api/conjugate?stem=<stem>&ending=<ending>
//	GET  /api/dictionary
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hangul-nlp/yongeon"
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
			MaxAge:     30,
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

func loadConfig(path, dataDir, addr string) *yongeon.Config {
	var conf *yongeon.Config
	if path != "" {
		var err error
		conf, err = yongeon.LoadConfig(path)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}

	} else {
		conf = yongeon.DefaultConfig()
	}
	if dataDir != "" {
		conf.DictionaryDir = dataDir
	}
	if addr != "" {
		conf.Server.ListenAddress = addr
	}
	if err := conf.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return conf
}

func main() {
	confPath := flag.String("config", "", "path to a JSON configuration file")
	dataDir := flag.String("data", "", "dictionary root directory (overrides the configuration)")
	dictName := flag.String("dict", "", "dictionary set name (overrides the configuration)")
	addr := flag.String("addr", "", "listen address (overrides the configuration)")
	flag.Parse()

	conf := loadConfig(*confPath, *dataDir, *addr)
	if *dictName != "" {
		conf.DictionaryName = *dictName
	}
	setupLog(conf.LogPath, conf.LogLevel)

	svc, err := newService(conf)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if conf.Server.WatchDictionary {
		if err := svc.watchDictionary(ctx); err != nil {
			log.Error().Err(err).Msg("dictionary hot reload disabled")
		}
	}

	srv := &http.Server{
		Handler:      newHandler(svc),
		Addr:         conf.Server.ListenAddress,
		WriteTimeout: time.Duration(conf.Server.WriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(conf.Server.ReadTimeoutSecs) * time.Second,
	}
	go func() {
		log.Info().Msgf("listening on %s", conf.Server.ListenAddress)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	log.Info().Msg("Graceful shutdown completed")
}
