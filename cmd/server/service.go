package main

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hangul-nlp/yongeon"
	"github.com/rs/zerolog/log"
)

// reloadDelay groups the bursts of events produced by an editor
// or by a training run rewriting all the dictionary files.
const reloadDelay = 500 * time.Millisecond

// service holds the lemmatizer shared by all the handlers.
// A reload builds a new lemmatizer and swaps it in, so a request
// always works with one consistent dictionary.
type service struct {
	conf    *yongeon.Config
	current atomic.Pointer[yongeon.Lemmatizer]
}

func newService(conf *yongeon.Config) (*service, error) {
	lem, err := yongeon.New(conf)
	if err != nil {
		return nil, err
	}
	svc := &service{conf: conf}
	svc.current.Store(lem)
	return svc, nil
}

func (svc *service) lemmatizer() *yongeon.Lemmatizer {
	return svc.current.Load()
}

// reload replaces the lemmatizer. On failure the previous one is kept.
func (svc *service) reload() error {
	lem, err := yongeon.New(svc.conf)
	if err != nil {
		return err
	}
	svc.current.Store(lem)
	log.Info().Interface("sizes", lem.Stats()).Msg("dictionary reloaded")
	return nil
}

func isDictionaryFile(name string) bool {
	switch filepath.Base(name) {
	case yongeon.VerbsFile, yongeon.AdjectivesFile, yongeon.EndingsFile, yongeon.RulesFile:
		return true
	}
	return false
}

// watchDictionary reloads the dictionary whenever one of its files
// changes, until ctx is cancelled.
func (svc *service) watchDictionary(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	dir := svc.conf.DictionaryPaths().Dir
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}
	log.Info().Str("dir", dir).Msg("watching dictionary for changes")

	go func() {
		defer watcher.Close()
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isDictionaryFile(ev.Name) || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("dictionary file changed")
				if timer == nil {
					timer = time.NewTimer(reloadDelay)
				} else {
					timer.Reset(reloadDelay)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				if err := svc.reload(); err != nil {
					log.Error().Err(err).Msg("failed to reload dictionary, keeping the previous one")
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error().Err(err).Msg("dictionary watcher error")
			}
		}
	}()
	return nil
}
