package main

import (
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/hangul-nlp/yongeon"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

// ---- JSON response types ------------------------------------------------

type analyzeResponse struct {
	Word     string             `json:"word"`
	Analyses []yongeon.Analysis `json:"analyses"`
}

type lemmatizeWordResponse struct {
	Word   string          `json:"word"`
	Lemmas []yongeon.Lemma `json:"lemmas"`
}

type wordResultJSON struct {
	Word   string          `json:"word"`
	Lemmas []yongeon.Lemma `json:"lemmas"`
}

type lemmatizeTextResponse struct {
	Results []wordResultJSON `json:"results"`
}

type conjugateResponse struct {
	Stem   string   `json:"stem"`
	Ending string   `json:"ending"`
	Forms  []string `json:"forms"`
}

type dictionaryResponse struct {
	Dir            string        `json:"dir"`
	Name           string        `json:"name"`
	CitationMarker string        `json:"citationMarker"`
	Sizes          yongeon.Stats `json:"sizes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("encode error")
		http.Error(w, "encode error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		log.Debug().Err(err).Msg("write error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// nonNil keeps empty results serialized as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// ---- handlers -----------------------------------------------------------

func handleAnalyze(svc *service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		word := r.URL.Query().Get("word")
		if word == "" {
			writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
			return
		}
		analyses := yongeon.Unique(svc.lemmatizer().Analyze(word))
		status := http.StatusOK
		if len(analyses) == 0 {
			status = http.StatusNotFound
		}
		writeJSON(w, status, analyzeResponse{Word: word, Analyses: nonNil(analyses)})
	}
}

func handleLemmatizeWord(svc *service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		word := r.URL.Query().Get("word")
		if word == "" {
			writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
			return
		}
		lemmas := yongeon.Unique(svc.lemmatizer().Lemmatize(word))
		status := http.StatusOK
		if len(lemmas) == 0 {
			status = http.StatusNotFound
		}
		writeJSON(w, status, lemmatizeWordResponse{Word: word, Lemmas: nonNil(lemmas)})
	}
}

func handleLemmatizeText(svc *service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		rawBody, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read request body")
			return
		}
		var body struct {
			Words []string `json:"words"`
		}
		if err := sonic.Unmarshal(rawBody, &body); err != nil || len(body.Words) == 0 {
			writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'words' list")
			return
		}

		lem := svc.lemmatizer()
		out := make([]wordResultJSON, 0, len(body.Words))
		for _, word := range body.Words {
			out = append(out, wordResultJSON{
				Word:   word,
				Lemmas: nonNil(yongeon.Unique(lem.Lemmatize(word))),
			})
		}
		writeJSON(w, http.StatusOK, lemmatizeTextResponse{Results: out})
	}
}

func handleConjugate(svc *service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		stem := yongeon.NormalizeWord(r.URL.Query().Get("stem"))
		ending := yongeon.NormalizeWord(r.URL.Query().Get("ending"))
		if stem == "" || ending == "" {
			writeError(w, http.StatusBadRequest, "both 'stem' and 'ending' query parameters are required")
			return
		}
		forms := yongeon.Unique(svc.lemmatizer().Conjugate(stem, ending))
		writeJSON(w, http.StatusOK, conjugateResponse{Stem: stem, Ending: ending, Forms: forms})
	}
}

func handleDictionary(svc *service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		lem := svc.lemmatizer()
		writeJSON(w, http.StatusOK, dictionaryResponse{
			Dir:            svc.conf.DictionaryDir,
			Name:           svc.conf.DictionaryName,
			CitationMarker: lem.CitationMarker(),
			Sizes:          lem.Stats(),
		})
	}
}
