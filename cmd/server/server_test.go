package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/hangul-nlp/yongeon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func copyDemo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dst := filepath.Join(root, "demo")
	require.NoError(t, os.MkdirAll(dst, 0o755))
	for _, name := range []string{yongeon.VerbsFile, yongeon.AdjectivesFile, yongeon.EndingsFile, yongeon.RulesFile} {
		data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "demo", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dst, name), data, 0o644))
	}
	return root
}

func newTestService(t *testing.T) *service {
	t.Helper()
	t.Setenv(yongeon.EnvDictDir, "")
	conf := yongeon.DefaultConfig()
	conf.DictionaryDir = copyDemo(t)
	conf.DictionaryName = "demo"
	svc, err := newService(conf)
	require.NoError(t, err)
	return svc
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var resp map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestAnalyzeEndpoint(t *testing.T) {
	h := newHandler(newTestService(t))
	rec, resp := do(t, h, http.MethodGet, "/api/analyze?word="+url.QueryEscape("차가우니까"), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
	analyses := resp["analyses"].([]any)
	require.Len(t, analyses, 1)
	stem := analyses[0].(map[string]any)["stem"].(map[string]any)
	assert.Equal(t, "차갑", stem["form"])
	assert.Equal(t, "Adjective", stem["tag"])

	rec, resp = do(t, h, http.MethodGet, "/api/analyze?word="+url.QueryEscape("컴퓨터"), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, resp["analyses"])

	rec, _ = do(t, h, http.MethodGet, "/api/analyze", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/analyze?word=x", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestLemmatizeEndpoints(t *testing.T) {
	h := newHandler(newTestService(t))
	rec, resp := do(t, h, http.MethodGet, "/api/lemmatize?word="+url.QueryEscape("갔다"), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{map[string]any{"form": "가다", "tag": "Verb"}}, resp["lemmas"])

	rec, resp = do(t, h, http.MethodPost, "/api/lemmatize/text", `{"words":["들어","컴퓨터"]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	results := resp["results"].([]any)
	require.Len(t, results, 2)
	assert.Equal(t, []any{map[string]any{"form": "듣다", "tag": "Verb"}}, results[0].(map[string]any)["lemmas"])
	assert.Equal(t, []any{}, results[1].(map[string]any)["lemmas"])

	rec, _ = do(t, h, http.MethodPost, "/api/lemmatize/text", `{"words":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConjugateEndpoint(t *testing.T) {
	h := newHandler(newTestService(t))
	target := "/api/conjugate?stem=" + url.QueryEscape("가") + "&ending=" + url.QueryEscape("았다")
	rec, resp := do(t, h, http.MethodGet, target, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"갔다", "가았다"}, resp["forms"])

	rec, _ = do(t, h, http.MethodGet, "/api/conjugate?stem=x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDictionaryEndpoint(t *testing.T) {
	h := newHandler(newTestService(t))
	rec, resp := do(t, h, http.MethodGet, "/api/dictionary", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "demo", resp["name"])
	assert.Equal(t, "다", resp["citationMarker"])
	sizes := resp["sizes"].(map[string]any)
	assert.EqualValues(t, 6, sizes["rules"])
}

func TestRateLimit(t *testing.T) {
	svc := newTestService(t)
	svc.conf.Server.RequestsPerSecond = 0.001
	svc.conf.Server.Burst = 1
	h := newHandler(svc)
	rec, _ := do(t, h, http.MethodGet, "/api/dictionary", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, h, http.MethodGet, "/api/dictionary", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestClientLimiterEvictsIdleClients(t *testing.T) {
	clock := time.Unix(1700000000, 0)
	cl := newClientLimiter(0.001, 1)
	cl.now = func() time.Time { return clock }

	assert.True(t, cl.allow("10.0.0.1"))
	assert.False(t, cl.allow("10.0.0.1"))

	clock = clock.Add(limiterIdleTTL / 2)
	assert.True(t, cl.allow("10.0.0.2"))
	assert.Len(t, cl.limiters, 2)

	clock = clock.Add(limiterIdleTTL/2 + time.Second)
	assert.True(t, cl.allow("10.0.0.3"))
	assert.Len(t, cl.limiters, 2)
	assert.NotContains(t, cl.limiters, "10.0.0.1")
	assert.Contains(t, cl.limiters, "10.0.0.2")

	clock = clock.Add(2 * limiterIdleTTL)
	assert.True(t, cl.allow("10.0.0.1"))
	assert.Len(t, cl.limiters, 1)
}

func TestReload(t *testing.T) {
	svc := newTestService(t)
	before := svc.lemmatizer()
	rules := filepath.Join(svc.conf.DictionaryPaths().Dir, yongeon.RulesFile)

	f, err := os.OpenFile(rules, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("추우 춥 우\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, svc.reload())
	assert.NotSame(t, before, svc.lemmatizer())
	assert.Equal(t, 7, svc.lemmatizer().Stats().Rules)
	assert.Equal(t, 6, before.Stats().Rules)

	require.NoError(t, os.WriteFile(rules, []byte("broken\n"), 0o644))
	assert.Error(t, svc.reload())
	assert.Equal(t, 7, svc.lemmatizer().Stats().Rules)
}

func TestIsDictionaryFile(t *testing.T) {
	assert.True(t, isDictionaryFile("/data/default/rules.txt"))
	assert.True(t, isDictionaryFile("Eomis.txt"))
	assert.False(t, isDictionaryFile("/data/default/rules.txt.swp"))
}
