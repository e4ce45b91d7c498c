package main

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// withRequestLog tags each request with an ID (kept from the client
// when provided) and logs it once served.
func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, reqID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		t0 := time.Now()
		next.ServeHTTP(rec, r)
		log.Debug().
			Str("requestId", reqID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(t0)).
			Msg("request served")
	})
}

// limiterIdleTTL is how long the bucket of a silent client is kept.
const limiterIdleTTL = 10 * time.Minute

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter applies a token bucket per client IP. Buckets idle for
// longer than limiterIdleTTL are dropped on the next sweep.
type clientLimiter struct {
	limit     rate.Limit
	burst     int
	now       func() time.Time
	mu        sync.Mutex
	limiters  map[string]*clientEntry
	lastSweep time.Time
}

func newClientLimiter(perSec float64, burst int) *clientLimiter {
	return &clientLimiter{
		limit:    rate.Limit(perSec),
		burst:    burst,
		now:      time.Now,
		limiters: make(map[string]*clientEntry),
	}
}

func (cl *clientLimiter) allow(clientIP string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	now := cl.now()
	if cl.lastSweep.IsZero() {
		cl.lastSweep = now
	} else if now.Sub(cl.lastSweep) > limiterIdleTTL {
		cl.sweep(now)
	}
	entry, exists := cl.limiters[clientIP]
	if !exists {
		entry = &clientEntry{limiter: rate.NewLimiter(cl.limit, cl.burst)}
		cl.limiters[clientIP] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// sweep drops the idle buckets. The caller holds cl.mu.
func (cl *clientLimiter) sweep(now time.Time) {
	for ip, entry := range cl.limiters {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(cl.limiters, ip)
		}
	}
	cl.lastSweep = now
	log.Debug().Int("clients", len(cl.limiters)).Msg("rate limiter swept")
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (cl *clientLimiter) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !cl.allow(ip) {
			log.Debug().Str("clientIp", ip).Msg("limiting client with status 429")
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// newHandler assembles the API routes and the middleware chain.
func newHandler(svc *service) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", handleAnalyze(svc))
	mux.HandleFunc("/api/lemmatize/text", handleLemmatizeText(svc))
	mux.HandleFunc("/api/lemmatize", handleLemmatizeWord(svc))
	mux.HandleFunc("/api/conjugate", handleConjugate(svc))
	mux.HandleFunc("/api/dictionary", handleDictionary(svc))

	var handler http.Handler = mux
	conf := svc.conf.Server
	if conf.RequestsPerSecond > 0 {
		handler = newClientLimiter(conf.RequestsPerSecond, conf.Burst).wrap(handler)
	}
	if len(conf.CORSAllowedOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: conf.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Content-Type", requestIDHeader},
			ExposedHeaders: []string{requestIDHeader},
		}).Handler(handler)
	}
	return withRequestLog(handler)
}
