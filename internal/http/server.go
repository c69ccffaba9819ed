// Package http exposes the JSON API: expense mutations, the day summary,
// calendar markers, the weekly comparison, category and grocery management,
// and the yearly statistics.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/zayLatt25/receipt-app/internal/cache"
	applog "github.com/zayLatt25/receipt-app/internal/log"
	"github.com/zayLatt25/receipt-app/internal/services"
	"github.com/zayLatt25/receipt-app/internal/stats"
	"github.com/zayLatt25/receipt-app/internal/store"
)

const (
	dayCacheSize      = 200
	dayCacheTTL       = 5 * time.Minute
	cacheSweepEvery   = 10 * time.Minute
	mutationsPerMin   = 60
	handlerTimeout    = 10 * time.Second
	maxRequestBodyLen = 1 << 20
)

type Server struct {
	http.Server

	expenses  *services.ExpenseService
	summaries *services.SummaryService
	taxonomy  interface {
		store.TaxonomyReader
		store.TaxonomyWriter
	}
	grocery store.GroceryStore

	logger      *applog.Logger
	rateLimiter *rateLimiter

	// dayCache keeps recently served day summaries; mutations evict the
	// affected date.
	dayCache     *cache.LRUCache[stats.DaySummary]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer wires the routes and returns a ready-to-run server.
func NewServer(addr string, expenses *services.ExpenseService, summaries *services.SummaryService, taxonomy interface {
	store.TaxonomyReader
	store.TaxonomyWriter
}, grocery store.GroceryStore, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP)
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  handlerTimeout,
			WriteTimeout: handlerTimeout,
		},
		expenses:     expenses,
		summaries:    summaries,
		taxonomy:     taxonomy,
		grocery:      grocery,
		logger:       logger,
		rateLimiter:  newRateLimiter(mutationsPerMin),
		dayCache:     cache.NewLRUCache[stats.DaySummary](dayCacheSize, dayCacheTTL),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.dayCache)
	s.cacheManager.StartCleanup(cacheSweepEvery)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/expenses", s.withMiddleware(s.handleExpenses))
	mux.HandleFunc("/summary/day", s.withMiddleware(s.handleDaySummary))
	mux.HandleFunc("/summary/weekly", s.withMiddleware(s.handleWeeklySummary))
	mux.HandleFunc("/calendar/markers", s.withMiddleware(s.handleCalendarMarkers))
	mux.HandleFunc("/categories", s.withMiddleware(s.handleCategories))
	mux.HandleFunc("/grocery", s.withMiddleware(s.handleGrocery))
	mux.HandleFunc("/stats/yearly", s.withMiddleware(s.handleYearlyStats))
	mux.HandleFunc("/stats/categories", s.withMiddleware(s.handleCategoryStats))

	return s
}

// Shutdown stops the background goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withMiddleware adds request logging, a request ID, body size limiting and
// rate limiting on mutations.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := clientAddr(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyLen)

		s.logger.InfoContext(ctx, "Request started",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, clientIP)

		if isMutation(r.Method) && !s.rateLimiter.allow(clientIP) {
			s.logger.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldRequestID, requestID,
				applog.FieldClientIP, clientIP)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		rw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds())
	}
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// statusWriter captures the status code for the completion log line.
type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

type contextKey string

const requestIDKey contextKey = "request_id"

// requestIDFromContext returns the request ID stamped by withMiddleware, or
// an empty string for requests that did not pass through it.
func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
