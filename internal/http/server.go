// Package http exposes the JSON API over the application services. One
// logical writer: every mutation runs synchronously on the request path and
// writes the full collection snapshot through the store.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/ai"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/cache"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/services"
	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/storage"
)

type Server struct {
	http.Server

	store        storage.Store
	transactions *services.TransactionService
	reconciler   *services.Reconciler
	resolver     *ai.Resolver
	insights     ai.InsightGenerator

	rateLimiter *rateLimiter

	// Cached summaries keyed by period+currency; purged on every mutation.
	summaryCache *cache.LRUCache[core.SummaryData]

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// server. The insight generator may be nil; insight requests then answer
// with the fallback message.
func NewServer(addr string, store storage.Store, transactions *services.TransactionService, reconciler *services.Reconciler, resolver *ai.Resolver, insights ai.InsightGenerator) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:        store,
		transactions: transactions,
		reconciler:   reconciler,
		resolver:     resolver,
		insights:     insights,
		rateLimiter:  newRateLimiter(),
		summaryCache: cache.NewLRUCache[core.SummaryData](100, 5*time.Minute),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /transactions", s.withMiddleware(s.handleListTransactions))
	mux.HandleFunc("POST /transactions", s.withMiddleware(s.handleCreateTransaction))
	mux.HandleFunc("PUT /transactions/{id}", s.withMiddleware(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /transactions/{id}", s.withMiddleware(s.handleDeleteTransaction))
	mux.HandleFunc("POST /transactions/bulk-delete", s.withMiddleware(s.handleBulkDeleteTransactions))

	mux.HandleFunc("GET /recurring", s.withMiddleware(s.handleListRecurring))
	mux.HandleFunc("POST /recurring", s.withMiddleware(s.handleCreateRecurring))
	mux.HandleFunc("DELETE /recurring/{id}", s.withMiddleware(s.handleDeleteRecurring))

	mux.HandleFunc("GET /budgets", s.withMiddleware(s.handleGetBudgets))
	mux.HandleFunc("PUT /budgets", s.withMiddleware(s.handlePutBudgets))
	mux.HandleFunc("GET /preferences", s.withMiddleware(s.handleGetPreferences))
	mux.HandleFunc("PUT /preferences", s.withMiddleware(s.handlePutPreferences))

	mux.HandleFunc("GET /summary", s.withMiddleware(s.handleSummary))
	mux.HandleFunc("GET /alerts", s.withMiddleware(s.handleAlerts))
	mux.HandleFunc("GET /export/csv", s.withMiddleware(s.handleExportCSV))

	mux.HandleFunc("GET /currencies", s.withMiddleware(s.handleListCurrencies))
	mux.HandleFunc("GET /convert", s.withMiddleware(s.handleConvert))

	mux.HandleFunc("POST /categorize", s.withMiddleware(s.handleCategorize))
	mux.HandleFunc("POST /categorize/confirm", s.withMiddleware(s.handleConfirmCategory))
	mux.HandleFunc("GET /insights", s.withMiddleware(s.handleInsights))

	return s
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withMiddleware adds security headers, rate limiting and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		// Rate-limit mutations only; reads stay cheap via the cache.
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// invalidateSummaries drops every cached summary after a mutation.
func (s *Server) invalidateSummaries() {
	s.summaryCache.Purge()
}

// InvalidateSummaries drops the cached summaries. Callers that materialize
// transactions outside the request path use it so cached summaries never
// outlive the data they were computed from.
func (s *Server) InvalidateSummaries() {
	s.invalidateSummaries()
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Simple in-memory rate limiter.
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]
	if !exists {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}

	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	// Allow up to 60 mutations per minute per client.
	client.requests++
	client.lastRequest = now
	return client.requests <= 60
}
