// Package http provides the dashboard's HTTP server and handlers.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/ortiq01/financial-dashboard/internal/cache"
	"github.com/ortiq01/financial-dashboard/internal/core"
	applog "github.com/ortiq01/financial-dashboard/internal/log"
	"github.com/ortiq01/financial-dashboard/internal/middleware/ratelimit"
	"github.com/ortiq01/financial-dashboard/internal/middleware/security"
	"github.com/ortiq01/financial-dashboard/internal/middleware/trace"
	syncpkg "github.com/ortiq01/financial-dashboard/internal/sync"
)

// SyncTrigger starts sync runs and reports their status.
type SyncTrigger interface {
	Trigger(ctx context.Context, creds syncpkg.Credentials, accountIDs []string) (syncpkg.Status, error)
	Status() syncpkg.Status
}

// SavingsStore persists savings accounts and their balance history.
type SavingsStore interface {
	ListSavings(ctx context.Context) ([]core.SavingsAccount, error)
	UpsertSavings(ctx context.Context, u core.SavingsUpdate) (core.SavingsAccount, error)
	History(ctx context.Context, accountName string, limit int) ([]core.SavingsEntry, error)
}

// SnapshotReader loads the persisted transaction snapshot.
type SnapshotReader interface {
	Load(ctx context.Context) core.Snapshot
}

// Options carries the request-independent server configuration.
type Options struct {
	Addr      string
	StaticDir string

	// Fallback credentials and account set for sync requests that do not
	// carry their own.
	Credentials syncpkg.Credentials
	AccountIDs  []string
}

type Server struct {
	http.Server

	trigger  SyncTrigger
	savings  SavingsStore
	snapshot SnapshotReader
	opts     Options

	// Snapshot responses are cached briefly; a completed sync invalidates.
	snapshotCache *cache.LRUCache[core.Snapshot]
	cacheManager  *cache.Manager

	limiter  *ratelimit.Limiter
	detector *security.Detector

	shutdownOnce sync.Once
}

const snapshotCacheKey = "snapshot"

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(opts Options, trigger SyncTrigger, savings SavingsStore, snapshot SnapshotReader) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              opts.Addr,
			Handler:           nil, // set below, after the middleware chain
			ReadHeaderTimeout: 10 * time.Second,
		},
		trigger:       trigger,
		savings:       savings,
		snapshot:      snapshot,
		opts:          opts,
		snapshotCache: cache.NewLRUCache[core.Snapshot](1, 30*time.Second),
		cacheManager:  cache.NewManager(),
		limiter:       ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector:      security.NewDetector(),
	}

	s.cacheManager.Register(s.snapshotCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)

	mux.HandleFunc("POST /api/sync", s.handleSync)
	mux.HandleFunc("GET /api/sync/status", s.handleSyncStatus)
	mux.HandleFunc("GET /api/transactions", s.handleTransactions)

	mux.HandleFunc("GET /api/savings", s.handleListSavings)
	mux.HandleFunc("POST /api/savings", s.handleUpsertSavings)
	mux.HandleFunc("GET /api/savings/history", s.handleSavingsHistory)

	if opts.StaticDir != "" {
		static := http.FileServer(http.Dir(opts.StaticDir))
		mux.Handle("GET /", security.StaticAssetMiddleware(3600)(static))
	}

	s.Server.Handler = s.middlewareChain(mux)

	return s
}

// middlewareChain wraps the mux with tracing, security headers, request
// logging, probe detection, and rate limiting on mutating requests.
func (s *Server) middlewareChain(next http.Handler) http.Handler {
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	limited := s.limiter.Middleware(s.detector.ExtractClientIP, nil)(next)

	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			// Logged but still served; detection is a signal, not a block.
			fields := applog.NewFields().
				WithComponent(applog.ComponentSecurity).
				WithClientIP(s.detector.ExtractClientIP(r))
			fields["method"] = r.Method
			fields["path"] = r.URL.Path
			fields["user_agent"] = r.Header.Get("User-Agent")
			applog.FromContext(r.Context()).WarnContext(r.Context(),
				"Suspicious request detected", fields.ToSlice()...)
		}
		if r.Method == http.MethodPost {
			limited.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})

	h = applog.RequestIDMiddleware(func(r *http.Request) string {
		return trace.GetRequestID(r.Context())
	})(h)
	h = applog.ComponentMiddleware(applog.ComponentHTTP)(h)
	h = applog.Middleware(applog.Default())(h)
	h = headers.Middleware(h)
	h = trace.NewMiddleware(s.detector.ExtractClientIP).Middleware(h)
	return h
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
