package web

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hpungsan/tweetsmith/internal/ops"
	"github.com/hpungsan/tweetsmith/internal/settings"
)

// NewServer creates and configures the HTTP server for the TweetSmith API.
func NewServer(db *sql.DB, gen ops.Generator, store settings.Store, logger logrus.FieldLogger, bind string, port int) *http.Server {
	logger = logger.WithField("component", "web")

	h := &Handlers{
		db:     db,
		gen:    gen,
		store:  store,
		logger: logger,
	}

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", bind, port),
		Handler:           securityHeaders(requestLogger(logger, h.routes())),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// routes registers every endpoint under both the bare path and /api.
func (h *Handlers) routes() *http.ServeMux {
	mux := http.NewServeMux()

	for _, prefix := range []string{"", "/api"} {
		mux.HandleFunc("POST "+prefix+"/transform", h.HandleTransform)
		mux.HandleFunc("GET "+prefix+"/tweets", h.HandleListTweets)
		mux.HandleFunc("POST "+prefix+"/tweets", h.HandleCreateTweet)
		mux.HandleFunc("DELETE "+prefix+"/tweets", h.HandleDeleteTweet)
		mux.HandleFunc("GET "+prefix+"/settings", h.HandleGetSettings)
		mux.HandleFunc("PUT "+prefix+"/settings", h.HandlePutSettings)
	}
	mux.HandleFunc("GET /healthz", h.HandleHealth)

	return mux
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLogger logs method, path, status and duration for every request.
func requestLogger(logger logrus.FieldLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		entry := logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Info("request")
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server, logger logrus.FieldLogger) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.WithField("addr", srv.Addr).Infof("TweetSmith API running at http://%s", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		logger.Warn("server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
