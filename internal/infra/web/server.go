// File: internal/infra/web/server.go
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-stars-store/internal/config"
	"telegram-stars-store/internal/infra/logging"
	"telegram-stars-store/internal/usecase"
)

// Server is the operator-facing HTTP surface: health, Prometheus metrics and
// a small read-mostly admin API. It never talks to Telegram.
type Server struct {
	cfg     config.AdminConfig
	auth    *AuthManager
	statsUC usecase.StatsUseCase
	catalog usecase.CatalogUseCase
	refunds usecase.RefundUseCase
	log     *zerolog.Logger
}

func NewServer(
	cfg config.AdminConfig,
	statsUC usecase.StatsUseCase,
	catalog usecase.CatalogUseCase,
	refunds usecase.RefundUseCase,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		cfg:     cfg,
		auth:    NewAuthManager(cfg.JWTSecret, cfg.TokenTTL),
		statsUC: statsUC,
		catalog: catalog,
		refunds: refunds,
		log:     logger,
	}
}

// Router builds the chi mux. Exposed separately so tests can drive it with
// httptest without binding a port.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.traceMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/v1/login", s.loginHandler)

	r.Group(func(pr chi.Router) {
		pr.Use(s.requireAuth)
		pr.Get("/api/v1/stats", s.statsHandler)
		pr.Get("/api/v1/products", s.productsListHandler)
		pr.Post("/api/v1/products", s.productsCreateHandler)
		pr.Get("/api/v1/refunds", s.refundsHandler)
	})
	return r
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info().Int("port", s.cfg.Port).Msg("admin server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// traceMiddleware tags each request with a trace id and logs the outcome.
func (s *Server) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := uuid.NewString()
		ctx := logging.WithTraceID(r.Context(), traceID)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		logging.With(ctx, s.log).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// requireAuth gates the admin API behind a valid session token.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.JWTSecret == "" {
			s.log.Error().Msg("admin jwt secret is not configured")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
