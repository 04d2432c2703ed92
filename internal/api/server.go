package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fjacquet/lendtrack/internal/logging"

	"github.com/gorilla/mux"
)

// NewRouter registers the API routes.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(h.logRequests)

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/transactions", h.Transactions).Methods(http.MethodGet)
	r.HandleFunc("/transactions/{id}/totals", h.Totals).Methods(http.MethodGet)
	r.HandleFunc("/transactions/{id}/activities", h.Activities).Methods(http.MethodGet)
	r.HandleFunc("/activities", h.History).Methods(http.MethodGet)
	r.HandleFunc("/chart", h.Chart).Methods(http.MethodGet)
	r.HandleFunc("/contacts", h.Contacts).Methods(http.MethodGet)
	r.HandleFunc("/contacts/performance", h.Performance).Methods(http.MethodGet)
	r.HandleFunc("/dashboard/summary", h.Summary).Methods(http.MethodGet)
	return r
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debug("Handled request",
			logging.F(logging.FieldMethod, r.Method),
			logging.F(logging.FieldPath, r.URL.Path),
			logging.F(logging.FieldDuration, time.Since(start).String()))
	})
}

// Server is the HTTP server of the API.
type Server struct {
	http   *http.Server
	logger logging.Logger
}

// NewServer creates a Server listening on addr.
func NewServer(addr string, h *Handler, readTimeout, writeTimeout time.Duration, logger logging.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:         addr,
			Handler:      NewRouter(h),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		logger: logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", logging.F(logging.FieldAddress, s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("Shutting down server")
	return s.http.Shutdown(shutdownCtx)
}
