package httpx

import (
	"context"
	"errors"
	"net/http"
	"time"

	"restaurant-pos/internal/common/logger"
)

type Server struct{ *http.Server }

func New(addr string, h http.Handler) *Server {
	return &Server{Server: &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.ListenAndServe() }()
	select {
	case <-ctx.Done():
		ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(ctx2)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Limit rejects requests with 503 once max requests are in flight.
func Limit(h http.Handler, max int) http.Handler {
	if max <= 0 {
		return h
	}
	sem := make(chan struct{}, max)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case sem <- struct{}{}:
			defer func() { <-sem }()
			h.ServeHTTP(w, r)
		default:
			w.Header().Set("Retry-After", "1")
			http.Error(w, "too many requests in flight, try again later", http.StatusServiceUnavailable)
		}
	})
}

// RequestID reuses the caller's X-Request-ID or issues a new one, echoes it
// in the response and stores it in the request context for logger.Ctx.
func RequestID(next http.Handler, lg *logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = logger.NewRequestID()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := logger.WithRequestID(r.Context(), id)
		lg.Ctx(ctx).Debug("request_received", map[string]any{"method": r.Method, "path": r.URL.Path})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
