package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	srv *http.Server
}

// Routes are the sub-handlers mounted on the root router. Nil members are
// skipped.
type Routes struct {
	API      http.Handler
	Payments http.Handler
}

func New(addr string, exposeMetrics bool, routes Routes) *Server {
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           NewHandler(exposeMetrics, routes),
		ReadHeaderTimeout: 10 * time.Second,
	}}
}

// NewHandler builds the root router: liveness, optional metrics, the JSON
// API under /api and the payment callback.
func NewHandler(exposeMetrics bool, routes Routes) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if exposeMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}
	if routes.API != nil {
		r.Mount("/api", routes.API)
	}
	if routes.Payments != nil {
		r.Handle("/payments/pay", routes.Payments)
	}
	return r
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
