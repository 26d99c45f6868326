package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const defaultTimeout = 15 * time.Second

type Server struct{ mux *chi.Mux }

func New() *Server { return NewWithTimeout(defaultTimeout) }

// NewWithTimeout builds the router with its middleware stack; routes are
// added afterwards by MountHandlers and Mount.
func NewWithTimeout(timeout time.Duration) *Server {
	m := chi.NewRouter()

	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(timeout))
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
