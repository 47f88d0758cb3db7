package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"time"

	"streamdex/internal/platform/config"
	"streamdex/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the chi mux and the listening http.Server
type Server struct {
	mux   *chi.Mux
	srv   *stdhttp.Server
	grace time.Duration
}

// NewServer reads API_PORT, API_READ_HEADER_TIMEOUT, API_IDLE_TIMEOUT and
// API_SHUTDOWN_GRACE; opts see the mux before any route is mounted
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	c := cfg.Prefix("API_")
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		mux: m,
		srv: &stdhttp.Server{
			Addr:              c.MayString("PORT", ":4000"),
			Handler:           m,
			ReadHeaderTimeout: c.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
			IdleTimeout:       c.MayDuration("IDLE_TIMEOUT", 2*time.Minute),
		},
		grace: c.MayDuration("SHUTDOWN_GRACE", 10*time.Second),
	}
}

// Router returns the Router facade over the mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr returns the configured listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run listens on Addr and serves until ctx ends
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx ends, then drains in flight requests for up to the grace period
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log := logger.Named("http")
	log.Info().Str("addr", ln.Addr().String()).Msg("http listening")

	errc := make(chan error, 1)
	go func() { errc <- s.srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()
	if err := s.srv.Shutdown(sctx); err != nil {
		log.Warn().Err(err).Msg("http shutdown cut short")
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	log.Info().Msg("http stopped")
	return nil
}
