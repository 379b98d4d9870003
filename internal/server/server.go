package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gitlab.com/ignitionrobotics/billing/gocardless/internal/conf"
)

// Server is an HTTP server emulating the GoCardless subscriptions API in memory.
// It's meant for local development and integration tests, never for production traffic.
type Server struct {
	logger *log.Logger
	config conf.Sandbox
	store  *store
	http   *http.Server
}

// Options contains the components needed to configure a Server.
type Options struct {
	// Config contains the sandbox configuration.
	Config conf.Sandbox

	// Logger contains a logger mechanism. If set to nil, it defaults to a logger pointing to io.Discard.
	Logger *log.Logger
}

// Handler returns the HTTP handler serving the subscriptions endpoints.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe listens on the configured port until Shutdown is called.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts incoming connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Println("Listening on", ln.Addr())
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts the server down.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// router builds the chi router for the subscriptions endpoints.
func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "GoCardless-Version", "Idempotency-Key"},
	}))
	r.Use(s.authenticate)

	r.Route("/subscriptions", func(r chi.Router) {
		r.Get("/", s.ListSubscriptions)
		r.Post("/", s.CreateSubscription)
		r.Get("/{id}", s.GetSubscription)
		r.Post("/{id}/actions/cancel", s.CancelSubscription)
	})
	return r
}

// NewServer initializes a new Server with an empty store.
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", log.LstdFlags)
	}
	s := &Server{
		logger: opts.Logger,
		config: opts.Config,
		store:  newStore(),
	}
	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Config.Port),
		ReadTimeout:  opts.Config.Timeout,
		WriteTimeout: opts.Config.Timeout,
	}
	s.http.Handler = s.router()
	return s
}

// Setup initializes the conf.Sandbox to run the sandbox server.
func Setup(logger *log.Logger) (conf.Sandbox, error) {
	var cfg conf.Sandbox
	if err := cfg.Parse(); err != nil {
		logger.Println("Failed to parse sandbox config:", err)
		return conf.Sandbox{}, err
	}
	return cfg, nil
}

// Run runs the sandbox server using the given config.
func Run(config conf.Sandbox, logger *log.Logger) error {
	return NewServer(Options{
		Config: config,
		Logger: logger,
	}).ListenAndServe()
}
