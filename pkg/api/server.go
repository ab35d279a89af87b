package api

import (
	"io"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/nestgraph/pkg/history"
	"github.com/matzehuels/nestgraph/pkg/model"
	"github.com/matzehuels/nestgraph/pkg/network"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 4 << 20

// Server serves one network.
type Server struct {
	mu       sync.Mutex
	net      *network.Network
	history  *history.History
	registry *model.MapRegistry
	logger   *log.Logger
	metrics  http.Handler
	depth    int
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHistoryDepth bounds the number of stored revisions.
func WithHistoryDepth(n int) Option {
	return func(s *Server) { s.depth = n }
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// New returns a server over an empty network resolving models through reg.
func New(reg *model.MapRegistry, opts ...Option) *Server {
	s := &Server{
		registry: reg,
		logger:   log.New(io.Discard),
		depth:    history.DefaultMaxRevisions,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.history = history.New(
		history.WithMaxRevisions(s.depth),
		history.WithLogger(s.logger),
		history.WithActivityHandler(func(n *network.Network) {
			s.logger.Debug("activity graph changed", "recorders", len(n.Recorders()))
		}),
	)
	s.net = network.New(reg, network.WithObserver(s.history), network.WithLogger(s.logger))
	s.history.Commit(s.net)
	s.router = s.routes()
	return s
}

// Load replaces the network with desc and records it as a revision.
func (s *Server) Load(desc network.Description) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.net.Update(desc); err != nil {
		return err
	}
	s.history.Commit(s.net)
	return nil
}

// Network returns a copy of the current network.
func (s *Server) Network() *network.Network {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.net.Clone()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Route("/network", func(r chi.Router) {
		r.Get("/", s.handleGetNetwork)
		r.Put("/", s.handlePutNetwork)
		r.Delete("/", s.handleDeleteNetwork)
		r.Get("/problems", s.handleProblems)
	})

	r.Route("/nodes", func(r chi.Router) {
		r.Get("/", s.handleListNodes)
		r.Post("/", s.handleAddNode)
		r.Route("/{index}", func(r chi.Router) {
			r.Get("/", s.withNode(s.handleGetNode))
			r.Delete("/", s.withNode(s.handleDeleteNode))
			r.Put("/model", s.withNode(s.handleSetModel))
			r.Put("/size", s.withNode(s.handleSetSize))
			r.Put("/params/{id}", s.withNode(s.handleSetNodeParam))
			r.Post("/reset", s.withNode(s.handleResetNode))
			r.Post("/polarity", s.withNode(s.handlePolarity))
			r.Get("/recordables", s.withNode(s.handleRecordables))
			r.Put("/record-from", s.withNode(s.handleSetRecordFrom))
		})
	})

	r.Route("/connections", func(r chi.Router) {
		r.Get("/", s.handleListConnections)
		r.Post("/", s.handleAddConnection)
		r.Delete("/{index}", s.withConnection(s.handleDeleteConnection))
		r.Put("/{index}/params/{id}", s.withConnection(s.handleSetConnectionParam))
	})

	r.Post("/history/{direction}", s.handleHistory)
	r.Get("/models", s.handleModels)
	return r
}
