package server

import (
	"fmt"
	"net"

	"isoserve/core/middleware/accesslog"
	"isoserve/core/middleware/isolation"
	"isoserve/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Server is the Fiber application plus the pipeline mounted on it.
type Server struct {
	cfg      Config
	app      *fiber.App
	logger   *zap.Logger
	pipeline Pipeline
	ln       net.Listener
	errs     chan error
}

// New creates a server whose pipeline starts with the isolation, rayid and
// access-log stages. Further stages are appended with Use.
func New(cfg Config, logg *zap.Logger) *Server {
	s := &Server{cfg: cfg, logger: logg, errs: make(chan error, 1)}
	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true, // We log our own startup message
		ErrorHandler:          s.handleError,
	})

	s.Use(
		Stage{Name: "isolation", Handler: isolation.New()},
		Stage{Name: "rayid", Handler: rayid.New()},
		Stage{Name: "access-log", Handler: accesslog.New(logg)},
	)
	return s
}

// Use appends stages to the pipeline.
func (s *Server) Use(stages ...Stage) {
	p := Pipeline(stages)
	p.Register(s.app)
	s.pipeline = append(s.pipeline, p...)
}

// Stages returns the names of the mounted stages in order.
func (s *Server) Stages() []string {
	return s.pipeline.Names()
}

// App exposes the underlying Fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start binds the listener and serves in the background. A bind failure is
// returned as *StartupError and nothing is served.
func (s *Server) Start() error {
	addr := s.cfg.Address()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return &StartupError{Addr: addr, Err: err}
	}

	port := ln.Addr().(*net.TCPAddr).Port
	s.logger.Info("Server started",
		zap.Int("port", port),
		zap.String("root", s.cfg.DocumentRoot),
		zap.Strings("stages", s.Stages()),
	)

	s.StartListener(ln)
	return nil
}

// StartListener serves on an already bound listener in the background. If
// serving fails, the error is delivered on Errors.
func (s *Server) StartListener(ln net.Listener) {
	s.ln = ln
	go func() {
		if err := s.app.Listener(ln); err != nil {
			s.logger.Error("Server stopped unexpectedly", zap.Error(err))
			s.errs <- fmt.Errorf("server stopped: %w", err)
		}
	}()
}

// Errors delivers at most one error if serving stops without Shutdown.
func (s *Server) Errors() <-chan error {
	return s.errs
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown stops accepting connections and waits for active requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
