package server

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	"github.com/caasmo/bottrap/config"
)

// Server runs the HTTP listener and owns the shutdown sequence. Resources
// that must outlive the last in-flight request (the blocklist file handle)
// are registered as closers and closed only after the listener has fully
// drained.
type Server struct {
	configProvider *config.Provider
	handler        http.Handler
	logger         *slog.Logger
	closers        []io.Closer

	// exitFunc is os.Exit, swappable in tests.
	exitFunc func(code int)
}

func NewServer(provider *config.Provider, handler http.Handler, logger *slog.Logger) *Server {
	return &Server{
		configProvider: provider,
		handler:        handler,
		logger:         logger,
		exitFunc:       os.Exit,
	}
}

// AddCloser registers a resource to close during shutdown, after the HTTP
// server has stopped. Closers run in registration order.
func (s *Server) AddCloser(c io.Closer) {
	s.closers = append(s.closers, c)
}

// Run starts the server and blocks until a shutdown signal or a listener
// error, then drains connections within the configured graceful timeout
// and exits the process.
func (s *Server) Run() {
	cfg := s.configProvider.Get().Server

	s.logger.Info("server configuration",
		"addr", cfg.Addr,
		"read_timeout", cfg.ReadTimeout.Duration,
		"read_header_timeout", cfg.ReadHeaderTimeout.Duration,
		"write_timeout", cfg.WriteTimeout.Duration,
		"idle_timeout", cfg.IdleTimeout.Duration,
		"shutdown_timeout", cfg.ShutdownGracefulTimeout.Duration,
		"max_conns", cfg.MaxConns,
	)

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		s.logger.Error("failed to listen", "addr", cfg.Addr, "err", err)
		s.exitFunc(1)
		return
	}
	if cfg.MaxConns > 0 {
		listener = netutil.LimitListener(listener, cfg.MaxConns)
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       cfg.ReadTimeout.Duration,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout.Duration,
		WriteTimeout:      cfg.WriteTimeout.Duration,
		IdleTimeout:       cfg.IdleTimeout.Duration,
	}

	serverError := make(chan error, 1)
	go func() {
		s.logger.Info("starting http server", "addr", listener.Addr().String())
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			s.logger.Error("serve error", "err", err)
			serverError <- err
		}
	}()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,  // kill -SIGINT XXXX or Ctrl+c
		syscall.SIGTERM, // kill -SIGTERM XXXX
		syscall.SIGQUIT, // kill -SIGQUIT XXXX
	)

	// Wait for either interrupt signal or server error
	failed := false
	select {
	case <-ctx.Done():
		s.logger.Info("received shutdown signal, gracefully shutting down")
	case err := <-serverError:
		s.logger.Error("server error, initiating shutdown", "err", err)
		failed = true
	}

	// Reset signals default behavior, similar to signal.Reset
	stop()

	gracefulCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownGracefulTimeout.Duration)
	defer cancelShutdown()

	shutdownGroup, _ := errgroup.WithContext(gracefulCtx)

	shutdownGroup.Go(func() error {
		s.logger.Info("shutting down http server")
		if err := srv.Shutdown(gracefulCtx); err != nil {
			s.logger.Error("http server shutdown error", "err", err)
			return err
		}
		s.logger.Info("http server stopped gracefully")
		return nil
	})

	if err := shutdownGroup.Wait(); err != nil {
		s.logger.Error("error during shutdown", "err", err)
		failed = true
	}

	// Closers run after the listener has drained so no handler can touch a
	// closed resource.
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			s.logger.Error("error closing resource", "err", err)
			failed = true
		}
	}

	if failed {
		s.exitFunc(1)
		return
	}

	s.logger.Info("all systems stopped gracefully")
	s.exitFunc(0)
}
