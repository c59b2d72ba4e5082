package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// drainTimeout bounds how long in-flight webhook deliveries may run
// after a stop is requested.
const drainTimeout = 30 * time.Second

// Shutdown stops the server, letting in-flight deliveries finish.
// Before ListenAndServeWithShutdown has started it is a no-op.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	srv := s.httpSrv
	s.mu.RUnlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Addr returns the bound listen address, or "" before the server has
// started. With port 0 configured this is the only way to learn the
// real port.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// ListenAndServeWithShutdown serves until SIGINT/SIGTERM or a Shutdown
// call, then drains for up to drainTimeout. GitHub redelivers webhooks
// it could not deliver, so a drained stop drops nothing on the floor.
func (s *Server) ListenAndServeWithShutdown() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{Handler: s.Handler()}

	s.mu.Lock()
	s.httpSrv = srv
	s.listener = listener
	s.mu.Unlock()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() {
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			done <- err
			return
		}
		done <- nil
	}()

	log.Printf("Listening on %s", listener.Addr())
	close(s.ready)

	select {
	case sig := <-stop:
		log.Printf("Received %v, draining and shutting down", sig)
	case err := <-done:
		// Serve returned on its own: a listener error, or a
		// programmatic Shutdown that already drained.
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-done

	log.Println("Server stopped")
	return nil
}
