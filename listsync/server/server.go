// Package server serves the latest report of a list synchronization via HTTP.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
)

// Page is a rendered document.
type Page struct {
	MimeType string
	Body     []byte
}

// Server serves a single page via HTTP.
type Server struct {
	http    *http.Server
	handler *handler
	addr    net.Addr
	errc    chan error
}

// Run creates a new server and runs it in a new goroutine.
func Run(addr string, page *Page) (*Server, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("starting HTTP server: %v", err)
	}

	h := &handler{}
	h.page.Store(page)

	s := &Server{
		http: &http.Server{
			Handler: h,
		},
		handler: h,
		addr:    l.Addr(),
		errc:    make(chan error, 1),
	}

	go func() {
		if err := s.http.Serve(l); err != nil && err != http.ErrServerClosed {
			s.errc <- err
		}
	}()

	return s, nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() net.Addr { return s.addr }

// Replace replaces the page to serve with the one provided.
func (s *Server) Replace(page *Page) {
	s.handler.page.Store(page)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %v", err)
	}
	return nil
}

// Error returns a channel to listen to errors while serving.
func (s *Server) Error() <-chan error {
	return s.errc
}
