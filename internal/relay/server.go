package relay

import (
	"log/slog"
	"net"
	"time"
)

// Server owns the accept loop and the shared registry/router pair. One
// goroutine runs per accepted connection; a faulty connection never affects
// the listener or its siblings.
type Server struct {
	addr         string
	writeTimeout time.Duration
	logger       *slog.Logger
	reg          *Registry
	router       *Router
	listener     net.Listener
}

func NewServer(addr string, writeTimeout time.Duration, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	reg := NewRegistry(logger)
	return &Server{
		addr:         addr,
		writeTimeout: writeTimeout,
		logger:       logger,
		reg:          reg,
		router:       NewRouter(reg, logger),
	}
}

func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln

	go s.acceptLoop(ln)

	s.logger.Info("server started", "addr", ln.Addr().String())
	return nil
}

// Addr reports the bound listen address. Useful when addr asked for port 0.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Stop closes the listener. In-flight sessions are not torn down; each ends
// naturally on its next I/O error or client quit.
func (s *Server) Stop() {
	s.logger.Info("shutting down")

	if s.listener != nil {
		s.listener.Close()
	}
}

func (s *Server) acceptLoop(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			// a fault on the listening socket itself ends the server,
			// whether from Stop or from the OS
			return
		}

		s.logger.Info("client connected", "addr", conn.RemoteAddr().String())

		c := newClient(conn, s.writeTimeout)
		go NewSession(c, s.reg, s.router, s.logger).Run()
	}
}
