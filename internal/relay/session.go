package relay

import (
	"io"
	"log/slog"
	"strings"

	"github.com/andy6609/switchboard/internal/proto"
)

type sessionState int

const (
	stateAwaitingLogin sessionState = iota
	stateLoggedIn
	stateTerminated
)

// Session drives the protocol state machine for one connection. Its state is
// owned by the session goroutine alone; only registry operations touch shared
// structures.
type Session struct {
	client *Client
	reg    *Registry
	router *Router
	logger *slog.Logger

	state  sessionState
	name   string // identity, empty until /login succeeds
	target string // current correspondent, empty until /dial
}

func NewSession(c *Client, reg *Registry, router *Router, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		client: c,
		reg:    reg,
		router: router,
		logger: logger,
		state:  stateAwaitingLogin,
	}
}

// Run reads the connection until quit, peer close or transport fault. Every
// exit path unregisters the identity (identity-guarded, so a stale cleanup
// never evicts a fresh login under the same name) and closes the stream.
func (s *Session) Run() {
	defer s.teardown()

	if err := s.client.Send(proto.System(proto.MsgWelcome)); err != nil {
		return
	}

	lr := proto.NewLineReader(s.client.conn)
	for s.state != stateTerminated {
		line, err := lr.ReadLine()
		if err != nil {
			if err != io.EOF {
				s.logger.Info("session read failed", "addr", s.client.RemoteAddr(), "error", err)
			}
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := s.handle(line); err != nil {
			// our own stream is broken; no point reporting back
			return
		}
	}
}

func (s *Session) handle(line string) error {
	switch s.state {
	case stateAwaitingLogin:
		return s.handleLogin(line)
	case stateLoggedIn:
		return s.handleCommand(line)
	}
	return nil
}

func (s *Session) handleLogin(line string) error {
	cmd, arg := splitCommand(line)
	if cmd != "/login" {
		return s.client.Send(proto.System(proto.MsgLoginFirst))
	}
	if arg == "" {
		return s.client.Send(proto.System(proto.MsgNameInvalid))
	}
	if !s.reg.RegisterOnline(arg, s.client) {
		return s.client.Send(proto.System(proto.MsgNameTaken))
	}
	s.name = arg
	s.state = stateLoggedIn
	if err := s.client.Send(proto.System(proto.LoggedInAs(arg))); err != nil {
		return err
	}
	if err := s.client.Send(proto.System(proto.MsgDialHint)); err != nil {
		return err
	}
	return s.router.Flush(arg, s.client)
}

func (s *Session) handleCommand(line string) error {
	if line == "/quit" {
		s.state = stateTerminated
		return s.client.Send(proto.System(proto.MsgQuit))
	}

	cmd, arg := splitCommand(line)
	if cmd == "/dial" {
		if arg == "" {
			return s.client.Send(proto.System(proto.MsgDialUsage))
		}
		s.target = arg
		if _, online := s.reg.LookupOnline(arg); online {
			return s.client.Send(proto.System(proto.ChannelReady(arg)))
		}
		return s.client.Send(proto.System(proto.TargetOffline(arg)))
	}

	if s.target == "" {
		return s.client.Send(proto.System(proto.MsgPickTarget))
	}
	s.router.Route(Message{From: s.name, Text: line}, s.target)
	return s.client.Send(proto.System(proto.SentOrPending(s.target)))
}

func (s *Session) teardown() {
	if s.name != "" {
		s.reg.UnregisterOnline(s.name, s.client)
	}
	s.client.Close()
	s.logger.Info("client disconnected", "addr", s.client.RemoteAddr(), "name", s.name)
}

// splitCommand separates a leading /command token from its argument.
func splitCommand(line string) (cmd, arg string) {
	cmd, arg, _ = strings.Cut(line, " ")
	return cmd, strings.TrimSpace(arg)
}
