// Package client implements the terminal side of the relay: a reader loop
// streaming server lines to output and a writer loop sending input lines,
// both closing the connection on error or explicit quit.
package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	"github.com/andy6609/switchboard/internal/proto"
)

type Options struct {
	Name string    // when set, "/login <Name>" is sent before any input
	In   io.Reader // user input, line per message
	Out  io.Writer // server output
}

// Dial connects to a relay, prints the connect banner and runs the duplex
// loop until the session ends.
func Dial(addr string, opts Options) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect %s: %w", addr, err)
	}
	fmt.Fprintf(opts.Out, "Conectado a %s.\n", addr)
	fmt.Fprintln(opts.Out, "Comandos: /login <seu_nome>, /dial <usuario>, /quit")
	return Run(conn, opts)
}

// Run drives an already connected stream. It returns once both directions
// have finished: the reader on peer close or fault, the writer on exhausted
// input, send failure or /quit. Whichever side finishes first closes the
// connection and so releases the other.
func Run(conn net.Conn, opts Options) error {
	var wg sync.WaitGroup
	var readErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer closeConn(conn)
		lr := proto.NewLineReader(conn)
		for {
			line, err := lr.ReadLine()
			if err != nil {
				// a close from our own writer loop is a clean end, not a fault
				if err != io.EOF && !errors.Is(err, net.ErrClosed) && !errors.Is(err, io.ErrClosedPipe) {
					readErr = err
				}
				return
			}
			fmt.Fprintln(opts.Out, line)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer closeConn(conn)
		if opts.Name != "" {
			if err := proto.SendLine(conn, "/login "+opts.Name); err != nil {
				return
			}
		}
		scanner := bufio.NewScanner(opts.In)
		for scanner.Scan() {
			msg := scanner.Text()
			if msg == "" {
				continue
			}
			if err := proto.SendLine(conn, msg); err != nil {
				return
			}
			if strings.TrimSpace(msg) == "/quit" {
				return
			}
		}
	}()

	wg.Wait()
	return readErr
}

// closeConn is best-effort teardown; at this point failures are expected,
// not reportable.
func closeConn(conn net.Conn) {
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.CloseWrite()
	}
	_ = conn.Close()
}
