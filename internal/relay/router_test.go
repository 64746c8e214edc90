package relay

import (
	"net"
	"testing"
	"time"

	"github.com/andy6609/switchboard/internal/proto"
)

// pipeClient returns a registered-side client and the peer end to read from.
func pipeClient(t *testing.T) (*Client, net.Conn) {
	t.Helper()
	server, peer := net.Pipe()
	t.Cleanup(func() {
		server.Close()
		peer.Close()
	})
	return newClient(server, time.Second), peer
}

func TestRouter_DeliversToOnlineDestination(t *testing.T) {
	reg := NewRegistry(quietLogger())
	rt := NewRouter(reg, quietLogger())

	bob, peer := pipeClient(t)
	if !reg.RegisterOnline("bob", bob) {
		t.Fatal("register failed")
	}

	got := make(chan string, 1)
	go func() {
		lr := proto.NewLineReader(peer)
		line, err := lr.ReadLine()
		if err == nil {
			got <- line
		}
	}()

	rt.Route(Message{From: "alice", Text: "oi"}, "bob")

	select {
	case line := <-got:
		if line != "alice: oi" {
			t.Fatalf("unexpected delivery: %q", line)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for direct delivery")
	}

	if pending := reg.DrainMailbox("bob"); len(pending) != 0 {
		t.Fatalf("delivered message must not also be parked, got %v", pending)
	}
}

func TestRouter_QueuesForOfflineDestination(t *testing.T) {
	reg := NewRegistry(quietLogger())
	rt := NewRouter(reg, quietLogger())

	rt.Route(Message{From: "alice", Text: "hello"}, "bob")

	pending := reg.DrainMailbox("bob")
	if len(pending) != 1 || pending[0].From != "alice" || pending[0].Text != "hello" {
		t.Fatalf("expected one parked message, got %v", pending)
	}
}

func TestRouter_FallsBackToMailboxOnWriteFailure(t *testing.T) {
	reg := NewRegistry(quietLogger())
	rt := NewRouter(reg, quietLogger())

	server, peer := net.Pipe()
	bob := newClient(server, time.Second)
	if !reg.RegisterOnline("bob", bob) {
		t.Fatal("register failed")
	}
	// The destination drops between lookup and write.
	peer.Close()
	server.Close()

	rt.Route(Message{From: "alice", Text: "hello"}, "bob")

	pending := reg.DrainMailbox("bob")
	if len(pending) != 1 || pending[0].Text != "hello" {
		t.Fatalf("failed delivery should park the message, got %v", pending)
	}
}

func TestRouter_FlushDeliversOldestFirst(t *testing.T) {
	reg := NewRegistry(quietLogger())
	rt := NewRouter(reg, quietLogger())

	reg.EnqueueMailbox("bob", Message{From: "alice", Text: "m1"})
	reg.EnqueueMailbox("bob", Message{From: "alice", Text: "m2"})

	bob, peer := pipeClient(t)

	lines := make(chan string, 3)
	go func() {
		lr := proto.NewLineReader(peer)
		for {
			line, err := lr.ReadLine()
			if err != nil {
				return
			}
			lines <- line
		}
	}()

	if err := rt.Flush("bob", bob); err != nil {
		t.Fatalf("flush: %v", err)
	}

	want := []string{
		proto.System(proto.PendingHeader(2)),
		"alice: m1",
		"alice: m2",
	}
	for _, w := range want {
		select {
		case line := <-lines:
			if line != w {
				t.Fatalf("flush line = %q, want %q", line, w)
			}
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for %q", w)
		}
	}
}

func TestRouter_FlushOfEmptyMailboxSendsNothing(t *testing.T) {
	reg := NewRegistry(quietLogger())
	rt := NewRouter(reg, quietLogger())

	bob, peer := pipeClient(t)

	if err := rt.Flush("bob", bob); err != nil {
		t.Fatalf("flush: %v", err)
	}

	peer.SetReadDeadline(time.Now().Add(50 * time.Millisecond))
	buf := make([]byte, 1)
	if n, err := peer.Read(buf); err == nil {
		t.Fatalf("expected no flush output, read %d bytes", n)
	}
}
