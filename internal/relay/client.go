package relay

import (
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/andy6609/switchboard/internal/proto"
)

// Client is the server-side handle for one accepted connection. The id is
// the stable identity used by registry bookkeeping; keying on the connection
// object itself would alias once a name is reclaimed by a fresh connection.
type Client struct {
	id           uuid.UUID
	conn         net.Conn
	writeTimeout time.Duration

	wmu sync.Mutex // serializes writers: the session and any routing goroutine
}

func newClient(conn net.Conn, writeTimeout time.Duration) *Client {
	return &Client{
		id:           uuid.New(),
		conn:         conn,
		writeTimeout: writeTimeout,
	}
}

// Send writes one protocol line to the peer. The write happens outside any
// registry lock; a failure means the peer is effectively offline.
func (c *Client) Send(line string) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if c.writeTimeout > 0 {
		c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	return proto.SendLine(c.conn, line)
}

// Close tears the stream down best-effort. Failures at this stage are not
// errors: the peer may already be gone.
func (c *Client) Close() {
	if tc, ok := c.conn.(*net.TCPConn); ok {
		_ = tc.CloseWrite()
	}
	_ = c.conn.Close()
}

// RemoteAddr reports the peer address for logging.
func (c *Client) RemoteAddr() string {
	if addr := c.conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}
