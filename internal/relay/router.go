package relay

import (
	"log/slog"

	"github.com/andy6609/switchboard/internal/proto"
)

// Router decides, for each outgoing chat message, between immediate delivery
// and mailbox parking. A routed message reaches its destination's stream
// exactly once or its mailbox exactly once, never both.
type Router struct {
	reg    *Registry
	logger *slog.Logger
}

func NewRouter(reg *Registry, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{reg: reg, logger: logger}
}

// Route hands msg to dest's live connection, falling back to the mailbox when
// dest is offline or the delivery write fails. The lookup happens under the
// registry lock, the write does not; a destination vanishing between the two
// steps surfaces as a write error and the message is parked instead.
func (rt *Router) Route(msg Message, dest string) {
	if c, ok := rt.reg.LookupOnline(dest); ok {
		if err := c.Send(proto.UserMessage(msg.From, msg.Text)); err == nil {
			RoutedMessages.WithLabelValues("delivered").Inc()
			return
		} else {
			rt.logger.Debug("direct delivery failed, parking", "to", dest, "error", err)
		}
	}
	rt.reg.EnqueueMailbox(dest, msg)
	RoutedMessages.WithLabelValues("queued").Inc()
}

// Flush delivers everything parked for name to its fresh connection, oldest
// first, preceded by a count header. Nothing is sent for an empty mailbox.
func (rt *Router) Flush(name string, c *Client) error {
	pending := rt.reg.DrainMailbox(name)
	if len(pending) == 0 {
		return nil
	}
	if err := c.Send(proto.System(proto.PendingHeader(len(pending)))); err != nil {
		return err
	}
	for _, m := range pending {
		if err := c.Send(proto.UserMessage(m.From, m.Text)); err != nil {
			return err
		}
		RoutedMessages.WithLabelValues("flushed").Inc()
	}
	return nil
}
