package relay

import (
	"log/slog"
	"sync"
)

// Registry is the process-wide directory of online users and their pending
// mailboxes. Both maps live behind one mutex; every exported operation is
// atomic with respect to every other. No map reference ever leaves the
// registry.
type Registry struct {
	mu      sync.Mutex
	online  map[string]*Client
	mailbox map[string][]Message
	logger  *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		online:  make(map[string]*Client),
		mailbox: make(map[string][]Message),
		logger:  logger,
	}
}

// RegisterOnline binds name to c unless the name is already claimed. At most
// one live connection holds a name at any instant.
func (r *Registry) RegisterOnline(name string, c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.online[name]; taken {
		return false
	}
	r.online[name] = c
	ConnectedClients.Set(float64(len(r.online)))
	r.logger.Info("user online", "name", name)
	return true
}

// UnregisterOnline removes the binding only while it still belongs to c.
// A newer connection that reclaimed the name after a forced cleanup race is
// left untouched; repeated calls are no-ops.
func (r *Registry) UnregisterOnline(name string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.online[name]
	if !ok || cur.id != c.id {
		return
	}
	delete(r.online, name)
	ConnectedClients.Set(float64(len(r.online)))
	r.logger.Info("user offline", "name", name)
}

// LookupOnline reports the live connection currently holding name, if any.
func (r *Registry) LookupOnline(name string) (*Client, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.online[name]
	return c, ok
}

// EnqueueMailbox parks msg at the tail of name's pending queue, creating the
// queue on first use. Mailboxes survive their owner's disconnects.
func (r *Registry) EnqueueMailbox(name string, msg Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mailbox[name] = append(r.mailbox[name], msg)
	MailboxBacklog.Inc()
}

// DrainMailbox removes and returns everything pending for name, oldest
// first. The queue itself stays behind empty so a later enqueue reuses it.
func (r *Registry) DrainMailbox(name string) []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	pending, ok := r.mailbox[name]
	if !ok {
		return nil
	}
	r.mailbox[name] = nil
	MailboxBacklog.Sub(float64(len(pending)))
	return pending
}
