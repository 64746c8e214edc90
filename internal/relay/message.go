package relay

// Message is a chat line in transit or parked in a mailbox. It lives only in
// memory: either on its way to a live stream or queued for a future login.
type Message struct {
	From string
	Text string
}
