package relay

import "github.com/prometheus/client_golang/prometheus"

var (
	ConnectedClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "switchboard_online_users",
		Help: "Number of currently logged-in users",
	})

	RoutedMessages = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "switchboard_routed_messages_total",
		Help: "Messages routed by outcome",
	}, []string{"outcome"})

	MailboxBacklog = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "switchboard_mailbox_backlog",
		Help: "Messages parked for offline recipients",
	})
)

func init() {
	prometheus.MustRegister(ConnectedClients)
	prometheus.MustRegister(RoutedMessages)
	prometheus.MustRegister(MailboxBacklog)
}
