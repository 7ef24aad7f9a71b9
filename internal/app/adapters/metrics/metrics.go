package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConnectionState - 0 disconnected, 1 connecting, 2 connected, 3 terminating.
	ConnectionState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "packetirc_connection_state",
		Help: "Current connection state of the client",
	})

	ConnectAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "packetirc_connect_attempts_total",
		Help: "Connection attempts, successful or not",
	})

	LinesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "packetirc_lines_received_total",
		Help: "Protocol lines read from the server",
	})

	LinesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "packetirc_lines_sent_total",
		Help: "Protocol lines written to the server",
	})

	BytesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "packetirc_bytes_sent_total",
		Help: "Bytes written to the server, terminators included",
	})

	ParseErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "packetirc_parse_errors_total",
		Help: "Inbound lines dropped as malformed",
	})

	KeepalivesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "packetirc_keepalives_sent_total",
		Help: "Idle-link PING probes sent",
	})

	EventsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "packetirc_events_dispatched_total",
		Help: "Inbound messages routed to a handler, by command",
	}, []string{"command"})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "packetirc_reply_cache_hits_total",
		Help: "Queries answered from the local reply cache",
	}, []string{"kind"})
)
