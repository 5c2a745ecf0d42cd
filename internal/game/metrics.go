package game

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the game. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	substitutions    *prometheus.CounterVec
	substitutionFail prometheus.Counter
	commandsTotal    *prometheus.CounterVec
	playersConnected prometheus.Gauge
	connectionsTotal prometheus.Counter
	droppedMessages  prometheus.Counter
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		substitutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fluffymud_pronoun_substitutions_total",
			Help: "Messages passed through pronoun substitution without error, by subject gender.",
		}, []string{"gender"}),
		substitutionFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fluffymud_pronoun_substitution_failures_total",
			Help: "Messages delivered unmodified because pronoun substitution failed.",
		}),
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fluffymud_commands_total",
			Help: "Commands dispatched, by command name.",
		}, []string{"command"}),
		playersConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fluffymud_players_connected",
			Help: "Number of players currently in the world.",
		}),
		connectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fluffymud_connections_total",
			Help: "Connections accepted since start.",
		}),
		droppedMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fluffymud_dropped_messages_total",
			Help: "Messages dropped because a player's output queue was full.",
		}),
	}
	m.registry.MustRegister(
		m.substitutions,
		m.substitutionFail,
		m.commandsTotal,
		m.playersConnected,
		m.connectionsTotal,
		m.droppedMessages,
	)
	return m
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) substitution(g Gender) {
	if m == nil {
		return
	}
	m.substitutions.WithLabelValues(string(g)).Inc()
}

func (m *Metrics) substitutionFailure() {
	if m == nil {
		return
	}
	m.substitutionFail.Inc()
}

// CommandDispatched counts one execution of the named command.
func (m *Metrics) CommandDispatched(name string) {
	if m == nil {
		return
	}
	m.commandsTotal.WithLabelValues(name).Inc()
}

func (m *Metrics) connectionAccepted() {
	if m == nil {
		return
	}
	m.connectionsTotal.Inc()
}

func (m *Metrics) setPlayers(n int) {
	if m == nil {
		return
	}
	m.playersConnected.Set(float64(n))
}

func (m *Metrics) messageDropped() {
	if m == nil {
		return
	}
	m.droppedMessages.Inc()
}
