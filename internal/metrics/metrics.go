// Package metrics exposes Prometheus counters for quotes and transactions.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "rdx"

// Metrics groups the collectors registered for one process.
type Metrics struct {
	Quotes       *prometheus.CounterVec
	Transactions *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_total",
			Help:      "Quotes computed, by kind and verdict.",
		}, []string{"kind", "verdict"}),
		Transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Submitted transactions, by action and outcome.",
		}, []string{"action", "outcome"}),
	}
	reg.MustRegister(m.Quotes, m.Transactions)
	return m
}

// Quote counts one quote.
func (m *Metrics) Quote(kind, verdict string) {
	if m == nil {
		return
	}
	m.Quotes.WithLabelValues(kind, verdict).Inc()
}

// Transaction counts one submitted transaction.
func (m *Metrics) Transaction(action string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.Transactions.WithLabelValues(action, outcome).Inc()
}
