package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ledger"

// Ledger holds the counters reported by the posting engine and the outbox worker.
// A nil *Ledger is valid and records nothing.
type Ledger struct {
	registry *prometheus.Registry

	postings        *prometheus.CounterVec
	postingFailures *prometheus.CounterVec
	outboxIntents   *prometheus.CounterVec
	balanceRuns     *prometheus.CounterVec
}

// NewLedger registers the ledger collectors, plus the Go and process collectors, on a fresh registry.
func NewLedger() *Ledger {
	reg := prometheus.NewRegistry()
	m := &Ledger{
		registry: reg,
		postings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "postings_total",
			Help:      "Automatic postings by event type and outcome.",
		}, []string{"event_type", "outcome"}),
		postingFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posting_failures_total",
			Help:      "Automatic postings that were skipped or failed, by event type and reason.",
		}, []string{"event_type", "reason"}),
		outboxIntents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_intents_total",
			Help:      "Posting intents handled by the outbox worker, by result.",
		}, []string{"result"}),
		balanceRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_recomputes_total",
			Help:      "Balance recomputations by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(
		m.postings,
		m.postingFailures,
		m.outboxIntents,
		m.balanceRuns,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Ledger) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Ledger) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Ledger) Posting(eventType, outcome string) {
	if m == nil {
		return
	}
	m.postings.WithLabelValues(eventType, outcome).Inc()
}

func (m *Ledger) PostingFailure(eventType, reason string) {
	if m == nil {
		return
	}
	m.postingFailures.WithLabelValues(eventType, reason).Inc()
}

func (m *Ledger) OutboxIntent(result string) {
	if m == nil {
		return
	}
	m.outboxIntents.WithLabelValues(result).Inc()
}

func (m *Ledger) BalanceRecompute(result string) {
	if m == nil {
		return
	}
	m.balanceRuns.WithLabelValues(result).Inc()
}

// Postings exposes the postings counter, mainly for tests.
func (m *Ledger) Postings() *prometheus.CounterVec {
	return m.postings
}

// PostingFailures exposes the failure counter, mainly for tests.
func (m *Ledger) PostingFailures() *prometheus.CounterVec {
	return m.postingFailures
}

// OutboxIntents exposes the outbox result counter, mainly for tests.
func (m *Ledger) OutboxIntents() *prometheus.CounterVec {
	return m.outboxIntents
}
