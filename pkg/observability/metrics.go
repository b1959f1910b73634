/*
Package observability exposes engine counters for monitoring a running
assessment service.

Metrics cover the session lifecycle (started, resumed, abandoned), the
question flow (answers recorded, rewinds) and outcomes (completions by
reason, reports by severity). Handlers are expected to be mounted under
/metrics by the HTTP adapter.
*/
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bonsono/sonolog/pkg/domain"
)

// Metrics is the collector set for one engine instance. A nil *Metrics
// is valid and records nothing, so callers never need to nil-check.
type Metrics struct {
	sessionsStarted  prometheus.Counter
	sessionsResumed  prometheus.Counter
	sessionsDropped  prometheus.Counter
	answersRecorded  prometheus.Counter
	rewinds          prometheus.Counter
	completions      *prometheus.CounterVec
	reportSeverities *prometheus.CounterVec
}

// NewMetrics builds the collector set and registers it with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonolog",
			Name:      "sessions_started_total",
			Help:      "Number of assessment sessions started.",
		}),
		sessionsResumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonolog",
			Name:      "sessions_resumed_total",
			Help:      "Number of assessment sessions resumed from persistence.",
		}),
		sessionsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonolog",
			Name:      "sessions_abandoned_total",
			Help:      "Number of assessment sessions deleted before completion.",
		}),
		answersRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonolog",
			Name:      "answers_recorded_total",
			Help:      "Number of answers accepted by the walker.",
		}),
		rewinds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonolog",
			Name:      "rewinds_total",
			Help:      "Number of back-navigation steps taken.",
		}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sonolog",
			Name:      "completions_total",
			Help:      "Number of sessions that reached a terminal node, by reason.",
		}, []string{"reason"}),
		reportSeverities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sonolog",
			Name:      "reports_total",
			Help:      "Number of reports generated, by severity.",
		}, []string{"severity"}),
	}
	reg.MustRegister(
		m.sessionsStarted,
		m.sessionsResumed,
		m.sessionsDropped,
		m.answersRecorded,
		m.rewinds,
		m.completions,
		m.reportSeverities,
	)
	return m
}

// SessionStarted records a fresh session.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessionsStarted.Inc()
}

// SessionResumed records a session loaded back from a store.
func (m *Metrics) SessionResumed() {
	if m == nil {
		return
	}
	m.sessionsResumed.Inc()
}

// SessionAbandoned records a session deleted before reaching a terminal.
func (m *Metrics) SessionAbandoned() {
	if m == nil {
		return
	}
	m.sessionsDropped.Inc()
}

// AnswerRecorded records one accepted answer.
func (m *Metrics) AnswerRecorded() {
	if m == nil {
		return
	}
	m.answersRecorded.Inc()
}

// Rewind records one back-navigation step.
func (m *Metrics) Rewind() {
	if m == nil {
		return
	}
	m.rewinds.Inc()
}

// Completed records a terminal outcome and its report severity.
func (m *Metrics) Completed(reason domain.CompletionReason, severity domain.Severity) {
	if m == nil {
		return
	}
	m.completions.WithLabelValues(string(reason)).Inc()
	m.reportSeverities.WithLabelValues(string(severity)).Inc()
}
