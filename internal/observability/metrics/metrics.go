package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters for the lead intake pipeline.
type LeadMetrics struct {
	leadsTotal         *prometheus.CounterVec
	notificationsTotal *prometheus.CounterVec
	resortRuns         prometheus.Counter
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		leadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weddings",
			Subsystem: "leads",
			Name:      "received_total",
			Help:      "Total lead intake requests by outcome",
		}, []string{"result"}),
		notificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weddings",
			Subsystem: "leads",
			Name:      "notifications_total",
			Help:      "Total new-lead email attempts by outcome",
		}, []string{"status"}),
		resortRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weddings",
			Subsystem: "leads",
			Name:      "resort_runs_total",
			Help:      "Total priority re-sort passes",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.leadsTotal, m.notificationsTotal, m.resortRuns)
	return m
}

func (m *LeadMetrics) ObserveLead(result string) {
	if m == nil {
		return
	}
	m.leadsTotal.WithLabelValues(result).Inc()
}

func (m *LeadMetrics) ObserveNotification(status string) {
	if m == nil {
		return
	}
	m.notificationsTotal.WithLabelValues(status).Inc()
}

func (m *LeadMetrics) ObserveResort() {
	if m == nil {
		return
	}
	m.resortRuns.Inc()
}
