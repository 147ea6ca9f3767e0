// AngelaMos | 2026
// metrics.go

package notification

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	emails *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		emails: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foodhall_notification_emails_total",
				Help: "Booking emails by type and delivery outcome",
			},
			[]string{"type", "status"},
		),
	}

	reg.MustRegister(m.emails)
	return m
}

func (m *Metrics) observe(emailType, status string) {
	if m == nil {
		return
	}
	m.emails.WithLabelValues(emailType, status).Inc()
}
