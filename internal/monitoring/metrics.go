// Package monitoring exposes Prometheus counters for the ticket lifecycle.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticketsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightpass_tickets_issued_total",
			Help: "Tickets issued, by formula and gift flag",
		},
		[]string{"product", "gift"},
	)

	ticketsChecked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightpass_tickets_checked_total",
			Help: "Read-only ticket checks, by verdict",
		},
		[]string{"outcome"},
	)

	ticketsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flightpass_tickets_consumed_total",
			Help: "Consumption attempts, by outcome",
		},
		[]string{"outcome"},
	)
)

// Monitor feeds the lifecycle counters. It satisfies the use case Metrics
// interface.
type Monitor struct{}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) TicketIssued(product string, gift bool) {
	giftLabel := "false"
	if gift {
		giftLabel = "true"
	}
	ticketsIssued.WithLabelValues(product, giftLabel).Inc()
}

func (m *Monitor) TicketChecked(outcome string) {
	ticketsChecked.WithLabelValues(outcome).Inc()
}

func (m *Monitor) TicketConsumed(outcome string) {
	ticketsConsumed.WithLabelValues(outcome).Inc()
}
