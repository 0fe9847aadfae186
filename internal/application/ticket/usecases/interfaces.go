package usecases

// Metrics receives lifecycle counters. Implemented by the monitoring
// package; a nil-safe no-op keeps use cases testable without it.
type Metrics interface {
	TicketIssued(product string, gift bool)
	TicketChecked(outcome string)
	TicketConsumed(outcome string)
}

type noopMetrics struct{}

func (noopMetrics) TicketIssued(string, bool) {}
func (noopMetrics) TicketChecked(string)      {}
func (noopMetrics) TicketConsumed(string)     {}

func metricsOrNoop(m Metrics) Metrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}
