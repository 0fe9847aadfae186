package usecases

import (
	"context"

	"github.com/parapente-jp/flightpass/internal/domain/payment"
	"github.com/parapente-jp/flightpass/internal/domain/ticket"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
)

type mockRecordStore struct {
	LoadFunc func(ctx context.Context) (*ticket.Snapshot, error)
	SaveFunc func(ctx context.Context, tickets []*ticket.Ticket, version string) error
}

func (m *mockRecordStore) Load(ctx context.Context) (*ticket.Snapshot, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return &ticket.Snapshot{Tickets: []*ticket.Ticket{}, Version: "v0"}, nil
}

func (m *mockRecordStore) Save(ctx context.Context, tickets []*ticket.Ticket, version string) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tickets, version)
	}
	return nil
}

type mockSessionResolver struct {
	ResolveFunc func(ctx context.Context, sessionID string) (*payment.SessionInfo, error)
}

func (m *mockSessionResolver) Resolve(ctx context.Context, sessionID string) (*payment.SessionInfo, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, sessionID)
	}
	return nil, payment.ErrSessionNotFound
}

type mockMetrics struct {
	Issued   []string
	Checked  []string
	Consumed []string
}

func (m *mockMetrics) TicketIssued(product string, gift bool) {
	m.Issued = append(m.Issued, product)
}

func (m *mockMetrics) TicketChecked(outcome string) {
	m.Checked = append(m.Checked, outcome)
}

func (m *mockMetrics) TicketConsumed(outcome string) {
	m.Consumed = append(m.Consumed, outcome)
}

type mockLogger struct {
	InfowFunc  func(msg string, keysAndValues ...interface{})
	WarnwFunc  func(msg string, keysAndValues ...interface{})
	ErrorwFunc func(msg string, keysAndValues ...interface{})
}

func (m *mockLogger) Debug(msg string, args ...any) {}
func (m *mockLogger) Info(msg string, args ...any)  {}
func (m *mockLogger) Warn(msg string, args ...any)  {}
func (m *mockLogger) Error(msg string, args ...any) {}

func (m *mockLogger) With(args ...any) logger.Interface  { return m }
func (m *mockLogger) Named(name string) logger.Interface { return m }

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}
