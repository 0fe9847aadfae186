package usecases

import (
	"context"

	"github.com/parapente-jp/flightpass/internal/domain/payment"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
)

type mockCheckoutGateway struct {
	CreateFunc func(ctx context.Context, req *payment.CheckoutRequest) (string, error)
}

func (m *mockCheckoutGateway) CreateCheckoutSession(ctx context.Context, req *payment.CheckoutRequest) (string, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return "https://pay.example.com/session", nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
