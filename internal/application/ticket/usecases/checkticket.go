package usecases

import (
	"context"
	"fmt"

	"github.com/parapente-jp/flightpass/internal/domain/ticket"
	apperrors "github.com/parapente-jp/flightpass/internal/shared/errors"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
)

type CheckTicketCommand struct {
	TicketID string
}

// CheckResult is a verdict, not an error: an invalid ticket is a normal
// answer. Message is operator-facing French.
type CheckResult struct {
	Valid   bool
	Message string
	Ticket  *ticket.Ticket
}

// CheckTicketUseCase reports whether a ticket could be consumed right now,
// without mutating anything. The scan desk calls this before the pilot
// commits to the flight.
type CheckTicketUseCase struct {
	store   ticket.RecordStore
	metrics Metrics
	logger  logger.Interface
}

func NewCheckTicketUseCase(store ticket.RecordStore, metrics Metrics, logger logger.Interface) *CheckTicketUseCase {
	return &CheckTicketUseCase{store: store, metrics: metricsOrNoop(metrics), logger: logger}
}

func (uc *CheckTicketUseCase) Execute(ctx context.Context, cmd CheckTicketCommand) (*CheckResult, error) {
	if cmd.TicketID == "" {
		return nil, apperrors.NewValidationError("ticket ID is required")
	}

	snap, err := uc.store.Load(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load ticket records", "error", err)
		return nil, fmt.Errorf("failed to load ticket records: %w", err)
	}

	t, _ := findByID(snap.Tickets, cmd.TicketID)
	result := verdict(t)

	uc.metrics.TicketChecked(verdictOutcome(t))

	return result, nil
}

func verdict(t *ticket.Ticket) *CheckResult {
	switch {
	case t == nil:
		return &CheckResult{Valid: false, Message: msgNotFound}
	case t.Status().IsUsed():
		return &CheckResult{
			Valid:   false,
			Message: fmt.Sprintf(msgUsedShort, frenchDate(*t.UsedAt())),
			Ticket:  t,
		}
	case t.IsExpired():
		return &CheckResult{Valid: false, Message: msgExpired, Ticket: t}
	default:
		return &CheckResult{Valid: true, Message: msgValid, Ticket: t}
	}
}

func verdictOutcome(t *ticket.Ticket) string {
	switch {
	case t == nil:
		return "not_found"
	case t.Status().IsUsed():
		return "already_used"
	case t.IsExpired():
		return "expired"
	default:
		return "valid"
	}
}
