package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/parapente-jp/flightpass/internal/domain/ticket"
	apperrors "github.com/parapente-jp/flightpass/internal/shared/errors"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
)

// consumeRetries bounds the read-validate-write loop when the snapshot
// version moves under us. Each retry starts from a fresh read, so two
// operators scanning the same voucher race safely: exactly one wins, the
// other sees "already used".
const consumeRetries = 3

type ConsumeTicketCommand struct {
	TicketID string
}

// ConsumeResult mirrors CheckResult but reports the outcome of an actual
// consumption attempt.
type ConsumeResult struct {
	Consumed bool
	Message  string
	Ticket   *ticket.Ticket
}

// ConsumeTicketUseCase flips a ticket from active to used. This is the one
// mutation in the ticket lifecycle, and the one place where the optimistic
// concurrency of the record store matters.
type ConsumeTicketUseCase struct {
	store   ticket.RecordStore
	metrics Metrics
	logger  logger.Interface
}

func NewConsumeTicketUseCase(store ticket.RecordStore, metrics Metrics, logger logger.Interface) *ConsumeTicketUseCase {
	return &ConsumeTicketUseCase{store: store, metrics: metricsOrNoop(metrics), logger: logger}
}

func (uc *ConsumeTicketUseCase) Execute(ctx context.Context, cmd ConsumeTicketCommand) (*ConsumeResult, error) {
	if cmd.TicketID == "" {
		return nil, apperrors.NewValidationError("ticket ID is required")
	}

	var lastErr error
	for attempt := 0; attempt < consumeRetries; attempt++ {
		snap, err := uc.store.Load(ctx)
		if err != nil {
			uc.logger.Errorw("failed to load ticket records", "error", err)
			return nil, fmt.Errorf("failed to load ticket records: %w", err)
		}

		t, idx := findByID(snap.Tickets, cmd.TicketID)
		if t == nil {
			uc.metrics.TicketConsumed("not_found")
			return &ConsumeResult{Consumed: false, Message: msgNotFound}, nil
		}

		if t.Status().IsUsed() {
			uc.metrics.TicketConsumed("already_used")
			return &ConsumeResult{
				Consumed: false,
				Message:  fmt.Sprintf(msgUsedShort, frenchDateTime(*t.UsedAt())),
				Ticket:   t,
			}, nil
		}

		if err := t.MarkUsed(); err != nil {
			if t.IsExpired() {
				uc.metrics.TicketConsumed("expired")
				return &ConsumeResult{Consumed: false, Message: msgExpired, Ticket: t}, nil
			}
			return nil, fmt.Errorf("failed to mark ticket as used: %w", err)
		}

		snap.Tickets[idx] = t
		err = uc.store.Save(ctx, snap.Tickets, snap.Version)
		if err == nil {
			uc.metrics.TicketConsumed("consumed")
			uc.logger.Infow("ticket consumed",
				"ticket_id", t.ID(),
				"used_at", t.UsedAt(),
			)
			return &ConsumeResult{Consumed: true, Message: msgConsumed, Ticket: t}, nil
		}

		lastErr = err
		if !errors.Is(err, ticket.ErrVersionConflict) {
			break
		}
		uc.logger.Warnw("snapshot version moved during consumption, retrying",
			"ticket_id", cmd.TicketID,
			"attempt", attempt+1,
		)
	}

	uc.logger.Errorw("failed to persist ticket consumption", "error", lastErr, "ticket_id", cmd.TicketID)
	return nil, fmt.Errorf("failed to persist ticket consumption: %w", lastErr)
}
