package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/parapente-jp/flightpass/internal/domain/payment"
	"github.com/parapente-jp/flightpass/internal/domain/ticket"
	apperrors "github.com/parapente-jp/flightpass/internal/shared/errors"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
)

// issueSaveRetries bounds how often we re-read and re-append when another
// writer moved the snapshot version under us.
const issueSaveRetries = 3

type IssueTicketCommand struct {
	// SessionID identifies the paid checkout session. For cart purchases
	// the handler appends an item suffix ("-0", "-1", ...) before calling.
	SessionID string

	// Session carries already-resolved session data when the caller has it
	// (webhook delivery). When nil the resolver is consulted.
	Session *payment.SessionInfo
}

type IssueTicketResult struct {
	Ticket *ticket.Ticket
	// Reused reports that the session already had a ticket and no new one
	// was minted.
	Reused bool
	// Persisted is false when the ticket was minted but could not be
	// written to the record store. The caller still gets the ticket; the
	// buyer must not lose their purchase over a storage hiccup.
	Persisted bool
}

type IssueTicketUseCase struct {
	store    ticket.RecordStore
	resolver payment.SessionResolver
	metrics  Metrics
	logger   logger.Interface
}

func NewIssueTicketUseCase(
	store ticket.RecordStore,
	resolver payment.SessionResolver,
	metrics Metrics,
	logger logger.Interface,
) *IssueTicketUseCase {
	return &IssueTicketUseCase{
		store:    store,
		resolver: resolver,
		metrics:  metricsOrNoop(metrics),
		logger:   logger,
	}
}

func (uc *IssueTicketUseCase) Execute(ctx context.Context, cmd IssueTicketCommand) (*IssueTicketResult, error) {
	if cmd.SessionID == "" {
		return nil, apperrors.NewValidationError("session ID is required")
	}

	snap, err := uc.store.Load(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load ticket records", "error", err)
		return nil, fmt.Errorf("failed to load ticket records: %w", err)
	}

	if existing := findBySession(snap.Tickets, cmd.SessionID); existing != nil {
		uc.logger.Infow("ticket already issued for session",
			"ticket_id", existing.ID(),
			"session_id", cmd.SessionID,
		)
		return &IssueTicketResult{Ticket: existing, Reused: true, Persisted: true}, nil
	}

	info := cmd.Session
	if info == nil {
		info, err = uc.resolver.Resolve(ctx, cmd.SessionID)
		if err != nil {
			if errors.Is(err, payment.ErrSessionNotFound) {
				return nil, apperrors.NewNotFoundError("payment session not found")
			}
			uc.logger.Errorw("failed to resolve payment session", "error", err, "session_id", cmd.SessionID)
			return nil, fmt.Errorf("failed to resolve payment session: %w", err)
		}
	}

	newTicket, err := ticket.NewTicket(
		cmd.SessionID,
		info.Product,
		info.AddOns,
		info.AmountPaid,
		ticket.Buyer{Name: info.BuyerName, Email: info.BuyerEmail, Phone: info.BuyerPhone},
		info.Gift,
	)
	if err != nil {
		uc.logger.Errorw("failed to create ticket", "error", err, "session_id", cmd.SessionID)
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	persisted, reused, existing := uc.persist(ctx, snap, newTicket, cmd.SessionID)
	if reused {
		return &IssueTicketResult{Ticket: existing, Reused: true, Persisted: true}, nil
	}

	uc.metrics.TicketIssued(newTicket.Product(), newTicket.IsGift())
	uc.logger.Infow("ticket issued",
		"ticket_id", newTicket.ID(),
		"session_id", cmd.SessionID,
		"product", newTicket.Product(),
		"gift", newTicket.IsGift(),
		"persisted", persisted,
	)

	return &IssueTicketResult{Ticket: newTicket, Persisted: persisted}, nil
}

// persist appends the ticket to the snapshot and saves, retrying on
// version conflicts. Each retry re-reads the snapshot and re-checks the
// session in case a concurrent writer issued the same ticket first. A
// final failure is logged but not returned: the minted ticket is still
// handed to the buyer.
func (uc *IssueTicketUseCase) persist(ctx context.Context, snap *ticket.Snapshot, t *ticket.Ticket, sessionID string) (persisted, reused bool, existing *ticket.Ticket) {
	var err error
	for attempt := 0; attempt < issueSaveRetries; attempt++ {
		if attempt > 0 {
			snap, err = uc.store.Load(ctx)
			if err != nil {
				break
			}
			if existing = findBySession(snap.Tickets, sessionID); existing != nil {
				return false, true, existing
			}
		}

		err = uc.store.Save(ctx, append(snap.Tickets, t), snap.Version)
		if err == nil {
			return true, false, nil
		}
		if !errors.Is(err, ticket.ErrVersionConflict) {
			break
		}
	}

	uc.logger.Errorw("failed to persist ticket, returning it for user download anyway",
		"error", err,
		"ticket_id", t.ID(),
		"session_id", sessionID,
	)
	return false, false, nil
}
