package usecases

import (
	"context"
	"fmt"

	"github.com/parapente-jp/flightpass/internal/domain/ticket"
	apperrors "github.com/parapente-jp/flightpass/internal/shared/errors"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
)

type GetTicketBySessionCommand struct {
	SessionID string
}

// GetTicketBySessionUseCase looks a ticket up by the checkout session that
// paid for it. Used by the success page, which only knows the session ID.
type GetTicketBySessionUseCase struct {
	store  ticket.RecordStore
	logger logger.Interface
}

func NewGetTicketBySessionUseCase(store ticket.RecordStore, logger logger.Interface) *GetTicketBySessionUseCase {
	return &GetTicketBySessionUseCase{store: store, logger: logger}
}

func (uc *GetTicketBySessionUseCase) Execute(ctx context.Context, cmd GetTicketBySessionCommand) (*ticket.Ticket, error) {
	if cmd.SessionID == "" {
		return nil, apperrors.NewValidationError("session ID is required")
	}

	snap, err := uc.store.Load(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load ticket records", "error", err)
		return nil, fmt.Errorf("failed to load ticket records: %w", err)
	}

	t := findBySession(snap.Tickets, cmd.SessionID)
	if t == nil {
		return nil, apperrors.NewNotFoundError("no ticket for this session")
	}

	return t, nil
}
