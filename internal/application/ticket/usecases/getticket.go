package usecases

import (
	"context"
	"fmt"

	"github.com/parapente-jp/flightpass/internal/domain/ticket"
	apperrors "github.com/parapente-jp/flightpass/internal/shared/errors"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
)

type GetTicketCommand struct {
	TicketID string
}

type GetTicketUseCase struct {
	store  ticket.RecordStore
	logger logger.Interface
}

func NewGetTicketUseCase(store ticket.RecordStore, logger logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{store: store, logger: logger}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, cmd GetTicketCommand) (*ticket.Ticket, error) {
	if cmd.TicketID == "" {
		return nil, apperrors.NewValidationError("ticket ID is required")
	}

	snap, err := uc.store.Load(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load ticket records", "error", err)
		return nil, fmt.Errorf("failed to load ticket records: %w", err)
	}

	t, _ := findByID(snap.Tickets, cmd.TicketID)
	if t == nil {
		return nil, apperrors.NewNotFoundError("ticket not found")
	}

	return t, nil
}
