package usecases

import (
	"context"
	"fmt"
	"sort"

	"github.com/parapente-jp/flightpass/internal/domain/ticket"
	vo "github.com/parapente-jp/flightpass/internal/domain/ticket/valueobjects"
	apperrors "github.com/parapente-jp/flightpass/internal/shared/errors"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
)

type ListTicketsCommand struct {
	// Status filters the list when set ("active", "used", "expired").
	// "expired" matches both the stored status and time-expired tickets.
	Status string
}

type ListTicketsUseCase struct {
	store  ticket.RecordStore
	logger logger.Interface
}

func NewListTicketsUseCase(store ticket.RecordStore, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{store: store, logger: logger}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, cmd ListTicketsCommand) ([]*ticket.Ticket, error) {
	var filter vo.Status
	if cmd.Status != "" {
		var err error
		filter, err = vo.NewStatus(cmd.Status)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid status filter: %s", cmd.Status))
		}
	}

	snap, err := uc.store.Load(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load ticket records", "error", err)
		return nil, fmt.Errorf("failed to load ticket records: %w", err)
	}

	tickets := snap.Tickets
	if filter != "" {
		filtered := make([]*ticket.Ticket, 0, len(tickets))
		for _, t := range tickets {
			if matchesStatusFilter(t, filter) {
				filtered = append(filtered, t)
			}
		}
		tickets = filtered
	}

	// Newest first for the admin view.
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt().After(tickets[j].CreatedAt())
	})

	return tickets, nil
}

func matchesStatusFilter(t *ticket.Ticket, filter vo.Status) bool {
	switch filter {
	case vo.StatusExpired:
		return t.Status() != vo.StatusUsed && t.IsExpired()
	case vo.StatusActive:
		return t.Status() == vo.StatusActive && !t.IsExpired()
	default:
		return t.Status() == filter
	}
}
