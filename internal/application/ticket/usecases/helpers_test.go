package usecases

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/parapente-jp/flightpass/internal/domain/ticket"
	vo "github.com/parapente-jp/flightpass/internal/domain/ticket/valueobjects"
)

func activeTicket(t *testing.T, sessionID string) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(
		sessionID,
		"Découverte",
		[]string{"Photo/Vidéo"},
		decimal.NewFromInt(95),
		ticket.Buyer{Name: "A. Dupont", Email: "a.dupont@example.com"},
		false,
	)
	require.NoError(t, err)
	return tk
}

func storedTicket(t *testing.T, id, sessionID string, status vo.Status, validUntil time.Time, usedAt *time.Time) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.ReconstructTicket(
		id,
		sessionID,
		"Ascendances",
		[]string{},
		decimal.NewFromInt(130),
		ticket.Buyer{Name: "B. Martin"},
		false,
		time.Now().UTC().Add(-24*time.Hour),
		validUntil,
		status,
		usedAt,
	)
	require.NoError(t, err)
	return tk
}

func snapshotOf(version string, tickets ...*ticket.Ticket) *ticket.Snapshot {
	if tickets == nil {
		tickets = []*ticket.Ticket{}
	}
	return &ticket.Snapshot{Tickets: tickets, Version: version}
}
