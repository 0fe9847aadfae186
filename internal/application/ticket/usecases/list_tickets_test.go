package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parapente-jp/flightpass/internal/domain/ticket"
	vo "github.com/parapente-jp/flightpass/internal/domain/ticket/valueobjects"
	apperrors "github.com/parapente-jp/flightpass/internal/shared/errors"
)

func TestListTickets_All(t *testing.T) {
	a := activeTicket(t, "cs_test_l1")
	b := activeTicket(t, "cs_test_l2")
	store := &mockRecordStore{
		LoadFunc: func(ctx context.Context) (*ticket.Snapshot, error) {
			return snapshotOf("v1", a, b), nil
		},
	}

	uc := NewListTicketsUseCase(store, &mockLogger{})
	got, err := uc.Execute(context.Background(), ListTicketsCommand{})

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestListTickets_NewestFirst(t *testing.T) {
	older := storedTicket(t, "TKT-OLDER001", "cs_test_old", vo.StatusActive,
		time.Now().UTC().Add(365*24*time.Hour), nil)
	newer := activeTicket(t, "cs_test_new")
	store := &mockRecordStore{
		LoadFunc: func(ctx context.Context) (*ticket.Snapshot, error) {
			return snapshotOf("v1", older, newer), nil
		},
	}

	uc := NewListTicketsUseCase(store, &mockLogger{})
	got, err := uc.Execute(context.Background(), ListTicketsCommand{})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Same(t, newer, got[0])
	assert.Same(t, older, got[1])
}

func TestListTickets_StatusFilter(t *testing.T) {
	future := time.Now().UTC().Add(365 * 24 * time.Hour)
	usedAt := time.Now().UTC().Add(-time.Hour)

	active := activeTicket(t, "cs_test_f1")
	used := storedTicket(t, "TKT-FUSED001", "cs_test_f2", vo.StatusUsed, future, &usedAt)
	timeExpired := storedTicket(t, "TKT-FEXP0001", "cs_test_f3", vo.StatusActive,
		time.Now().UTC().Add(-time.Hour), nil)

	store := &mockRecordStore{
		LoadFunc: func(ctx context.Context) (*ticket.Snapshot, error) {
			return snapshotOf("v1", active, used, timeExpired), nil
		},
	}
	uc := NewListTicketsUseCase(store, &mockLogger{})

	tests := []struct {
		status string
		want   []*ticket.Ticket
	}{
		{"active", []*ticket.Ticket{active}},
		{"used", []*ticket.Ticket{used}},
		{"expired", []*ticket.Ticket{timeExpired}},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got, err := uc.Execute(context.Background(), ListTicketsCommand{Status: tt.status})
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Same(t, tt.want[i], got[i])
			}
		})
	}
}

func TestListTickets_InvalidStatusFilter(t *testing.T) {
	uc := NewListTicketsUseCase(&mockRecordStore{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), ListTicketsCommand{Status: "refunded"})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestListTickets_EmptyStore(t *testing.T) {
	uc := NewListTicketsUseCase(&mockRecordStore{}, &mockLogger{})

	got, err := uc.Execute(context.Background(), ListTicketsCommand{})

	require.NoError(t, err)
	assert.Empty(t, got)
}
