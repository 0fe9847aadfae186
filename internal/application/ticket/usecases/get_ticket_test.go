package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parapente-jp/flightpass/internal/domain/ticket"
	apperrors "github.com/parapente-jp/flightpass/internal/shared/errors"
)

func TestGetTicket_Found(t *testing.T) {
	existing := activeTicket(t, "cs_test_get")
	store := &mockRecordStore{
		LoadFunc: func(ctx context.Context) (*ticket.Snapshot, error) {
			return snapshotOf("v1", existing), nil
		},
	}

	uc := NewGetTicketUseCase(store, &mockLogger{})
	got, err := uc.Execute(context.Background(), GetTicketCommand{TicketID: existing.ID()})

	require.NoError(t, err)
	assert.Same(t, existing, got)
}

func TestGetTicket_NotFound(t *testing.T) {
	uc := NewGetTicketUseCase(&mockRecordStore{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), GetTicketCommand{TicketID: "TKT-MISSING1"})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestGetTicket_EmptyID(t *testing.T) {
	uc := NewGetTicketUseCase(&mockRecordStore{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), GetTicketCommand{})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestGetTicket_StoreFailure(t *testing.T) {
	store := &mockRecordStore{
		LoadFunc: func(ctx context.Context) (*ticket.Snapshot, error) {
			return nil, errors.New("storage unreachable")
		},
	}

	uc := NewGetTicketUseCase(store, &mockLogger{})

	_, err := uc.Execute(context.Background(), GetTicketCommand{TicketID: "TKT-ABCD1234"})
	require.Error(t, err)
	assert.False(t, apperrors.IsNotFoundError(err))
}

func TestGetTicketBySession_ExactMatchWinsOverPrefix(t *testing.T) {
	exact := activeTicket(t, "cs_test_s1")
	prefixed := activeTicket(t, "cs_test_s1-0")
	store := &mockRecordStore{
		LoadFunc: func(ctx context.Context) (*ticket.Snapshot, error) {
			return snapshotOf("v1", prefixed, exact), nil
		},
	}

	uc := NewGetTicketBySessionUseCase(store, &mockLogger{})
	got, err := uc.Execute(context.Background(), GetTicketBySessionCommand{SessionID: "cs_test_s1"})

	require.NoError(t, err)
	assert.Same(t, exact, got)
}

func TestGetTicketBySession_PrefixFallback(t *testing.T) {
	prefixed := activeTicket(t, "cs_test_s2-1")
	store := &mockRecordStore{
		LoadFunc: func(ctx context.Context) (*ticket.Snapshot, error) {
			return snapshotOf("v1", prefixed), nil
		},
	}

	uc := NewGetTicketBySessionUseCase(store, &mockLogger{})
	got, err := uc.Execute(context.Background(), GetTicketBySessionCommand{SessionID: "cs_test_s2"})

	require.NoError(t, err)
	assert.Same(t, prefixed, got)
}

func TestGetTicketBySession_NoMatch(t *testing.T) {
	uc := NewGetTicketBySessionUseCase(&mockRecordStore{}, &mockLogger{})

	_, err := uc.Execute(context.Background(), GetTicketBySessionCommand{SessionID: "cs_test_none"})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}
