package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/parapente-jp/flightpass/internal/domain/ticket/valueobjects"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// newValidTicket issues a ticket with sensible defaults for testing.
func newValidTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket(
		"sess_123",
		"Discovery",
		[]string{"video", "photos"},
		decimal.NewFromInt(95),
		Buyer{Name: "A. Dupont", Email: "a.dupont@example.com", Phone: "+33 6 00 00 00 00"},
		false,
	)
	require.NoError(t, err)
	return tk
}

// reconstructedTicket builds a persisted-style ticket via ReconstructTicket.
func reconstructedTicket(t *testing.T, status vo.Status, validUntil time.Time, usedAt *time.Time) *Ticket {
	t.Helper()
	created := validUntil.AddDate(-1, 0, 0)
	tk, err := ReconstructTicket(
		"TKT-4R7QZ2LK",
		"sess_987",
		"Performance",
		[]string{"video"},
		decimal.NewFromInt(140),
		Buyer{Name: "B. Martin", Email: "b.martin@example.com"},
		false,
		created,
		validUntil,
		status,
		usedAt,
	)
	require.NoError(t, err)
	return tk
}

// ---------------------------------------------------------------------------
// Constructor tests
// ---------------------------------------------------------------------------

func TestNewTicket_ValidInput(t *testing.T) {
	tk := newValidTicket(t)

	assert.True(t, strings.HasPrefix(tk.ID(), "TKT-"))
	assert.Equal(t, "sess_123", tk.SessionID())
	assert.Equal(t, "Discovery", tk.Product())
	assert.Equal(t, []string{"video", "photos"}, tk.AddOns())
	assert.True(t, tk.AmountPaid().Equal(decimal.NewFromInt(95)))
	assert.Equal(t, "A. Dupont", tk.Buyer().Name)
	assert.False(t, tk.IsGift())
	assert.Equal(t, vo.StatusActive, tk.Status())
	assert.Nil(t, tk.UsedAt())
}

func TestNewTicket_ValidUntilIsExactlyOneYear(t *testing.T) {
	tk := newValidTicket(t)
	assert.Equal(t, tk.CreatedAt().AddDate(1, 0, 0), tk.ValidUntil())
}

func TestNewTicket_GeneratesUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tk := newValidTicket(t)
		assert.False(t, seen[tk.ID()])
		seen[tk.ID()] = true
	}
}

func TestNewTicket_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		product   string
		amount    decimal.Decimal
	}{
		{name: "empty session ID", sessionID: "", product: "Discovery", amount: decimal.NewFromInt(95)},
		{name: "blank session ID", sessionID: "   ", product: "Discovery", amount: decimal.NewFromInt(95)},
		{name: "empty product", sessionID: "sess_123", product: "", amount: decimal.NewFromInt(95)},
		{name: "negative amount", sessionID: "sess_123", product: "Discovery", amount: decimal.NewFromInt(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTicket(tt.sessionID, tt.product, nil, tt.amount, Buyer{}, false)
			assert.Error(t, err)
		})
	}
}

func TestNewTicket_NilAddOnsBecomesEmpty(t *testing.T) {
	tk, err := NewTicket("sess_123", "Discovery", nil, decimal.NewFromInt(95), Buyer{}, false)
	require.NoError(t, err)
	assert.NotNil(t, tk.AddOns())
	assert.Empty(t, tk.AddOns())
}

func TestReconstructTicket_UsedAtConsistency(t *testing.T) {
	now := time.Now().UTC()

	_, err := ReconstructTicket(
		"TKT-AAAA0000", "sess_1", "Discovery", nil,
		decimal.NewFromInt(95), Buyer{}, false,
		now, now.AddDate(1, 0, 0), vo.StatusUsed, nil,
	)
	assert.Error(t, err, "used without usedAt must be rejected")

	_, err = ReconstructTicket(
		"TKT-AAAA0000", "sess_1", "Discovery", nil,
		decimal.NewFromInt(95), Buyer{}, false,
		now, now.AddDate(1, 0, 0), vo.StatusActive, &now,
	)
	assert.Error(t, err, "usedAt on a non-used ticket must be rejected")
}

// ---------------------------------------------------------------------------
// State machine tests
// ---------------------------------------------------------------------------

func TestMarkUsed_Success(t *testing.T) {
	tk := newValidTicket(t)

	err := tk.MarkUsed()
	require.NoError(t, err)

	assert.Equal(t, vo.StatusUsed, tk.Status())
	require.NotNil(t, tk.UsedAt())
	assert.WithinDuration(t, time.Now().UTC(), *tk.UsedAt(), time.Second)
}

func TestMarkUsed_AlreadyUsedKeepsOriginalTimestamp(t *testing.T) {
	tk := newValidTicket(t)
	require.NoError(t, tk.MarkUsed())

	firstUsedAt := *tk.UsedAt()

	err := tk.MarkUsed()
	assert.Error(t, err)
	assert.Equal(t, firstUsedAt, *tk.UsedAt())
	assert.Equal(t, vo.StatusUsed, tk.Status())
}

func TestMarkUsed_ExpiredByTime(t *testing.T) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	tk := reconstructedTicket(t, vo.StatusActive, yesterday, nil)

	err := tk.MarkUsed()
	assert.Error(t, err)
	assert.Equal(t, vo.StatusActive, tk.Status(), "failed consume must not mutate status")
	assert.Nil(t, tk.UsedAt())
}

func TestMarkUsed_StoredExpiredStatus(t *testing.T) {
	future := time.Now().UTC().AddDate(1, 0, 0)
	tk := reconstructedTicket(t, vo.StatusExpired, future, nil)

	err := tk.MarkUsed()
	assert.Error(t, err)
	assert.Equal(t, vo.StatusExpired, tk.Status())
}

// ---------------------------------------------------------------------------
// Derived expiry tests
// ---------------------------------------------------------------------------

func TestIsExpiredAt(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name       string
		status     vo.Status
		validUntil time.Time
		want       bool
	}{
		{name: "active and within validity", status: vo.StatusActive, validUntil: now.AddDate(0, 6, 0), want: false},
		{name: "active but past validity", status: vo.StatusActive, validUntil: now.AddDate(0, 0, -1), want: true},
		{name: "stored expired status with future validity", status: vo.StatusExpired, validUntil: now.AddDate(1, 0, 0), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := reconstructedTicket(t, tt.status, tt.validUntil, nil)
			assert.Equal(t, tt.want, tk.IsExpiredAt(now))
		})
	}
}

func TestMatchesSession(t *testing.T) {
	tk := newValidTicket(t)

	assert.True(t, tk.MatchesSession("sess_123"))
	assert.False(t, tk.MatchesSession("sess_999"))
	assert.False(t, tk.MatchesSession("sess_12"), "plain prefix without separator must not match")

	cartTk, err := NewTicket("sess_cart-2", "Gift voucher", nil, decimal.NewFromInt(80), Buyer{}, true)
	require.NoError(t, err)
	assert.True(t, cartTk.MatchesSession("sess_cart"), "cart-derived session IDs match on prefix")
	assert.True(t, cartTk.MatchesSession("sess_cart-2"))
}

func TestAddOns_ReturnsCopy(t *testing.T) {
	tk := newValidTicket(t)

	addOns := tk.AddOns()
	addOns[0] = "tampered"

	assert.Equal(t, []string{"video", "photos"}, tk.AddOns())
}
