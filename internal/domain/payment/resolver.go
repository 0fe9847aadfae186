// Package payment defines the ports to the external payment provider.
// The provider owns payment authorization and fraud handling; this system
// only resolves completed sessions and creates checkout redirects.
package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrSessionNotFound is returned when the provider has no record of the
// given checkout session.
var ErrSessionNotFound = errors.New("payment session not found")

// SessionInfo is the slice of a provider checkout session the ticket
// lifecycle needs: what was bought, for how much, and by whom.
type SessionInfo struct {
	SessionID  string
	Product    string
	AddOns     []string
	AmountPaid decimal.Decimal
	BuyerName  string
	BuyerEmail string
	BuyerPhone string
	Gift       bool
}

// SessionResolver resolves a checkout session identifier against the
// provider. Resolution happens exactly once per ticket, at creation.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*SessionInfo, error)
}
