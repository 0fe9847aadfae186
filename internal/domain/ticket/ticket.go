package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/parapente-jp/flightpass/internal/domain/ticket/valueobjects"
	"github.com/parapente-jp/flightpass/internal/shared/id"
)

// validUntil is always createdAt plus exactly one year.
const validityYears = 1

// Buyer holds the contact attributes copied from the payment session at
// creation time. They are never re-fetched afterward.
type Buyer struct {
	Name  string
	Email string
	Phone string
}

type Ticket struct {
	id         string
	sessionID  string
	product    string
	addOns     []string
	amountPaid decimal.Decimal
	buyer      Buyer
	gift       bool
	createdAt  time.Time
	validUntil time.Time
	status     vo.Status
	usedAt     *time.Time
}

// NewTicket issues a fresh ticket for a resolved payment session. The code
// is generated here from a cryptographically secure source; there is no
// collision retry, the 36^8 code space is treated as collision-free at the
// expected volume.
func NewTicket(
	sessionID string,
	product string,
	addOns []string,
	amountPaid decimal.Decimal,
	buyer Buyer,
	gift bool,
) (*Ticket, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("session ID is required")
	}
	if product == "" {
		return nil, fmt.Errorf("product is required")
	}
	if amountPaid.IsNegative() {
		return nil, fmt.Errorf("amount paid cannot be negative")
	}

	ticketID, err := id.NewTicketID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ticket code: %w", err)
	}

	if addOns == nil {
		addOns = []string{}
	}

	now := time.Now().UTC()

	return &Ticket{
		id:         ticketID,
		sessionID:  sessionID,
		product:    product,
		addOns:     addOns,
		amountPaid: amountPaid,
		buyer:      buyer,
		gift:       gift,
		createdAt:  now,
		validUntil: now.AddDate(validityYears, 0, 0),
		status:     vo.StatusActive,
	}, nil
}

// ReconstructTicket rehydrates a ticket from its persisted record.
func ReconstructTicket(
	ticketID string,
	sessionID string,
	product string,
	addOns []string,
	amountPaid decimal.Decimal,
	buyer Buyer,
	gift bool,
	createdAt time.Time,
	validUntil time.Time,
	status vo.Status,
	usedAt *time.Time,
) (*Ticket, error) {
	if ticketID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if status.IsUsed() && usedAt == nil {
		return nil, fmt.Errorf("used ticket must carry a usedAt timestamp")
	}
	if !status.IsUsed() && usedAt != nil {
		return nil, fmt.Errorf("usedAt is only valid on a used ticket")
	}

	if addOns == nil {
		addOns = []string{}
	}

	return &Ticket{
		id:         ticketID,
		sessionID:  sessionID,
		product:    product,
		addOns:     addOns,
		amountPaid: amountPaid,
		buyer:      buyer,
		gift:       gift,
		createdAt:  createdAt,
		validUntil: validUntil,
		status:     status,
		usedAt:     usedAt,
	}, nil
}

func (t *Ticket) ID() string {
	return t.id
}

func (t *Ticket) SessionID() string {
	return t.sessionID
}

func (t *Ticket) Product() string {
	return t.product
}

func (t *Ticket) AddOns() []string {
	addOnsCopy := make([]string, len(t.addOns))
	copy(addOnsCopy, t.addOns)
	return addOnsCopy
}

func (t *Ticket) AmountPaid() decimal.Decimal {
	return t.amountPaid
}

func (t *Ticket) Buyer() Buyer {
	return t.buyer
}

func (t *Ticket) IsGift() bool {
	return t.gift
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) ValidUntil() time.Time {
	return t.validUntil
}

func (t *Ticket) Status() vo.Status {
	return t.status
}

func (t *Ticket) UsedAt() *time.Time {
	return t.usedAt
}

// MatchesSession reports whether this ticket belongs to the given payment
// session. Cart purchases derive one session ID per line item by suffixing
// the checkout session ID, so a prefix match is accepted as well.
func (t *Ticket) MatchesSession(sessionID string) bool {
	return t.sessionID == sessionID || strings.HasPrefix(t.sessionID, sessionID+"-")
}

// IsExpiredAt reports whether the ticket is past its validity at the given
// instant. A stored "expired" status counts too, but the usual case is a
// record whose status still reads active while validUntil has passed.
func (t *Ticket) IsExpiredAt(now time.Time) bool {
	if t.status.IsExpired() {
		return true
	}
	return now.After(t.validUntil)
}

// IsExpired reports whether the ticket is past its validity right now.
func (t *Ticket) IsExpired() bool {
	return t.IsExpiredAt(time.Now().UTC())
}

// MarkUsed consumes the ticket. It is the only mutation a ticket ever
// undergoes after creation: status flips active→used and usedAt is set
// exactly once. A used ticket's original usedAt is never overwritten.
func (t *Ticket) MarkUsed() error {
	if t.status.IsUsed() {
		return fmt.Errorf("ticket is already used")
	}
	if t.IsExpired() {
		return fmt.Errorf("ticket is expired")
	}
	if !t.status.CanTransitionTo(vo.StatusUsed) {
		return fmt.Errorf("cannot transition from %s to %s", t.status, vo.StatusUsed)
	}

	now := time.Now().UTC()
	t.status = vo.StatusUsed
	t.usedAt = &now

	return nil
}
