package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parapente-jp/flightpass/internal/domain/ticket"
	vo "github.com/parapente-jp/flightpass/internal/domain/ticket/valueobjects"
)

// ticketRecord is the persisted form of a ticket. The collection is stored
// as a JSON array of these records, timestamps in RFC 3339 UTC.
type ticketRecord struct {
	ID         string          `json:"id"`
	SessionID  string          `json:"session_id"`
	Product    string          `json:"product"`
	AddOns     []string        `json:"add_ons"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	BuyerName  string          `json:"buyer_name"`
	BuyerEmail string          `json:"buyer_email"`
	BuyerPhone string          `json:"buyer_phone,omitempty"`
	Gift       bool            `json:"gift,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	ValidUntil time.Time       `json:"valid_until"`
	Status     string          `json:"status"`
	UsedAt     *time.Time      `json:"used_at,omitempty"`
}

func toRecord(t *ticket.Ticket) ticketRecord {
	buyer := t.Buyer()
	return ticketRecord{
		ID:         t.ID(),
		SessionID:  t.SessionID(),
		Product:    t.Product(),
		AddOns:     t.AddOns(),
		AmountPaid: t.AmountPaid(),
		BuyerName:  buyer.Name,
		BuyerEmail: buyer.Email,
		BuyerPhone: buyer.Phone,
		Gift:       t.IsGift(),
		CreatedAt:  t.CreatedAt(),
		ValidUntil: t.ValidUntil(),
		Status:     t.Status().String(),
		UsedAt:     t.UsedAt(),
	}
}

func toDomain(r ticketRecord) (*ticket.Ticket, error) {
	status, err := vo.NewStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.ID, err)
	}

	t, err := ticket.ReconstructTicket(
		r.ID,
		r.SessionID,
		r.Product,
		r.AddOns,
		r.AmountPaid,
		ticket.Buyer{Name: r.BuyerName, Email: r.BuyerEmail, Phone: r.BuyerPhone},
		r.Gift,
		r.CreatedAt,
		r.ValidUntil,
		status,
		r.UsedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", r.ID, err)
	}
	return t, nil
}

// encodeSnapshot serializes the full collection. The output is stable and
// human-diffable; the github backend commits it to a repository.
func encodeSnapshot(tickets []*ticket.Ticket) ([]byte, error) {
	records := make([]ticketRecord, 0, len(tickets))
	for _, t := range tickets {
		records = append(records, toRecord(t))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode ticket snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

func decodeSnapshot(data []byte) ([]*ticket.Ticket, error) {
	var records []ticketRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode ticket snapshot: %w", err)
	}

	tickets := make([]*ticket.Ticket, 0, len(records))
	for _, r := range records {
		t, err := toDomain(r)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}
