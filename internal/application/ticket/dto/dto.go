package dto

import (
	"time"

	"github.com/parapente-jp/flightpass/internal/domain/ticket"
)

// TicketDTO is the wire shape of a ticket. Field names match the persisted
// record so downloads and API responses stay consistent.
type TicketDTO struct {
	ID         string     `json:"id"`
	SessionID  string     `json:"session_id"`
	Product    string     `json:"product"`
	AddOns     []string   `json:"add_ons"`
	AmountPaid string     `json:"amount_paid"`
	BuyerName  string     `json:"buyer_name"`
	BuyerEmail string     `json:"buyer_email,omitempty"`
	BuyerPhone string     `json:"buyer_phone,omitempty"`
	Gift       bool       `json:"gift"`
	CreatedAt  time.Time  `json:"created_at"`
	ValidUntil time.Time  `json:"valid_until"`
	Status     string     `json:"status"`
	UsedAt     *time.Time `json:"used_at,omitempty"`
	Expired    bool       `json:"expired"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}

	buyer := t.Buyer()

	return &TicketDTO{
		ID:         t.ID(),
		SessionID:  t.SessionID(),
		Product:    t.Product(),
		AddOns:     t.AddOns(),
		AmountPaid: t.AmountPaid().String(),
		BuyerName:  buyer.Name,
		BuyerEmail: buyer.Email,
		BuyerPhone: buyer.Phone,
		Gift:       t.IsGift(),
		CreatedAt:  t.CreatedAt(),
		ValidUntil: t.ValidUntil(),
		Status:     t.Status().String(),
		UsedAt:     t.UsedAt(),
		Expired:    t.IsExpired(),
	}
}

func ToTicketDTOs(tickets []*ticket.Ticket) []*TicketDTO {
	dtos := make([]*TicketDTO, 0, len(tickets))
	for _, t := range tickets {
		dtos = append(dtos, ToTicketDTO(t))
	}
	return dtos
}
