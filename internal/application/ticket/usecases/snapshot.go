package usecases

import (
	"fmt"
	"time"

	"github.com/parapente-jp/flightpass/internal/domain/ticket"
)

// Operator-facing verdict messages. These are shown verbatim at the
// landing field, hence French.
const (
	msgNotFound  = "Billet introuvable"
	msgExpired   = "Billet expiré"
	msgValid     = "Billet valide"
	msgConsumed  = "Billet validé avec succès !"
	msgUsedShort = "Billet déjà utilisé le %s"
)

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// frenchDateTime renders "2 janvier 2026 à 15:04".
func frenchDateTime(t time.Time) string {
	return fmt.Sprintf("%d %s %d à %02d:%02d", t.Day(), frenchMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// frenchDate renders "02/01/2026".
func frenchDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func findByID(tickets []*ticket.Ticket, ticketID string) (*ticket.Ticket, int) {
	for i, t := range tickets {
		if t.ID() == ticketID {
			return t, i
		}
	}
	return nil, -1
}

// findBySession prefers an exact session match and falls back to a prefix
// match, which catches per-item sessions derived from a cart purchase
// ("<session>-0", "<session>-1", ...).
func findBySession(tickets []*ticket.Ticket, sessionID string) *ticket.Ticket {
	for _, t := range tickets {
		if t.SessionID() == sessionID {
			return t
		}
	}
	for _, t := range tickets {
		if t.MatchesSession(sessionID) {
			return t
		}
	}
	return nil
}
