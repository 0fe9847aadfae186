package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/parapente-jp/flightpass/internal/domain/catalog"
	"github.com/parapente-jp/flightpass/internal/domain/payment"
	apperrors "github.com/parapente-jp/flightpass/internal/shared/errors"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
)

type CreateCheckoutCommand struct {
	FormulaID     string
	OptionIDs     []string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Date          string
	Weight        int
	Participants  int
	// Origin is the scheme://host the browser came from; redirect URLs
	// are built against it.
	Origin string
}

type CreateCheckoutResult struct {
	// URL is where the buyer is sent to pay.
	URL string
}

// CreateCheckoutUseCase prices a reservation against the catalog and opens
// a payment session for it. Unknown option IDs are skipped rather than
// rejected: the formula carries the authoritative option list.
type CreateCheckoutUseCase struct {
	gateway payment.CheckoutGateway
	enabled bool
	logger  logger.Interface
}

func NewCreateCheckoutUseCase(gateway payment.CheckoutGateway, enabled bool, logger logger.Interface) *CreateCheckoutUseCase {
	return &CreateCheckoutUseCase{gateway: gateway, enabled: enabled, logger: logger}
}

func (uc *CreateCheckoutUseCase) Execute(ctx context.Context, cmd CreateCheckoutCommand) (*CreateCheckoutResult, error) {
	if !uc.enabled {
		return nil, apperrors.NewUnavailableError("Les paiements en ligne sont temporairement désactivés.")
	}

	formula, ok := catalog.FindFormula(cmd.FormulaID)
	if !ok {
		return nil, apperrors.NewValidationError("Formule non trouvée")
	}

	if cmd.Participants < 1 {
		cmd.Participants = 1
	}

	participants := decimal.NewFromInt(int64(cmd.Participants))
	total := formula.Price.Mul(participants)

	selected := make([]string, 0, len(cmd.OptionIDs))
	for _, optionID := range cmd.OptionIDs {
		option, ok := formula.Option(optionID)
		if !ok {
			continue
		}
		total = total.Add(option.Price.Mul(participants))
		selected = append(selected, option.Name)
	}

	description := fmt.Sprintf("%s • %s • %d personne(s)", formula.Duration, cmd.Date, cmd.Participants)
	if len(selected) > 0 {
		description += " • Options: " + strings.Join(selected, ", ")
	}

	req := &payment.CheckoutRequest{
		Lines: []payment.CheckoutLine{{
			Name:        "Baptême Parapente - " + formula.Name,
			Description: description,
			UnitAmount:  total.Mul(decimal.NewFromInt(100)).IntPart(),
			Quantity:    1,
		}},
		CustomerEmail: cmd.CustomerEmail,
		SuccessURL:    cmd.Origin + "/reservation/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     cmd.Origin + "/reservation/cancel",
		Metadata: map[string]string{
			"formulaId":     cmd.FormulaID,
			"formulaName":   formula.Name,
			"customerName":  cmd.CustomerName,
			"customerPhone": cmd.CustomerPhone,
			"date":          cmd.Date,
			"weight":        fmt.Sprintf("%d", cmd.Weight),
			"participants":  fmt.Sprintf("%d", cmd.Participants),
			"options":       strings.Join(selected, ","),
		},
	}

	url, err := uc.gateway.CreateCheckoutSession(ctx, req)
	if err != nil {
		uc.logger.Errorw("failed to create checkout session", "error", err, "formula_id", cmd.FormulaID)
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	uc.logger.Infow("checkout session opened",
		"formula_id", cmd.FormulaID,
		"participants", cmd.Participants,
		"total", total,
	)

	return &CreateCheckoutResult{URL: url}, nil
}
