package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/parapente-jp/flightpass/internal/domain/catalog"
	"github.com/parapente-jp/flightpass/internal/domain/payment"
	apperrors "github.com/parapente-jp/flightpass/internal/shared/errors"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
)

// giftSubmitNote is shown on the payment form for gift voucher purchases.
const giftSubmitNote = "Votre achat est un bon cadeau. Contactez Jean-Philippe au 06 83 03 63 44 pour fixer la date de vol."

type CartItem struct {
	FormulaID string
	OptionIDs []string
	Quantity  int
}

type CreateCartCheckoutCommand struct {
	Items  []CartItem
	Origin string
}

type CreateCartCheckoutResult struct {
	URL string
}

// CreateCartCheckoutUseCase opens a payment session for a basket of gift
// vouchers. One line per cart item; the metadata marks the session as a
// gift purchase so the issued tickets carry no flight date.
type CreateCartCheckoutUseCase struct {
	gateway payment.CheckoutGateway
	enabled bool
	logger  logger.Interface
}

func NewCreateCartCheckoutUseCase(gateway payment.CheckoutGateway, enabled bool, logger logger.Interface) *CreateCartCheckoutUseCase {
	return &CreateCartCheckoutUseCase{gateway: gateway, enabled: enabled, logger: logger}
}

type cartItemSummary struct {
	Name    string   `json:"name"`
	Qty     int      `json:"qty"`
	Options []string `json:"options"`
}

func (uc *CreateCartCheckoutUseCase) Execute(ctx context.Context, cmd CreateCartCheckoutCommand) (*CreateCartCheckoutResult, error) {
	if !uc.enabled {
		return nil, apperrors.NewUnavailableError("Les paiements en ligne sont temporairement désactivés.")
	}
	if len(cmd.Items) == 0 {
		return nil, apperrors.NewValidationError("Panier vide")
	}

	lines := make([]payment.CheckoutLine, 0, len(cmd.Items))
	summaries := make([]cartItemSummary, 0, len(cmd.Items))

	for _, item := range cmd.Items {
		formula, ok := catalog.FindFormula(item.FormulaID)
		if !ok {
			return nil, apperrors.NewValidationError("Formule non trouvée", item.FormulaID)
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		unitPrice := formula.Price
		optionNames := make([]string, 0, len(item.OptionIDs))
		for _, optionID := range item.OptionIDs {
			option, ok := formula.Option(optionID)
			if !ok {
				continue
			}
			unitPrice = unitPrice.Add(option.Price)
			optionNames = append(optionNames, option.Name)
		}

		description := "Baptême parapente"
		if len(optionNames) > 0 {
			description += fmt.Sprintf(" (+ %s)", strings.Join(optionNames, ", "))
		}
		description += " - À utiliser sur rendez-vous"

		lines = append(lines, payment.CheckoutLine{
			Name:        "Bon Cadeau - " + formula.Name,
			Description: description,
			UnitAmount:  unitPrice.Mul(decimal.NewFromInt(100)).IntPart(),
			Quantity:    int64(quantity),
		})
		summaries = append(summaries, cartItemSummary{
			Name:    formula.Name,
			Qty:     quantity,
			Options: optionNames,
		})
	}

	itemsJSON, err := json.Marshal(summaries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart summary: %w", err)
	}

	req := &payment.CheckoutRequest{
		Lines:      lines,
		SuccessURL: cmd.Origin + "/reservation/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  cmd.Origin + "/panier",
		Metadata: map[string]string{
			"type":  "bon_cadeau",
			"items": string(itemsJSON),
		},
		SubmitNote: giftSubmitNote,
	}

	url, err := uc.gateway.CreateCheckoutSession(ctx, req)
	if err != nil {
		uc.logger.Errorw("failed to create cart checkout session", "error", err, "items", len(cmd.Items))
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	uc.logger.Infow("gift cart checkout session opened", "items", len(cmd.Items))

	return &CreateCartCheckoutResult{URL: url}, nil
}
