// Package payment implements the provider ports against Stripe.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"github.com/parapente-jp/flightpass/internal/domain/payment"
	sharedConfig "github.com/parapente-jp/flightpass/internal/shared/config"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
)

// Metadata keys written by the checkout builder and read back by the
// session resolver. They are part of the provider-side contract: sessions
// created by older deployments must keep resolving.
const (
	metaFormulaName   = "formulaName"
	metaOptions       = "options"
	metaCustomerName  = "customerName"
	metaCustomerPhone = "customerPhone"
	metaType          = "type"

	metaTypeGift = "bon_cadeau"

	defaultProduct   = "Vol Parapente"
	defaultBuyerName = "Client"
)

// StripeGateway implements payment.SessionResolver and
// payment.CheckoutGateway against the Stripe API.
type StripeGateway struct {
	api    *client.API
	logger logger.Interface
}

func NewStripeGateway(cfg *sharedConfig.StripeConfig) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &StripeGateway{
		api:    api,
		logger: logger.NewLogger().Named("stripe"),
	}
}

func (g *StripeGateway) Resolve(ctx context.Context, sessionID string) (*payment.SessionInfo, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == 404 {
			return nil, payment.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}

	return SessionInfoFromCheckout(sess), nil
}

// SessionInfoFromCheckout maps a Stripe checkout session onto the resolver
// contract. Also used by the webhook handler, which receives the full
// session object in the event payload.
func SessionInfoFromCheckout(sess *stripe.CheckoutSession) *payment.SessionInfo {
	info := &payment.SessionInfo{
		SessionID:  sess.ID,
		Product:    defaultProduct,
		AddOns:     []string{},
		AmountPaid: decimal.NewFromInt(sess.AmountTotal).Div(decimal.NewFromInt(100)),
		BuyerName:  defaultBuyerName,
	}

	if name := sess.Metadata[metaFormulaName]; name != "" {
		info.Product = name
	}
	if options := sess.Metadata[metaOptions]; options != "" {
		info.AddOns = strings.Split(options, ",")
	}
	if name := sess.Metadata[metaCustomerName]; name != "" {
		info.BuyerName = name
	}
	info.BuyerPhone = sess.Metadata[metaCustomerPhone]
	info.Gift = sess.Metadata[metaType] == metaTypeGift

	if sess.CustomerDetails != nil {
		info.BuyerEmail = sess.CustomerDetails.Email
		if info.BuyerName == defaultBuyerName && sess.CustomerDetails.Name != "" {
			info.BuyerName = sess.CustomerDetails.Name
		}
	}

	return info
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req *payment.CheckoutRequest) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Lines))
	for _, line := range req.Lines {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyEUR)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(line.Name),
					Description: stripe.String(line.Description),
				},
				UnitAmount: stripe.Int64(line.UnitAmount),
			},
			Quantity: stripe.Int64(line.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		Locale:             stripe.String("fr"),
	}
	params.Context = ctx

	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.SubmitNote != "" {
		params.CustomText = &stripe.CheckoutSessionCustomTextParams{
			Submit: &stripe.CheckoutSessionCustomTextSubmitParams{
				Message: stripe.String(req.SubmitNote),
			},
		}
	}

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	g.logger.Infow("checkout session created", "session_id", sess.ID)
	return sess.URL, nil
}
