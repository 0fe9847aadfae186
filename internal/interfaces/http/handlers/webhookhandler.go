package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"

	"github.com/parapente-jp/flightpass/internal/application/ticket/usecases"
	stripeinfra "github.com/parapente-jp/flightpass/internal/infrastructure/payment"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
	"github.com/parapente-jp/flightpass/internal/shared/utils"
)

// WebhookHandler receives payment provider events. A completed checkout
// issues the ticket eagerly, so it already exists when the buyer lands on
// the success page.
type WebhookHandler struct {
	issueUC       *usecases.IssueTicketUseCase
	webhookSecret string
	logger        logger.Interface
}

func NewWebhookHandler(issueUC *usecases.IssueTicketUseCase, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{
		issueUC:       issueUC,
		webhookSecret: webhookSecret,
		logger:        logger.NewLogger().Named("webhook"),
	}
}

func (h *WebhookHandler) HandleStripeEvent(c *gin.Context) {
	if h.webhookSecret == "" {
		utils.ErrorResponse(c, http.StatusInternalServerError, "webhook secret is not configured")
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		h.logger.Warnw("webhook signature verification failed", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid signature")
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		h.handleCheckoutCompleted(c, event)
	case "checkout.session.expired":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err == nil {
			h.logger.Infow("checkout session expired", "session_id", sess.ID)
		}
	default:
		h.logger.Debugw("unhandled event type", "type", event.Type)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *WebhookHandler) handleCheckoutCompleted(c *gin.Context, event stripe.Event) {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		h.logger.Errorw("failed to decode checkout session from event", "error", err)
		return
	}

	info := stripeinfra.SessionInfoFromCheckout(&sess)

	// The full session rides in the event, so issuance needs no provider
	// round-trip. A failure here is logged, not returned: the success page
	// will issue lazily as a fallback.
	result, err := h.issueUC.Execute(c.Request.Context(), usecases.IssueTicketCommand{
		SessionID: sess.ID,
		Session:   info,
	})
	if err != nil {
		h.logger.Errorw("failed to issue ticket from webhook", "error", err, "session_id", sess.ID)
		return
	}

	h.logger.Infow("payment confirmed",
		"session_id", sess.ID,
		"ticket_id", result.Ticket.ID(),
		"reused", result.Reused,
		"product", info.Product,
		"amount", info.AmountPaid,
	)
}
