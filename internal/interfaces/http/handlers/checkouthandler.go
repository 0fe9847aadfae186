package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parapente-jp/flightpass/internal/application/checkout/usecases"
	apperrors "github.com/parapente-jp/flightpass/internal/shared/errors"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
	"github.com/parapente-jp/flightpass/internal/shared/utils"
)

type CheckoutHandler struct {
	createCheckoutUC *usecases.CreateCheckoutUseCase
	createCartUC     *usecases.CreateCartCheckoutUseCase
	// baseURL is the fallback origin for redirect URLs when the request
	// carries no Origin header.
	baseURL string
	logger  logger.Interface
}

func NewCheckoutHandler(
	createCheckoutUC *usecases.CreateCheckoutUseCase,
	createCartUC *usecases.CreateCartCheckoutUseCase,
	baseURL string,
) *CheckoutHandler {
	return &CheckoutHandler{
		createCheckoutUC: createCheckoutUC,
		createCartUC:     createCartUC,
		baseURL:          baseURL,
		logger:           logger.NewLogger(),
	}
}

type CreateCheckoutRequest struct {
	FormulaID     string   `json:"formulaId" binding:"required"`
	Options       []string `json:"options"`
	CustomerName  string   `json:"customerName" binding:"required"`
	CustomerEmail string   `json:"customerEmail" binding:"required,email"`
	CustomerPhone string   `json:"customerPhone"`
	Date          string   `json:"date"`
	Weight        int      `json:"weight"`
	Participants  int      `json:"participants"`
}

type CartItemRequest struct {
	FormulaID string   `json:"formulaId" binding:"required"`
	Options   []string `json:"options"`
	Quantity  int      `json:"quantity"`
}

type CreateCartCheckoutRequest struct {
	Items []CartItemRequest `json:"items" binding:"required"`
}

type CheckoutURLResponse struct {
	URL string `json:"url"`
}

// CreateCheckout opens a payment session for a dated reservation.
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	var req CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for checkout", "error", err)
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("invalid checkout request"))
		return
	}

	result, err := h.createCheckoutUC.Execute(c.Request.Context(), usecases.CreateCheckoutCommand{
		FormulaID:     req.FormulaID,
		OptionIDs:     req.Options,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Date:          req.Date,
		Weight:        req.Weight,
		Participants:  req.Participants,
		Origin:        h.origin(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CheckoutURLResponse{URL: result.URL})
}

// CreateCartCheckout opens a payment session for a basket of gift vouchers.
func (h *CheckoutHandler) CreateCartCheckout(c *gin.Context) {
	var req CreateCartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for cart checkout", "error", err)
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("invalid cart request"))
		return
	}

	items := make([]usecases.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecases.CartItem{
			FormulaID: item.FormulaID,
			OptionIDs: item.Options,
			Quantity:  item.Quantity,
		})
	}

	result, err := h.createCartUC.Execute(c.Request.Context(), usecases.CreateCartCheckoutCommand{
		Items:  items,
		Origin: h.origin(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CheckoutURLResponse{URL: result.URL})
}

func (h *CheckoutHandler) origin(c *gin.Context) string {
	if origin := c.GetHeader("Origin"); origin != "" {
		return origin
	}
	return h.baseURL
}
