package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parapente-jp/flightpass/internal/application/checkout/usecases"
	"github.com/parapente-jp/flightpass/internal/domain/payment"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
)

type captureGateway struct {
	req *payment.CheckoutRequest
}

func (g *captureGateway) CreateCheckoutSession(_ context.Context, req *payment.CheckoutRequest) (string, error) {
	g.req = req
	return "https://pay.example.com/cs_1", nil
}

func newCheckoutTestRouter(gateway payment.CheckoutGateway, enabled bool, baseURL string) *gin.Engine {
	log := logger.NewLogger()
	handler := NewCheckoutHandler(
		usecases.NewCreateCheckoutUseCase(gateway, enabled, log),
		usecases.NewCreateCartCheckoutUseCase(gateway, enabled, log),
		baseURL,
	)

	engine := gin.New()
	engine.POST("/api/checkout", handler.CreateCheckout)
	engine.POST("/api/checkout/cart", handler.CreateCartCheckout)
	return engine
}

func TestCheckoutHandler_CreateCheckout(t *testing.T) {
	gateway := &captureGateway{}
	engine := newCheckoutTestRouter(gateway, true, "https://parapente.example.com")

	w := doJSON(t, engine, http.MethodPost, "/api/checkout", gin.H{
		"formulaId":     "decouverte-ete",
		"options":       []string{"photo-video"},
		"customerName":  "A. Dupont",
		"customerEmail": "a.dupont@example.com",
		"participants":  1,
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp CheckoutURLResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://pay.example.com/cs_1", resp.URL)

	require.NotNil(t, gateway.req)
	// No Origin header: redirect URLs fall back to the configured base URL.
	assert.Equal(t, "https://parapente.example.com/reservation/cancel", gateway.req.CancelURL)
}

func TestCheckoutHandler_OriginHeaderWins(t *testing.T) {
	gateway := &captureGateway{}
	engine := newCheckoutTestRouter(gateway, true, "https://parapente.example.com")

	w := doJSON(t, engine, http.MethodPost, "/api/checkout", gin.H{
		"formulaId":     "balade",
		"customerName":  "B. Martin",
		"customerEmail": "b.martin@example.com",
	}, map[string]string{"Origin": "https://staging.example.com"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://staging.example.com/reservation/cancel", gateway.req.CancelURL)
}

func TestCheckoutHandler_InvalidBody(t *testing.T) {
	engine := newCheckoutTestRouter(&captureGateway{}, true, "")

	w := doJSON(t, engine, http.MethodPost, "/api/checkout", gin.H{"formulaId": "balade"}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutHandler_PaymentsDisabled(t *testing.T) {
	engine := newCheckoutTestRouter(&captureGateway{}, false, "")

	w := doJSON(t, engine, http.MethodPost, "/api/checkout", gin.H{
		"formulaId":     "balade",
		"customerName":  "B. Martin",
		"customerEmail": "b.martin@example.com",
	}, nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestCheckoutHandler_CartCheckout(t *testing.T) {
	gateway := &captureGateway{}
	engine := newCheckoutTestRouter(gateway, true, "https://parapente.example.com")

	w := doJSON(t, engine, http.MethodPost, "/api/checkout/cart", gin.H{
		"items": []gin.H{
			{"formulaId": "ascendances", "quantity": 2},
		},
	}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, gateway.req.Lines, 1)
	assert.Equal(t, int64(2), gateway.req.Lines[0].Quantity)
	assert.Equal(t, "bon_cadeau", gateway.req.Metadata["type"])
	assert.Equal(t, "https://parapente.example.com/panier", gateway.req.CancelURL)
}
