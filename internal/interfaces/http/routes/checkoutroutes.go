package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/parapente-jp/flightpass/internal/interfaces/http/handlers"
	"github.com/parapente-jp/flightpass/internal/interfaces/http/middleware"
)

// CheckoutRouteConfig holds dependencies for checkout and webhook routes
type CheckoutRouteConfig struct {
	CheckoutHandler *handlers.CheckoutHandler
	WebhookHandler  *handlers.WebhookHandler
	ClosureHandler  *handlers.ClosureHandler
	AdminToken      string
}

// SetupCheckoutRoutes configures payment and closure calendar routes
func SetupCheckoutRoutes(engine *gin.Engine, config *CheckoutRouteConfig) {
	checkout := engine.Group("/api/checkout")
	{
		checkout.POST("", config.CheckoutHandler.CreateCheckout)
		checkout.POST("/cart", config.CheckoutHandler.CreateCartCheckout)
	}

	engine.POST("/api/webhooks/stripe", config.WebhookHandler.HandleStripeEvent)

	engine.GET("/api/closures", config.ClosureHandler.GetClosures)

	adminClosures := engine.Group("/api/closures")
	adminClosures.Use(middleware.AdminAuth(config.AdminToken))
	{
		adminClosures.PUT("", config.ClosureHandler.PutClosures)
	}
}
