// Package http wires the gin engine: middleware, routes, health and
// metrics endpoints.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/parapente-jp/flightpass/internal/infrastructure/config"
	"github.com/parapente-jp/flightpass/internal/interfaces/http/handlers"
	"github.com/parapente-jp/flightpass/internal/interfaces/http/middleware"
	"github.com/parapente-jp/flightpass/internal/interfaces/http/routes"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
)

type Router struct {
	engine          *gin.Engine
	cfg             *config.Config
	ticketHandler   *handlers.TicketHandler
	checkoutHandler *handlers.CheckoutHandler
	webhookHandler  *handlers.WebhookHandler
	closureHandler  *handlers.ClosureHandler
	logger          logger.Interface
}

func NewRouter(
	cfg *config.Config,
	ticketHandler *handlers.TicketHandler,
	checkoutHandler *handlers.CheckoutHandler,
	webhookHandler *handlers.WebhookHandler,
	closureHandler *handlers.ClosureHandler,
	log logger.Interface,
) *Router {
	return &Router{
		engine:          gin.New(),
		cfg:             cfg,
		ticketHandler:   ticketHandler,
		checkoutHandler: checkoutHandler,
		webhookHandler:  webhookHandler,
		closureHandler:  closureHandler,
		logger:          log,
	}
}

func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger(r.logger))
	if len(r.cfg.Server.AllowedOrigins) > 0 {
		r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	}

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler: r.ticketHandler,
		AdminToken:    r.cfg.Admin.Token,
	})

	routes.SetupCheckoutRoutes(r.engine, &routes.CheckoutRouteConfig{
		CheckoutHandler: r.checkoutHandler,
		WebhookHandler:  r.webhookHandler,
		ClosureHandler:  r.closureHandler,
		AdminToken:      r.cfg.Admin.Token,
	})
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
