package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/parapente-jp/flightpass/internal/interfaces/http/handlers"
	"github.com/parapente-jp/flightpass/internal/interfaces/http/middleware"
)

// TicketRouteConfig holds dependencies for ticket routes
type TicketRouteConfig struct {
	TicketHandler *handlers.TicketHandler
	AdminToken    string
}

// SetupTicketRoutes configures the ticket lifecycle routes
func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	tickets := engine.Group("/api/tickets")
	{
		tickets.POST("", config.TicketHandler.IssueTicket)
		tickets.GET("/session/:sessionID", config.TicketHandler.GetTicketBySession)
		tickets.GET("/:id", config.TicketHandler.GetTicket)
		tickets.GET("/:id/check", config.TicketHandler.CheckTicket)
		tickets.POST("/:id/consume", config.TicketHandler.ConsumeTicket)
	}

	admin := engine.Group("/api/admin")
	admin.Use(middleware.AdminAuth(config.AdminToken))
	{
		admin.GET("/tickets", config.TicketHandler.ListTickets)
	}
}
