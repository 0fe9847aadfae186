package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parapente-jp/flightpass/internal/application/ticket/dto"
	"github.com/parapente-jp/flightpass/internal/application/ticket/usecases"
	apperrors "github.com/parapente-jp/flightpass/internal/shared/errors"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
	"github.com/parapente-jp/flightpass/internal/shared/utils"
)

type TicketHandler struct {
	issueUC        *usecases.IssueTicketUseCase
	getUC          *usecases.GetTicketUseCase
	getBySessionUC *usecases.GetTicketBySessionUseCase
	checkUC        *usecases.CheckTicketUseCase
	consumeUC      *usecases.ConsumeTicketUseCase
	listUC         *usecases.ListTicketsUseCase
	logger         logger.Interface
}

func NewTicketHandler(
	issueUC *usecases.IssueTicketUseCase,
	getUC *usecases.GetTicketUseCase,
	getBySessionUC *usecases.GetTicketBySessionUseCase,
	checkUC *usecases.CheckTicketUseCase,
	consumeUC *usecases.ConsumeTicketUseCase,
	listUC *usecases.ListTicketsUseCase,
) *TicketHandler {
	return &TicketHandler{
		issueUC:        issueUC,
		getUC:          getUC,
		getBySessionUC: getBySessionUC,
		checkUC:        checkUC,
		consumeUC:      consumeUC,
		listUC:         listUC,
		logger:         logger.NewLogger(),
	}
}

type IssueTicketRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// CheckTicketResponse is the verdict payload for both check and consume.
type CheckTicketResponse struct {
	Valid   bool           `json:"valid"`
	Message string         `json:"message"`
	Ticket  *dto.TicketDTO `json:"ticket,omitempty"`
}

// IssueTicket creates (or returns) the ticket for a paid session.
func (h *TicketHandler) IssueTicket(c *gin.Context) {
	var req IssueTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for issue ticket", "error", err)
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("session_id is required"))
		return
	}

	result, err := h.issueUC.Execute(c.Request.Context(), usecases.IssueTicketCommand{SessionID: req.SessionID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Reused {
		utils.SuccessResponse(c, http.StatusOK, "", dto.ToTicketDTO(result.Ticket))
		return
	}
	utils.CreatedResponse(c, dto.ToTicketDTO(result.Ticket))
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetTicketCommand{TicketID: c.Param("id")})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToTicketDTO(result))
}

func (h *TicketHandler) GetTicketBySession(c *gin.Context) {
	result, err := h.getBySessionUC.Execute(c.Request.Context(), usecases.GetTicketBySessionCommand{
		SessionID: c.Param("sessionID"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToTicketDTO(result))
}

// CheckTicket reports whether a ticket could be used, without using it.
func (h *TicketHandler) CheckTicket(c *gin.Context) {
	result, err := h.checkUC.Execute(c.Request.Context(), usecases.CheckTicketCommand{TicketID: c.Param("id")})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CheckTicketResponse{
		Valid:   result.Valid,
		Message: result.Message,
		Ticket:  dto.ToTicketDTO(result.Ticket),
	})
}

// ConsumeTicket marks a ticket as used. An invalid ticket is a 200 with
// valid=false: the scan desk needs the verdict, not an error page.
func (h *TicketHandler) ConsumeTicket(c *gin.Context) {
	result, err := h.consumeUC.Execute(c.Request.Context(), usecases.ConsumeTicketCommand{TicketID: c.Param("id")})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CheckTicketResponse{
		Valid:   result.Consumed,
		Message: result.Message,
		Ticket:  dto.ToTicketDTO(result.Ticket),
	})
}

func (h *TicketHandler) ListTickets(c *gin.Context) {
	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListTicketsCommand{
		Status: c.Query("status"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToTicketDTOs(result))
}
