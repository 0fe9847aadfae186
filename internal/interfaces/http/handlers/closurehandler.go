package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parapente-jp/flightpass/internal/infrastructure/closures"
	"github.com/parapente-jp/flightpass/internal/shared/logger"
	"github.com/parapente-jp/flightpass/internal/shared/utils"
)

// ClosureHandler serves the closure calendar. The calendar is an opaque
// JSON object owned by the admin frontend; the API only guarantees it is
// an object and stores it wholesale.
type ClosureHandler struct {
	store  *closures.Store
	logger logger.Interface
}

func NewClosureHandler(store *closures.Store) *ClosureHandler {
	return &ClosureHandler{
		store:  store,
		logger: logger.NewLogger(),
	}
}

func (h *ClosureHandler) GetClosures(c *gin.Context) {
	doc, err := h.store.Load(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to load closures", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to load closures")
		return
	}

	c.Data(http.StatusOK, "application/json", doc)
}

func (h *ClosureHandler) PutClosures(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := h.store.Save(c.Request.Context(), json.RawMessage(body)); err != nil {
		h.logger.Warnw("rejected closures update", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "closures document must be a JSON object")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
