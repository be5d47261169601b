package api

import (
	"net/http"

	"desayuno/internal/handler/dto/request"
	resdto "desayuno/internal/handler/dto/response"
	"desayuno/internal/handler/httperr"
	"desayuno/internal/handler/middleware"
	"desayuno/internal/usecase"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	syncUseCase usecase.SyncUseCase
}

func NewSyncHandler(syncUseCase usecase.SyncUseCase) *SyncHandler {
	return &SyncHandler{
		syncUseCase: syncUseCase,
	}
}

// @Summary Sync offline redemptions
// @Description Replay a batch of offline redemption intents; each item resolves independently
// @Tags sync
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.SyncRequest true "Pending intents"
// @Success 200 {object} resdto.SyncResponse
// @Failure 400 {object} httperr.Response
// @Router /sync [post]
func (h *SyncHandler) Sync(c *gin.Context) {
	deviceID, ok := middleware.GetDeviceID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req request.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", usecase.ReasonValidation, nil)
		return
	}

	results := h.syncUseCase.SyncBatch(c.Request.Context(), deviceID, req.ToIntents())
	c.JSON(http.StatusOK, resdto.FromSyncResults(results))
}
