package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"descgate/internal/service"
)

// GateHandler handles validation and gate check endpoints.
type GateHandler struct {
	gateService service.GateService
}

// NewGateHandler creates a new GateHandler.
func NewGateHandler(gateService service.GateService) *GateHandler {
	return &GateHandler{gateService: gateService}
}

// Validate handles POST /api/v1/validate
// Runs both validation layers without touching any persisted state.
func (h *GateHandler) Validate(c *gin.Context) {
	var req struct {
		RawOutput string `json:"raw_output" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "raw_output is required")
		return
	}

	outcome := h.gateService.Validate(req.RawOutput)
	RespondOK(c, outcome)
}

// Check handles POST /api/v1/assets/:id/gate
// Runs a submission through the full gate synchronously.
func (h *GateHandler) Check(c *gin.Context) {
	assetID := c.Param("id")

	var req service.CheckInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "raw_output and asset_record are required")
		return
	}

	rec, err := h.gateService.Check(c.Request.Context(), assetID, req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, rec)
}

// Submit handles POST /api/v1/assets/:id/submissions
// Enqueues a submission for the scan queue worker.
func (h *GateHandler) Submit(c *gin.Context) {
	assetID := c.Param("id")

	var req service.CheckInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "raw_output and asset_record are required")
		return
	}

	rec, err := h.gateService.Submit(c.Request.Context(), assetID, req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, rec)
}

// GetAssetState handles GET /api/v1/assets/:id/state
func (h *GateHandler) GetAssetState(c *gin.Context) {
	assetID := c.Param("id")

	state, err := h.gateService.GetAssetState(c.Request.Context(), assetID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, state)
}
