package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"descgate/internal/service"
)

// AuthHandler handles token issuing endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Token handles POST /api/v1/auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req service.TokenInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "client_id and client_secret are required")
		return
	}

	token, err := h.authService.IssueToken(req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, token)
}
