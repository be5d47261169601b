package api

import (
	"errors"
	"net/http"

	reqdto "desayuno/internal/handler/dto/request"
	resdto "desayuno/internal/handler/dto/response"
	"desayuno/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
}

func NewAuthHandler(authUseCase usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

// @Summary Device login
// @Description Authenticate a cafeteria terminal and return a JWT plus the voucher signer public key
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Device credentials"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.authUseCase.Login(c.Request.Context(), req.DeviceID, req.DeviceKey)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid device credentials",
			})
		case errors.Is(err, usecase.ErrDeviceInactive):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Device is deactivated",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromLoginResult(result))
}
