//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	resdto "desayuno/internal/handler/dto/response"
	"desayuno/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// LoginDevice authenticates a seeded terminal and returns its JWT.
func LoginDevice(t *testing.T, router *gin.Engine, deviceID uuid.UUID, deviceKey string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		map[string]any{"device_id": deviceID.String(), "device_key": deviceKey}, "")
	require.Equal(t, http.StatusOK, w.Code, "Device login failed: %s", w.Body.String())

	var resp resdto.LoginResponse
	httptest.DecodeResponseBody(t, w.Body, &resp)
	require.NotEmpty(t, resp.Token, "Login response should carry a token")
	return resp.Token
}
