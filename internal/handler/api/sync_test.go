//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"desayuno/internal/handler/api"
	resdto "desayuno/internal/handler/dto/response"
	"desayuno/internal/usecase"
	"desayuno/tests/common/httptest"
	usecasemock "desayuno/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SyncHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockSync *usecasemock.MockSyncUseCase
	handler  *api.SyncHandler
	deviceID uuid.UUID
}

func (s *SyncHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockSync = usecasemock.NewMockSyncUseCase(s.mockCtrl)
	s.handler = api.NewSyncHandler(s.mockSync)
	s.deviceID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("device_id", s.deviceID)
		c.Set("cafeteria_id", uuid.New())
		c.Next()
	}
	s.router.POST("/sync", authMiddleware, s.handler.Sync)
}

func (s *SyncHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSyncHandlerSuite(t *testing.T) {
	suite.Run(t, new(SyncHandlerTestSuite))
}

func (s *SyncHandlerTestSuite) TestSync() {
	url := "/sync"
	intent := map[string]any{
		"local_id":        "l-1",
		"voucher_code":    "BRK-A1B2C3D4-001",
		"cafeteria_id":    uuid.New().String(),
		"local_timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	s.Run("success: returns per-item results for the authenticated device", func() {
		ts := time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)
		s.mockSync.EXPECT().SyncBatch(gomock.Any(), s.deviceID, gomock.Len(1)).
			Return([]usecase.SyncItemResult{
				{LocalID: "l-1", Status: usecase.OutcomeSynced, ServerTimestamp: &ts},
			}).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"intents": []any{intent}}, "bearer-token")

		var resp resdto.SyncResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Require().Len(resp.Results, 1)
		s.Equal("l-1", resp.Results[0].LocalID)
		s.Equal(usecase.OutcomeSynced, resp.Results[0].Status)
	})

	s.Run("error: empty batch returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"intents": []any{}}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, usecase.ReasonValidation)
	})

	s.Run("error: intent missing voucher_code returns 400", func() {
		bad := map[string]any{"local_id": "l-2", "cafeteria_id": uuid.New().String(), "local_timestamp": time.Now().UTC().Format(time.RFC3339)}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"intents": []any{bad}}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, usecase.ReasonValidation)
	})

	s.Run("error: unauthenticated returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"intents": []any{intent}}, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
