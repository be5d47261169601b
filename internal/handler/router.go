package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"desayuno/internal/handler/api"
	"desayuno/internal/handler/middleware"
	"desayuno/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, authHandler *api.AuthHandler, voucherHandler *api.VoucherHandler, syncHandler *api.SyncHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, voucherHandler, syncHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, authHandler *api.AuthHandler, voucherHandler *api.VoucherHandler, syncHandler *api.SyncHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})
		}

		vouchers := apiGroup.Group("/vouchers")
		vouchers.Use(authMiddleware.RequireAuth())
		{
			addRoutes(vouchers, []route{
				{Method: http.MethodPost, Path: "", Handler: voucherHandler.IssueVouchers},
				{Method: http.MethodPost, Path: "/validate", Handler: voucherHandler.ValidateVoucher},
				{Method: http.MethodPost, Path: "/redeem", Handler: voucherHandler.RedeemVoucher},
				{Method: http.MethodPost, Path: "/cancel", Handler: voucherHandler.CancelVoucher},
			})
		}

		stays := apiGroup.Group("/stays")
		stays.Use(authMiddleware.RequireAuth())
		{
			addRoutes(stays, []route{
				{Method: http.MethodGet, Path: "/:stay_id/vouchers", Handler: voucherHandler.GetStayVouchers},
			})
		}

		sync := apiGroup.Group("/sync")
		sync.Use(authMiddleware.RequireAuth())
		{
			addRoutes(sync, []route{
				{Method: http.MethodPost, Path: "", Handler: syncHandler.Sync},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPut:
			g.PUT(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
