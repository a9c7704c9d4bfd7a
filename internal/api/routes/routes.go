package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"facility-registry-api-server/config"
	"facility-registry-api-server/internal/api/handlers"
	"facility-registry-api-server/internal/api/middleware"
	"facility-registry-api-server/internal/cache"
	"facility-registry-api-server/internal/export"
	"facility-registry-api-server/internal/service"
	"facility-registry-api-server/internal/socket"
)

// Services bundles the engine services the router depends on.
type Services struct {
	Facilities service.FacilityService
	Boxes      service.BoxService
	Variables  service.VariableService
	Sessions   service.SessionService
	Bulk       service.BulkService
	Reports    service.ReportService
}

// SetupRouter wires handlers, middleware and route groups. Reads are
// public; every mutation sits behind the admin credential check.
func SetupRouter(
	cfg config.Config,
	svcs Services,
	wsHub *socket.Hub,
	readCache *cache.Cache,
	exporter *export.Exporter,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Admin-Key", "X-Request-ID")
	router.Use(cors.New(corsConfig))

	authHandler := &handlers.AuthHandler{Sessions: svcs.Sessions}
	facilityHandler := &handlers.FacilityHandler{Facilities: svcs.Facilities, Cache: readCache, Hub: wsHub}
	boxHandler := &handlers.BoxHandler{Boxes: svcs.Boxes, Cache: readCache, Hub: wsHub}
	variableHandler := &handlers.VariableHandler{Variables: svcs.Variables, Cache: readCache, Hub: wsHub}
	bulkHandler := &handlers.BulkHandler{Bulk: svcs.Bulk, Cache: readCache, Hub: wsHub}
	reportHandler := &handlers.ReportHandler{Reports: svcs.Reports, Exporter: exporter}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, Sessions: svcs.Sessions, Logger: logger}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/extend", authHandler.Extend)
			auth.GET("/validate", authHandler.Validate)
		}

		// Public read surface.
		public := apiV1.Group("/")
		{
			public.GET("/facilities", facilityHandler.List)
			public.GET("/facilities/details", facilityHandler.ListWithDetails)
			public.GET("/facilities/nearby", facilityHandler.Nearby)
			public.GET("/facilities/:id", facilityHandler.GetDetails)
			public.GET("/facilities/:id/boxes", boxHandler.ListByFacility)
			public.GET("/boxes/:id", boxHandler.GetByID)
			public.GET("/boxes/:id/variables", variableHandler.ListByBox)
			public.GET("/variables/:id", variableHandler.GetByID)
			public.GET("/variables/key/:key", variableHandler.GetByKey)
		}

		// Every mutation and operational endpoint requires the admin
		// credential: raw secret or a live session token.
		admin := apiV1.Group("/admin")
		admin.Use(middleware.RequireAdmin(svcs.Sessions))
		{
			facilities := admin.Group("/facilities")
			{
				facilities.POST("", facilityHandler.Create)
				facilities.PUT("/:id", facilityHandler.Update)
				facilities.DELETE("/:id", facilityHandler.Delete)
				facilities.POST("/bulk-import", bulkHandler.Import)
			}

			boxes := admin.Group("/boxes")
			{
				boxes.POST("", boxHandler.Create)
				boxes.PUT("/:id", boxHandler.Update)
				boxes.DELETE("/:id", boxHandler.Delete)
			}

			variables := admin.Group("/variables")
			{
				variables.POST("", variableHandler.Create)
				variables.PUT("/:id", variableHandler.Update)
				variables.DELETE("/:id", variableHandler.Delete)
			}

			admin.GET("/reports/:type", reportHandler.Generate)

			sessions := admin.Group("/sessions")
			{
				sessions.GET("/stats", authHandler.SessionStats)
				sessions.POST("/cleanup", authHandler.CleanupSessions)
			}
		}
	}

	return router
}
