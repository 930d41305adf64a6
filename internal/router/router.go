// Package router wires the HTTP surface of the translation hub.
package router

import (
	"net/http"

	"transhub/internal/handler"
	"transhub/internal/i18n"
	"transhub/internal/middleware"
	"transhub/internal/services"
	"transhub/internal/types"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all middleware and routes registered.
func NewRouter(
	serverHandler *handler.Server,
	configManager types.ConfigManager,
	tenantAuth *services.TenantAuthService,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Register global middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Logger(configManager.GetLogConfig()))
	router.Use(middleware.CORS(configManager.GetCORSConfig()))
	router.Use(middleware.RateLimiter(configManager.GetPerformanceConfig()))
	router.Use(middleware.SecurityHeaders())

	registerSystemRoutes(router, serverHandler)
	registerAPIRoutes(router, serverHandler, configManager, tenantAuth)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	return router
}

// registerSystemRoutes registers system-level routes
func registerSystemRoutes(router *gin.Engine, serverHandler *handler.Server) {
	router.GET("/health", serverHandler.Health)
}

// registerAPIRoutes registers API routes
func registerAPIRoutes(
	router *gin.Engine,
	serverHandler *handler.Server,
	configManager types.ConfigManager,
	tenantAuth *services.TenantAuthService,
) {
	api := router.Group("/api")
	api.Use(i18n.Middleware())
	api.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/translations/export"})))

	// Public routes
	api.GET("/languages", serverHandler.GetLanguages)

	// Protected routes
	protectedAPI := api.Group("")
	protectedAPI.Use(middleware.Auth(configManager.GetAuthConfig(), tenantAuth))
	registerProtectedAPIRoutes(protectedAPI, serverHandler)
}

// registerProtectedAPIRoutes registers protected API routes
func registerProtectedAPIRoutes(api *gin.RouterGroup, serverHandler *handler.Server) {
	translations := api.Group("/translations")
	{
		translations.POST("", serverHandler.CreateTranslation)
		translations.GET("", serverHandler.ListTranslations)
		translations.GET("/resolve", serverHandler.ResolveTranslation)
		translations.GET("/search", serverHandler.SearchTranslations)
		translations.GET("/export", serverHandler.ExportTranslations)
		translations.GET("/history", serverHandler.GetTranslationHistory)
		translations.POST("/bulk-import", middleware.RequestBodySizeLimit(0), serverHandler.BulkImport)
		translations.PUT("/:id", serverHandler.UpdateTranslation)
		translations.PATCH("/:id", serverHandler.UpdateTranslation)
	}

	api.GET("/keys", serverHandler.ListKeys)

	stats := api.Group("/stats")
	{
		stats.GET("", serverHandler.GetStats)
		stats.GET("/missing", serverHandler.GetMissingKeys)
	}

	api.GET("/settings", serverHandler.GetSettings)

	// Admin-only routes
	admin := api.Group("")
	admin.Use(middleware.AdminOnly())
	{
		admin.POST("/keys/register", serverHandler.RegisterKeys)
		admin.POST("/seed", serverHandler.Seed)
		admin.PUT("/settings", serverHandler.UpdateSettings)
		admin.POST("/tenants/:tenant_id/keys", serverHandler.CreateTenantKey)
		admin.GET("/tenants/:tenant_id/keys", serverHandler.ListTenantKeys)
		admin.DELETE("/tenant-keys/:id", serverHandler.RevokeTenantKey)
	}
}
