// Package handler contains the HTTP handlers of the translation hub API.
package handler

import (
	"transhub/internal/config"
	"transhub/internal/services"
	"transhub/internal/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/dig"
	"gorm.io/gorm"
)

// Server aggregates the dependencies the HTTP handlers need.
type Server struct {
	DB                 *gorm.DB
	Config             types.ConfigManager
	SettingsManager    *config.SystemSettingsManager
	TranslationService *services.TranslationService
	BulkImportService  *services.BulkImportService
	SearchService      *services.SearchService
	StatsService       *services.StatsService
	ExportService      *services.ExportService
	KeyRegistryService *services.KeyRegistryService
	SeedService        *services.SeedService
	TenantAuthService  *services.TenantAuthService
}

// ServerParams defines the dependencies for the API server.
type ServerParams struct {
	dig.In
	DB                 *gorm.DB
	Config             types.ConfigManager
	SettingsManager    *config.SystemSettingsManager
	TranslationService *services.TranslationService
	BulkImportService  *services.BulkImportService
	SearchService      *services.SearchService
	StatsService       *services.StatsService
	ExportService      *services.ExportService
	KeyRegistryService *services.KeyRegistryService
	SeedService        *services.SeedService
	TenantAuthService  *services.TenantAuthService
}

// NewServer creates a new API server instance.
func NewServer(params ServerParams) *Server {
	return &Server{
		DB:                 params.DB,
		Config:             params.Config,
		SettingsManager:    params.SettingsManager,
		TranslationService: params.TranslationService,
		BulkImportService:  params.BulkImportService,
		SearchService:      params.SearchService,
		StatsService:       params.StatsService,
		ExportService:      params.ExportService,
		KeyRegistryService: params.KeyRegistryService,
		SeedService:        params.SeedService,
		TenantAuthService:  params.TenantAuthService,
	}
}

// callerTenantID returns the tenant the request acts for: the key's tenant
// for tenant callers, the X-Tenant-ID header (already validated by the auth
// middleware) for admin callers, empty for tenant-less admin requests.
func callerTenantID(c *gin.Context) string {
	return c.GetString("tenantID")
}

// callerID identifies the actor for audit attribution.
func callerID(c *gin.Context) string {
	if id := c.GetString("callerID"); id != "" {
		return id
	}
	return "anonymous"
}

// isAdmin reports whether the request authenticated with the admin key.
func isAdmin(c *gin.Context) bool {
	return c.GetString("authRole") == "admin"
}
