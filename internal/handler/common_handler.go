package handler

import (
	"net/http"
	"time"

	"transhub/internal/models"
	"transhub/internal/response"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// Health handles the GET /health liveness probe.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"uptime": time.Since(startTime).Round(time.Second).String(),
	})
}

// GetLanguages handles GET /api/languages: the supported language set and
// the configured default. Public, no auth required.
func (s *Server) GetLanguages(c *gin.Context) {
	response.Success(c, gin.H{
		"languages": models.SupportedLanguages,
		"default":   s.SettingsManager.GetSettings().DefaultLanguage,
	})
}

// Seed handles POST /api/seed: installs the baseline catalog. Idempotent.
func (s *Server) Seed(c *gin.Context) {
	result, err := s.SeedService.Seed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessI18n(c, "seed.completed", result)
}
