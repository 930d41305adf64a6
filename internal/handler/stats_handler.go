package handler

import (
	"strconv"

	"transhub/internal/response"
	"transhub/internal/services"

	"github.com/gin-gonic/gin"
)

// GetStats handles GET /api/stats: the completeness matrix per language and
// module against the registered key catalog. The matrix can be narrowed with
// language= and module=, and the per-module breakdown switched off with
// include_module_breakdown=false.
func (s *Server) GetStats(c *gin.Context) {
	includeBreakdown, err := strconv.ParseBool(c.DefaultQuery("include_module_breakdown", "true"))
	if err != nil {
		includeBreakdown = true
	}

	report, err := s.StatsService.GetStats(c.Request.Context(), services.StatsParams{
		Language:               c.Query("language"),
		Module:                 c.Query("module"),
		TenantID:               callerTenantID(c),
		IncludeModuleBreakdown: includeBreakdown,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, report)
}

// GetMissingKeys handles GET /api/stats/missing?language=xx: registered keys
// without a translation for the language, grouped by module and ranked.
func (s *Server) GetMissingKeys(c *gin.Context) {
	report, err := s.StatsService.GetMissingKeys(
		c.Request.Context(),
		c.Query("language"),
		c.Query("module"),
		callerTenantID(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, report)
}
