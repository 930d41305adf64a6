package handler

import (
	"strconv"

	"transhub/internal/response"
	"transhub/internal/services"

	"github.com/gin-gonic/gin"
)

// SearchTranslations handles GET /api/translations/search. Matches are
// substring matches over key and value, restricted to rows the caller may
// see.
func (s *Server) SearchTranslations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	includeGlobal, _ := strconv.ParseBool(c.DefaultQuery("include_global", "false"))
	includeTenant, _ := strconv.ParseBool(c.DefaultQuery("include_tenant", "false"))

	result, err := s.SearchService.Search(c.Request.Context(), services.SearchParams{
		Query:         c.Query("q"),
		Language:      c.Query("language"),
		Module:        c.Query("module"),
		TenantID:      callerTenantID(c),
		IncludeGlobal: includeGlobal,
		IncludeTenant: includeTenant,
		Page:          page,
		PageSize:      pageSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}
