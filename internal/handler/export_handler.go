package handler

import (
	"net/http"
	"strconv"

	"transhub/internal/services"
	"transhub/internal/utils"

	"github.com/gin-gonic/gin"
)

// ExportTranslations handles GET /api/translations/export: one language's
// catalog as a nested JSON document, optionally compressed.
func (s *Server) ExportTranslations(c *gin.Context) {
	result, err := s.ExportService.Export(c.Request.Context(), services.ExportParams{
		Language: c.Query("language"),
		Module:   c.Query("module"),
		TenantID: callerTenantID(c),
		Encoding: c.Query("encoding"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if header := utils.ContentEncodingHeader(result.Encoding); header != "" {
		c.Header("Content-Encoding", header)
	}
	c.Header("X-Translation-Count", strconv.Itoa(result.Count))
	c.Header("Content-Disposition", `attachment; filename="`+result.Language+`.json"`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", result.Payload)
}
