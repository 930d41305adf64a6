package handler

import (
	"encoding/json"

	app_errors "transhub/internal/errors"
	"transhub/internal/response"
	"transhub/internal/services"

	"github.com/gin-gonic/gin"
)

// BulkImportRequest defines the bulk import payload. Translations may be a
// flat map of dot keys or an arbitrarily nested object; nesting is flattened
// before the merge.
type BulkImportRequest struct {
	Language     string          `json:"language" binding:"required"`
	Module       string          `json:"module"`
	Overwrite    bool            `json:"overwrite"`
	ValidateOnly bool            `json:"validate_only"`
	Translations json.RawMessage `json:"translations" binding:"required"`
}

// BulkImport handles POST /api/translations/bulk-import.
func (s *Server) BulkImport(c *gin.Context) {
	var req BulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}

	flat, err := services.FlattenDocument(req.Translations)
	if err != nil {
		response.Error(c, app_errors.NewValidationError(err.Error()))
		return
	}

	result, err := s.BulkImportService.Import(c.Request.Context(), services.BulkImportParams{
		Language:     req.Language,
		Module:       req.Module,
		TenantID:     callerTenantID(c),
		CallerID:     callerID(c),
		Overwrite:    req.Overwrite,
		ValidateOnly: req.ValidateOnly,
		Translations: flat,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if result.DryRun {
		response.SuccessI18n(c, "import.validated", result)
		return
	}
	response.SuccessI18n(c, "import.completed", result)
}
