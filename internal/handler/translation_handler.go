package handler

import (
	app_errors "transhub/internal/errors"
	"transhub/internal/models"
	"transhub/internal/response"
	"transhub/internal/services"

	"github.com/gin-gonic/gin"
)

// CreateTranslationRequest defines the payload for creating a translation.
type CreateTranslationRequest struct {
	Key            string `json:"key" binding:"required"`
	Language       string `json:"language" binding:"required"`
	Value          string `json:"value"`
	Module         string `json:"module"`
	Context        string `json:"context"`
	IsGlobal       *bool  `json:"is_global"`
	IsCustomizable *bool  `json:"is_customizable"`
}

// CreateTranslation handles POST /api/translations. Tenant callers always
// write tenant-scoped rows; admin callers write global rows unless they
// target a tenant explicitly.
func (s *Server) CreateTranslation(c *gin.Context) {
	var req CreateTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}

	params := services.CreateTranslationParams{
		Key:            req.Key,
		Language:       req.Language,
		Value:          req.Value,
		Module:         req.Module,
		Context:        req.Context,
		IsCustomizable: true,
		CallerID:       callerID(c),
		TenantID:       callerTenantID(c),
	}
	if req.IsCustomizable != nil {
		params.IsCustomizable = *req.IsCustomizable
	}
	if isAdmin(c) {
		params.IsGlobal = req.IsGlobal == nil || *req.IsGlobal
		if params.IsGlobal {
			params.TenantID = ""
		}
	}

	translation, err := s.TranslationService.Create(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessI18n(c, "translation.created", translation)
}

// UpdateTranslationRequest defines the partial-update payload.
type UpdateTranslationRequest struct {
	Value          *string `json:"value"`
	Context        *string `json:"context"`
	IsCustomizable *bool   `json:"is_customizable"`
}

// UpdateTranslation handles PUT and PATCH /api/translations/:id.
func (s *Server) UpdateTranslation(c *gin.Context) {
	var req UpdateTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	if req.Value == nil && req.Context == nil && req.IsCustomizable == nil {
		response.Error(c, app_errors.NewValidationError("no updatable fields in request"))
		return
	}

	params := services.UpdateTranslationParams{
		ID:             c.Param("id"),
		Value:          req.Value,
		Context:        req.Context,
		CallerID:       callerID(c),
		TenantID:       callerTenantID(c),
	}
	if isAdmin(c) {
		// Admin may update rows of any scope.
		params.TenantID = ""
		params.IsCustomizable = req.IsCustomizable
	}

	translation, err := s.TranslationService.Update(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessI18n(c, "translation.updated", translation)
}

// ListTranslations handles GET /api/translations?language=xx: all global rows
// of a language plus the caller tenant's overrides.
func (s *Server) ListTranslations(c *gin.Context) {
	language := c.Query("language")
	if language == "" {
		language = s.SettingsManager.GetSettings().DefaultLanguage
	}

	translations, err := s.TranslationService.ListByLanguage(c.Request.Context(), language, callerTenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, translations)
}

// ResolveTranslation handles GET /api/translations/resolve. It walks the
// override hierarchy and always returns a displayable value.
func (s *Server) ResolveTranslation(c *gin.Context) {
	key := c.Query("key")
	language := c.Query("language")
	if language == "" {
		language = s.SettingsManager.GetSettings().DefaultLanguage
	}

	result, err := s.TranslationService.Resolve(c.Request.Context(), key, language, callerTenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}

// GetTranslationHistory handles GET /api/translations/history?key=xx with the
// standard pagination envelope, newest first.
func (s *Server) GetTranslationHistory(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		response.Error(c, app_errors.NewValidationError("key query parameter is required"))
		return
	}

	query := s.DB.Model(&models.TranslationAudit{}).
		Where("translation_key = ?", key).
		Order("changed_at desc")
	if !isAdmin(c) {
		query = query.Where("(tenant_id = '' OR tenant_id = ?)", callerTenantID(c))
	}

	var entries []models.TranslationAudit
	page, err := response.Paginate(c, query, &entries)
	if err != nil {
		response.Error(c, app_errors.ParseDBError(err))
		return
	}
	response.Success(c, page)
}

// respondError maps service errors to the response envelope.
func respondError(c *gin.Context, err error) {
	if apiErr, ok := err.(*app_errors.APIError); ok {
		response.Error(c, apiErr)
		return
	}
	response.Error(c, app_errors.ParseDBError(err))
}
