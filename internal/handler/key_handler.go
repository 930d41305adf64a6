package handler

import (
	app_errors "transhub/internal/errors"
	"transhub/internal/response"
	"transhub/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterKeysRequest defines the catalog registration payload.
type RegisterKeysRequest struct {
	Keys []services.KeyRegistration `json:"keys" binding:"required"`
}

// RegisterKeys handles POST /api/keys/register. Registration is idempotent:
// known keys are skipped.
func (s *Server) RegisterKeys(c *gin.Context) {
	var req RegisterKeysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}

	result, err := s.KeyRegistryService.Register(c.Request.Context(), req.Keys)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessI18n(c, "keys.registered", result)
}

// ListKeys handles GET /api/keys, optionally narrowed by module.
func (s *Server) ListKeys(c *gin.Context) {
	keys, err := s.KeyRegistryService.List(c.Request.Context(), c.Query("module"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, keys)
}
