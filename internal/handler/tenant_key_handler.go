package handler

import (
	app_errors "transhub/internal/errors"
	"transhub/internal/response"

	"github.com/gin-gonic/gin"
)

// CreateTenantKeyRequest defines the access key creation payload.
type CreateTenantKeyRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateTenantKey handles POST /api/tenants/:tenant_id/keys. The plaintext
// key is returned exactly once.
func (s *Server) CreateTenantKey(c *gin.Context) {
	var req CreateTenantKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}

	created, err := s.TenantAuthService.CreateKey(c.Request.Context(), c.Param("tenant_id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, created)
}

// ListTenantKeys handles GET /api/tenants/:tenant_id/keys.
func (s *Server) ListTenantKeys(c *gin.Context) {
	keys, err := s.TenantAuthService.ListKeys(c.Request.Context(), c.Param("tenant_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, keys)
}

// RevokeTenantKey handles DELETE /api/tenant-keys/:id.
func (s *Server) RevokeTenantKey(c *gin.Context) {
	if err := s.TenantAuthService.RevokeKey(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, nil)
}
