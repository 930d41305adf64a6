// Package middleware provides HTTP middleware for the application
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	app_errors "transhub/internal/errors"
	"transhub/internal/response"
	"transhub/internal/services"
	"transhub/internal/types"
	"transhub/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Context keys set by the auth middleware.
const (
	ContextKeyRole     = "authRole"
	ContextKeyTenantID = "tenantID"
	ContextKeyCallerID = "callerID"
)

// Auth roles.
const (
	RoleAdmin  = "admin"
	RoleTenant = "tenant"
)

// Logger creates a request logging middleware.
func Logger(config types.LogConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		// Process request first, so auth middleware can sanitize sensitive params
		c.Next()

		latency := time.Since(start)
		method := c.Request.Method
		statusCode := c.Writer.Status()

		// Sanitize URL to prevent auth keys from appearing in logs
		fullPath := utils.SanitizeURLForLog(c.Request.URL)

		tenantInfo := ""
		if tenantID := c.GetString(ContextKeyTenantID); tenantID != "" {
			tenantInfo = " - Tenant[" + tenantID + "]"
		}

		// Filter health check logs to reduce noise
		if isMonitoringEndpoint(path) {
			if statusCode >= 400 {
				logrus.Warnf("%s %s - %d - %v", method, fullPath, statusCode, latency)
			}
			return
		}

		if statusCode >= 500 {
			logrus.Errorf("%s %s - %d - %v%s", method, fullPath, statusCode, latency, tenantInfo)
		} else if statusCode >= 400 {
			logrus.Warnf("%s %s - %d - %v%s", method, fullPath, statusCode, latency, tenantInfo)
		} else {
			logrus.Infof("%s %s - %d - %v%s", method, fullPath, statusCode, latency, tenantInfo)
		}
	}
}

// CORS creates a CORS middleware with efficient preflight handling
func CORS(config types.CORSConfig) gin.HandlerFunc {
	allowedMethods := strings.Join(config.AllowedMethods, ", ")
	allowedHeaders := strings.Join(config.AllowedHeaders, ", ")

	allowedOriginsMap := make(map[string]bool, len(config.AllowedOrigins))
	hasWildcard := false
	for _, origin := range config.AllowedOrigins {
		if origin == "*" {
			hasWildcard = true
		} else {
			allowedOriginsMap[origin] = true
		}
	}
	// When credentials are allowed, the explicit allowlist is still needed for
	// origin validation.
	if hasWildcard && !config.AllowCredentials {
		allowedOriginsMap = nil
	}
	if config.AllowCredentials && len(config.AllowedOrigins) == 1 && config.AllowedOrigins[0] == "*" {
		logrus.Warn("CORS configuration uses AllowedOrigins=['*'] with AllowCredentials=true; this blocks all credentialed CORS requests. Configure explicit origins instead.")
	}

	return func(c *gin.Context) {
		if !config.Enabled {
			c.Next()
			return
		}

		origin := c.Request.Header.Get("Origin")

		if c.Request.Method == "OPTIONS" {
			if isOriginAllowed(origin, hasWildcard, config.AllowCredentials, allowedOriginsMap) {
				setAllowOriginHeader(c, origin, hasWildcard, config.AllowCredentials)
				c.Header("Access-Control-Allow-Methods", allowedMethods)
				c.Header("Access-Control-Allow-Headers", allowedHeaders)
				if config.AllowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Max-Age", "86400")
			}
			c.AbortWithStatus(204)
			return
		}

		if isOriginAllowed(origin, hasWildcard, config.AllowCredentials, allowedOriginsMap) {
			setAllowOriginHeader(c, origin, hasWildcard, config.AllowCredentials)
			c.Header("Access-Control-Allow-Methods", allowedMethods)
			c.Header("Access-Control-Allow-Headers", allowedHeaders)
			if config.AllowCredentials {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		}

		c.Next()
	}
}

func isOriginAllowed(origin string, hasWildcard, allowCredentials bool, allowedOriginsMap map[string]bool) bool {
	if hasWildcard && !allowCredentials {
		return true
	}
	return allowedOriginsMap[origin]
}

func setAllowOriginHeader(c *gin.Context, origin string, hasWildcard, allowCredentials bool) {
	if hasWildcard && !allowCredentials {
		c.Header("Access-Control-Allow-Origin", "*")
	} else {
		c.Header("Access-Control-Allow-Origin", origin)
		addVaryOriginHeader(c)
	}
}

func addVaryOriginHeader(c *gin.Context) {
	vary := c.Writer.Header().Get("Vary")
	if vary == "" {
		c.Header("Vary", "Origin")
		return
	}
	for _, h := range strings.Split(vary, ",") {
		if strings.TrimSpace(h) == "Origin" {
			return
		}
	}
	c.Header("Vary", vary+", Origin")
}

// Auth authenticates requests as either the admin key or a tenant access
// key. Admin callers may act on behalf of a tenant via the X-Tenant-ID
// header; tenant callers are pinned to the tenant their key belongs to.
func Auth(authConfig types.AuthConfig, tenantAuth *services.TenantAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if isMonitoringEndpoint(path) {
			c.Next()
			return
		}

		key := extractAuthKey(c)
		if key == "" {
			response.ErrorI18nFromAPIError(c, app_errors.ErrUnauthorized, "auth.key_required")
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(authConfig.AdminKey)) == 1 {
			c.Set(ContextKeyRole, RoleAdmin)
			c.Set(ContextKeyCallerID, "admin")
			if tenantID := c.GetHeader("X-Tenant-ID"); tenantID != "" {
				c.Set(ContextKeyTenantID, tenantID)
			}
			c.Next()
			return
		}

		tenantID, err := tenantAuth.Authenticate(c.Request.Context(), key)
		if err != nil {
			response.ErrorI18nFromAPIError(c, app_errors.ErrUnauthorized, "auth.invalid_key")
			c.Abort()
			return
		}

		c.Set(ContextKeyRole, RoleTenant)
		c.Set(ContextKeyTenantID, tenantID)
		c.Set(ContextKeyCallerID, "tenant:"+tenantID)
		c.Next()
	}
}

// AdminOnly rejects tenant-authenticated callers.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextKeyRole) != RoleAdmin {
			response.ErrorI18nFromAPIError(c, app_errors.ErrForbidden, "auth.admin_only")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Recovery creates a recovery middleware with custom error handling
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logrus.Errorf("Panic recovered: %v", recovered)
		response.Error(c, app_errors.ErrInternalServer)
		c.Abort()
	})
}

// RateLimiter creates a simple rate limiting middleware
func RateLimiter(config types.PerformanceConfig) gin.HandlerFunc {
	// Simple semaphore-based rate limiting
	semaphore := make(chan struct{}, config.MaxConcurrentRequests)

	return func(c *gin.Context) {
		select {
		case semaphore <- struct{}{}:
			defer func() { <-semaphore }()
			c.Next()
		default:
			response.Error(c, app_errors.NewAPIError(app_errors.ErrInternalServer, "Too many concurrent requests"))
			c.Abort()
		}
	}
}

// ErrorHandler creates an error handling middleware
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			if apiErr, ok := err.(*app_errors.APIError); ok {
				response.Error(c, apiErr)
				return
			}

			logrus.Errorf("Unhandled error: %v", err)
			response.Error(c, app_errors.ErrInternalServer)
		}
	}
}

// SecurityHeaders creates a middleware to add security-related headers.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("X-Frame-Options", "SAMEORIGIN")
		c.Next()
	}
}

// RequestBodySizeLimit creates a middleware to limit request body size.
// Protects against memory exhaustion from oversized bulk import payloads.
func RequestBodySizeLimit(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = 10 << 20 // 10MB default
	}

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes && c.Request.ContentLength != -1 {
			logrus.WithFields(logrus.Fields{
				"path":           c.Request.URL.Path,
				"content_length": c.Request.ContentLength,
				"max_bytes":      maxBytes,
			}).Warn("Request body size exceeds limit")
			c.AbortWithStatus(http.StatusRequestEntityTooLarge)
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// isMonitoringEndpoint checks if the path is a monitoring endpoint
func isMonitoringEndpoint(path string) bool {
	return path == "/health"
}

// extractAuthKey extracts a auth key.
func extractAuthKey(c *gin.Context) string {
	// Query key
	if key := c.Query("key"); key != "" {
		query := c.Request.URL.Query()
		query.Del("key")
		c.Request.URL.RawQuery = query.Encode()
		return key
	}

	// Bearer token
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		const bearerPrefix = "Bearer "
		if strings.HasPrefix(authHeader, bearerPrefix) {
			return authHeader[len(bearerPrefix):]
		}
	}

	// X-Api-Key
	if key := c.GetHeader("X-Api-Key"); key != "" {
		return key
	}

	return ""
}
