package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"transhub/internal/i18n"
	"transhub/internal/models"
	"transhub/internal/services"
	"transhub/internal/types"
)

const testAdminKey = "test-admin-key-0123456789"

func init() {
	gin.SetMode(gin.TestMode)
	if err := i18n.Init(); err != nil {
		panic(err)
	}
}

func setupAuthRouter(t *testing.T) (*gin.Engine, *services.TenantAuthService) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{PrepareStmt: false})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.TenantAccessKey{}))

	tenantAuth := services.NewTenantAuthService(db)

	router := gin.New()
	router.Use(Auth(types.AuthConfig{AdminKey: testAdminKey}, tenantAuth))
	router.GET("/who", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"role":   c.GetString(ContextKeyRole),
			"tenant": c.GetString(ContextKeyTenantID),
			"caller": c.GetString(ContextKeyCallerID),
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, tenantAuth
}

func doRequest(router *gin.Engine, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuth_AdminKey(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := doRequest(router, http.MethodGet, "/who", map[string]string{
		"Authorization": "Bearer " + testAdminKey,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
	assert.Contains(t, w.Body.String(), `"tenant":""`)

	// Admin may act on behalf of a tenant.
	w = doRequest(router, http.MethodGet, "/who", map[string]string{
		"X-Api-Key":   testAdminKey,
		"X-Tenant-ID": "acme",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tenant":"acme"`)
}

func TestAuth_QueryKey(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := doRequest(router, http.MethodGet, "/who?key="+testAdminKey, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestAuth_TenantKey(t *testing.T) {
	router, tenantAuth := setupAuthRouter(t)

	created, err := tenantAuth.CreateKey(context.Background(), "acme", "ci")
	require.NoError(t, err)

	w := doRequest(router, http.MethodGet, "/who", map[string]string{
		"Authorization": "Bearer " + created.Key,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"tenant"`)
	assert.Contains(t, w.Body.String(), `"tenant":"acme"`)
	assert.Contains(t, w.Body.String(), `"caller":"tenant:acme"`)

	// Tenant callers cannot switch tenants via the header.
	w = doRequest(router, http.MethodGet, "/who", map[string]string{
		"Authorization": "Bearer " + created.Key,
		"X-Tenant-ID":   "rival",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tenant":"acme"`)
}

func TestAuth_Rejections(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := doRequest(router, http.MethodGet, "/who", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")

	w = doRequest(router, http.MethodGet, "/who", map[string]string{
		"Authorization": "Bearer wrong-key",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Health stays public.
	w = doRequest(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminOnly(t *testing.T) {
	router, tenantAuth := setupAuthRouter(t)
	created, err := tenantAuth.CreateKey(context.Background(), "acme", "ci")
	require.NoError(t, err)

	admin := router.Group("", AdminOnly())
	admin.GET("/admin-only", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doRequest(router, http.MethodGet, "/admin-only", map[string]string{
		"Authorization": "Bearer " + testAdminKey,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/admin-only", map[string]string{
		"Authorization": "Bearer " + created.Key,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestCORS(t *testing.T) {
	config := types.CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"*"},
	}
	router := gin.New()
	router.Use(CORS(config))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doRequest(router, http.MethodOptions, "/ping", map[string]string{"Origin": "https://a.example.com"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))

	w = doRequest(router, http.MethodGet, "/ping", map[string]string{"Origin": "https://a.example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_CredentialsRequireExplicitOrigin(t *testing.T) {
	config := types.CORSConfig{
		Enabled:          true,
		AllowedOrigins:   []string{"https://app.example.com"},
		AllowedMethods:   []string{"GET"},
		AllowedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
	}
	router := gin.New()
	router.Use(CORS(config))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doRequest(router, http.MethodGet, "/ping", map[string]string{"Origin": "https://app.example.com"})
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))

	w = doRequest(router, http.MethodGet, "/ping", map[string]string{"Origin": "https://evil.example.com"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeaders())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doRequest(router, http.MethodGet, "/ping", nil)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))
}

func TestRequestBodySizeLimit(t *testing.T) {
	router := gin.New()
	router.Use(RequestBodySizeLimit(64))
	router.POST("/import", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(strings.Repeat("x", 128)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/import", strings.NewReader("small"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.GET("/boom", func(c *gin.Context) { panic("exploded") })

	w := doRequest(router, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_SERVER_ERROR")
}
