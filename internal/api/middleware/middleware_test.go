package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iyf-showcase/backend/config"
	"iyf-showcase/backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "middleware-test-secret-2026",
		AccessTokenTTL: time.Minute,
	})
}

func okHandler(c *gin.Context) { c.String(http.StatusOK, "ok") }

// ── JWTAuth / RoleAuth ──

func TestJWTAuth(t *testing.T) {
	mgr := newTestJWT()
	adminToken, err := mgr.GenerateAccessToken("admin", "admin")
	require.NoError(t, err)
	viewerToken, err := mgr.GenerateAccessToken("viewer", "viewer")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/admin", JWTAuth(mgr), RoleAuth("admin"), okHandler)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		{"non-admin role", "Bearer " + viewerToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRoleAuth_WithoutJWT(t *testing.T) {
	r := gin.New()
	r.GET("/admin", RoleAuth("admin"), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ── RateLimit ──

type fakeLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (f *fakeLimiter) CheckRateLimit(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allowed, f.err
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name    string
		limiter RateLimiter
		want    int
	}{
		{"nil limiter passes", nil, http.StatusOK},
		{"allowed", &fakeLimiter{allowed: true}, http.StatusOK},
		{"rejected", &fakeLimiter{allowed: false}, http.StatusTooManyRequests},
		{"limiter error passes", &fakeLimiter{err: errors.New("redis down")}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/api/admin/token", RateLimit(tt.limiter, 5, time.Minute), okHandler)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/token", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRateLimit_KeyIncludesRoute(t *testing.T) {
	limiter := &fakeLimiter{allowed: true}
	r := gin.New()
	r.PUT("/api/seasons/:id/current", RateLimit(limiter, 5, time.Minute), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/seasons/2/current", nil))

	require.Len(t, limiter.keys, 1)
	assert.True(t, strings.HasSuffix(limiter.keys[0], ":/api/seasons/:id/current"), limiter.keys[0])
}

// ── RequestID ──

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc-123", w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", requestIDMaxLen+1))
	r.ServeHTTP(w, req)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

// ── CORS / SecurityHeaders ──

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://iyf.example.org/"}))
	r.GET("/api/projects", okHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "https://iyf.example.org")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://iyf.example.org", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/", okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestCORS_AllowAll(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"*"}))
	r.GET("/api/students", okHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	req.Header.Set("Origin", "https://partner.example.com")
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://partner.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

// ── BodyLimit ──

func TestBodyLimit_DeclaredLength(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(16))
	r.POST("/api/admin/token", okHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/token", strings.NewReader(strings.Repeat("x", 64)))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/admin/token", strings.NewReader("{}"))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidRequestID(t *testing.T) {
	assert.True(t, validRequestID("abc-123_x.y"))
	assert.False(t, validRequestID(""))
	assert.False(t, validRequestID("bad id"))
	assert.False(t, validRequestID("line\nbreak"))
}
