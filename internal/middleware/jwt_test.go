package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloxbus/fleet-inventory/internal/utils"
)

const testSecret = "test-secret"

func protectedEcho(secret string, roles ...string) *echo.Echo {
	e := echo.New()
	g := e.Group("/v1", JWTAuth(secret))
	if len(roles) > 0 {
		g.Use(RequireRole(roles...))
	}
	g.GET("/me", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"role": c.Get("role")})
	})
	return e
}

func TestJWTAuth_MissingToken(t *testing.T) {
	e := protectedEcho(testSecret)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing bearer token")
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	e := protectedEcho(testSecret)
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 17, "ADMIN", 15)
	require.NoError(t, err)

	e := protectedEcho(testSecret)
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_ValidTokenInjectsClaims(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 17, "OPERATOR", 15)
	require.NoError(t, err)

	e := protectedEcho(testSecret)
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "OPERATOR")
}

func TestRequireRole(t *testing.T) {
	adminTok, err := utils.NewAccessToken(testSecret, 1, "ADMIN", 15)
	require.NoError(t, err)
	operatorTok, err := utils.NewAccessToken(testSecret, 2, "OPERATOR", 15)
	require.NoError(t, err)

	e := protectedEcho(testSecret, "ADMIN")

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+adminTok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+operatorTok.Token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
