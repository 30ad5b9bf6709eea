package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"smartMarket/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw(okHandler)(c))
	return c, rec
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	utils.InitJWT("test-secret")

	token, err := utils.GenerateJWT("7", "customer")
	require.NoError(t, err)

	c, rec := runMiddleware(t, AuthMiddleware(), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), c.Get("user_id"))
	assert.Equal(t, "customer", c.Get("role"))
	assert.Equal(t, token, c.Get("token"))
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	utils.InitJWT("test-secret")

	_, rec := runMiddleware(t, AuthMiddleware(), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	utils.InitJWT("test-secret")

	_, rec := runMiddleware(t, AuthMiddleware(), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareGarbageToken(t *testing.T) {
	utils.InitJWT("test-secret")

	_, rec := runMiddleware(t, AuthMiddleware(), "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthAnonymousPassesThrough(t *testing.T) {
	utils.InitJWT("test-secret")

	c, rec := runMiddleware(t, OptionalAuthMiddleware(), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get("user_id"))
}

func TestOptionalAuthInvalidTokenPassesThrough(t *testing.T) {
	utils.InitJWT("test-secret")

	c, rec := runMiddleware(t, OptionalAuthMiddleware(), "Bearer not-a-jwt")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get("user_id"))
}

func TestOptionalAuthValidTokenSetsUser(t *testing.T) {
	utils.InitJWT("test-secret")

	token, err := utils.GenerateJWT("9", "seller")
	require.NoError(t, err)

	c, rec := runMiddleware(t, OptionalAuthMiddleware(), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(9), c.Get("user_id"))
	assert.Equal(t, "seller", c.Get("role"))
}

func TestAdminOnly(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", "ADMIN")
	require.NoError(t, AdminOnly()(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set("role", "customer")
	require.NoError(t, AdminOnly()(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
