package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajivgeraev/ads-service/internal/utils"
)

func newTestApp(auth fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/ads/create", func(c fiber.Ctx) error {
		userID, ok := CurrentUserID(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(userID.String())
	}, auth)
	return app
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	jwtService := utils.NewJWTService("secret", time.Hour)
	userID := uuid.New()
	token, err := jwtService.GenerateToken(userID)
	require.NoError(t, err)

	app := newTestApp(AuthMiddleware(jwtService, ""))
	req := httptest.NewRequest(http.MethodGet, "/ads/create", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, userID.String(), readBody(t, resp))
}

func TestAuthMiddlewareRejectsWithoutLoginURL(t *testing.T) {
	jwtService := utils.NewJWTService("secret", time.Hour)
	app := newTestApp(AuthMiddleware(jwtService, ""))

	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/ads/create", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
	}
}

func TestAuthMiddlewareRedirectsToLogin(t *testing.T) {
	jwtService := utils.NewJWTService("secret", time.Hour)
	app := newTestApp(AuthMiddleware(jwtService, "/login"))

	req := httptest.NewRequest(http.MethodGet, "/ads/create?x=1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?next=%2Fads%2Fcreate%3Fx%3D1", resp.Header.Get("Location"))
}

func TestOptionalAuthMiddleware(t *testing.T) {
	jwtService := utils.NewJWTService("secret", time.Hour)
	app := newTestApp(OptionalAuthMiddleware(jwtService))

	req := httptest.NewRequest(http.MethodGet, "/ads/create", nil)
	req.Header.Set("Authorization", "Bearer broken")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "anonymous", readBody(t, resp))

	userID := uuid.New()
	token, err := jwtService.GenerateToken(userID)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/ads/create", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), readBody(t, resp))
}

func TestLoginRedirectKeepsExistingQuery(t *testing.T) {
	assert.Equal(t, "https://id.example/login?app=ads&next=%2Fads%2F", loginRedirect("https://id.example/login?app=ads", "/ads/"))
}
