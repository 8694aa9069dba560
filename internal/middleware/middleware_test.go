package middleware

import (
	"net/http/httptest"
	"testing"

	"marketplace-backend/domain"
	"marketplace-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(jwtService jwt.JWTService) *fiber.App {
	app := fiber.New()
	app.Get("/protected", NewMiddleware().AuthMiddleware(jwtService), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("user_id")})
	})
	return app
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	jwtService := jwt.NewJWTServiceWithSecret("test-secret-key-for-unit-tests")
	app := newProtectedApp(jwtService)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	jwtService := jwt.NewJWTServiceWithSecret("test-secret-key-for-unit-tests")
	app := newProtectedApp(jwtService)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	jwtService := jwt.NewJWTServiceWithSecret("test-secret-key-for-unit-tests")
	app := newProtectedApp(jwtService)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := jwt.NewJWTServiceWithSecret("test-secret-key-for-unit-tests")
	app := newProtectedApp(jwtService)

	token := jwtService.GenerateTokenUser("2b6f7a44-9e2c-4a8f-8d1a-111111111111", domain.RoleUser)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
