package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brocante/internal/middleware"
	"brocante/internal/models"
	"brocante/internal/repositories"
	"brocante/internal/services"
)

func setupGuardedApp(t *testing.T) (*fiber.App, *models.User) {
	t.Helper()

	userRepo := repositories.NewInMemoryUserRepository()
	user := &models.User{
		Email:   "j@x.io",
		Account: models.Account{Username: "JohnDoe"},
		Token:   "tok-valid",
	}
	require.NoError(t, userRepo.Create(user))

	authService := services.NewAuthService(userRepo)

	app := fiber.New()
	app.Get("/protected", middleware.AuthRequired(authService), func(c *fiber.Ctx) error {
		resolved := c.Locals(middleware.UserKey).(*models.User)
		return c.JSON(fiber.Map{"username": resolved.Account.Username})
	})
	return app, user
}

func TestAuthRequired_ValidToken(t *testing.T) {
	app, _ := setupGuardedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer tok-valid")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAuthRequired_MissingHeader(t *testing.T) {
	app, _ := setupGuardedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAuthRequired_MalformedHeader(t *testing.T) {
	app, _ := setupGuardedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "tok-valid")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAuthRequired_UnknownToken(t *testing.T) {
	app, _ := setupGuardedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer tok-unknown")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
