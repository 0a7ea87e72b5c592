package Controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ScrapBook/Models"
	"ScrapBook/middleware"
)

func newAuthApp(db *gorm.DB) *fiber.App {
	Models.DB = db
	app := fiber.New()
	app.Post("/api/RegisterUser", RegisterUser)
	app.Post("/api/Login", Login)
	app.Get("/api/User", User)
	app.Post("/api/Logout", Logout)
	app.Get("/api/owner-only", middleware.Verify(Models.PermissionOwner), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func registerUser(t *testing.T, app *fiber.App, name, email string, permission int) {
	t.Helper()
	status, _ := doJSON(t, app, "POST", "/api/RegisterUser", fiber.Map{
		"name": name, "email": email, "password": "hunter22",
		"permission": permission, "company_id": 1, "godown_id": 1,
	})
	require.Equal(t, fiber.StatusCreated, status)
}

func loginCookie(t *testing.T, app *fiber.App, email string) *http.Cookie {
	t.Helper()
	resp, err := app.Test(jsonRequest(t, "POST", "/api/Login", fiber.Map{
		"email": email, "password": "hunter22",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "jwt" {
			require.NotEmpty(t, cookie.Value)
			require.True(t, cookie.HttpOnly)
			return cookie
		}
	}
	t.Fatal("jwt cookie not set")
	return nil
}

func TestLoginSetsJwtCookieAndReturnsProfile(t *testing.T) {
	db := newTestDB(t)
	app := newAuthApp(db)
	registerUser(t, app, "Asha", "asha@example.com", Models.PermissionOwner)

	status, body := doJSON(t, app, "POST", "/api/Login", fiber.Map{
		"email": "asha@example.com", "password": "hunter22",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Asha", body["name"])
	assert.EqualValues(t, Models.PermissionOwner, body["permission"])
	assert.EqualValues(t, 1, body["company_id"])

	loginCookie(t, app, "asha@example.com")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	app := newAuthApp(db)
	registerUser(t, app, "Asha", "asha@example.com", Models.PermissionManager)

	status, body := doJSON(t, app, "POST", "/api/Login", fiber.Map{
		"email": "asha@example.com", "password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Incorrect Password", body["message"])

	status, body = doJSON(t, app, "POST", "/api/Login", fiber.Map{
		"email": "nobody@example.com", "password": "hunter22",
	})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "User Not Found", body["message"])
}

func TestRegisterUserRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	app := newAuthApp(db)
	registerUser(t, app, "Asha", "asha@example.com", Models.PermissionManager)

	status, body := doJSON(t, app, "POST", "/api/RegisterUser", fiber.Map{
		"name": "Imposter", "email": "asha@example.com", "password": "hunter22",
		"permission": Models.PermissionManager,
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, body["error"], "already registered")
}

func TestVerifyEnforcesPermissionLevels(t *testing.T) {
	db := newTestDB(t)
	app := newAuthApp(db)
	registerUser(t, app, "Manager", "manager@example.com", Models.PermissionManager)
	registerUser(t, app, "Owner", "owner@example.com", Models.PermissionOwner)

	// No cookie at all.
	resp, err := app.Test(httptest.NewRequest("GET", "/api/owner-only", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Manager is below the owner level.
	managerCookie := loginCookie(t, app, "manager@example.com")
	req := httptest.NewRequest("GET", "/api/owner-only", nil)
	req.AddCookie(managerCookie)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Owner passes.
	ownerCookie := loginCookie(t, app, "owner@example.com")
	req = httptest.NewRequest("GET", "/api/owner-only", nil)
	req.AddCookie(ownerCookie)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUserEndpointReturnsAccountBehindCookie(t *testing.T) {
	db := newTestDB(t)
	app := newAuthApp(db)
	registerUser(t, app, "Asha", "asha@example.com", Models.PermissionOwner)
	cookie := loginCookie(t, app, "asha@example.com")

	req := httptest.NewRequest("GET", "/api/User", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var user map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, "asha@example.com", user["email"])
	_, hasPassword := user["Password"]
	assert.False(t, hasPassword)
}
