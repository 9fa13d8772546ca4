package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fadilmartias/resume-analyzer/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContextApp() *fiber.App {
	app := fiber.New()
	app.Use(requestid.New())
	app.Use(RequestContext())
	app.Get("/ctx", func(c *fiber.Ctx) error {
		return c.JSON(RequestContextFrom(c))
	})
	return app
}

func fetchContext(t *testing.T, app *fiber.App, req *http.Request) usecase.RequestContext {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rc usecase.RequestContext
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rc))
	return rc
}

func TestRequestContext(t *testing.T) {
	app := newContextApp()

	req := httptest.NewRequest(http.MethodGet, "/ctx", nil)
	req.Header.Set(fiber.HeaderUserAgent, "curl/8.0")
	req.Header.Set(fiber.HeaderXRequestID, "req-123")

	rc := fetchContext(t, app, req)
	assert.Equal(t, "curl/8.0", rc.UserAgent)
	assert.Equal(t, "req-123", rc.RequestID)
	assert.NotEmpty(t, rc.IPAddress)
}

func TestRequestContextWithoutUserAgent(t *testing.T) {
	app := newContextApp()

	rc := fetchContext(t, app, httptest.NewRequest(http.MethodGet, "/ctx", nil))
	assert.Empty(t, rc.UserAgent)
	assert.NotEmpty(t, rc.RequestID, "requestid generates an id when none is sent")
}

func TestRequestContextFromWithoutMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/ctx", func(c *fiber.Ctx) error {
		return c.JSON(RequestContextFrom(c))
	})

	rc := fetchContext(t, app, httptest.NewRequest(http.MethodGet, "/ctx", nil))
	assert.Equal(t, usecase.RequestContext{}, rc)
}

func TestRequestContextCopiesHeaders(t *testing.T) {
	var stored []usecase.RequestContext
	app := fiber.New()
	app.Use(RequestContext())
	app.Get("/ctx", func(c *fiber.Ctx) error {
		stored = append(stored, RequestContextFrom(c))
		return c.SendStatus(fiber.StatusNoContent)
	})

	for _, agent := range []string{"first-agent/1.0", "XXXXXXXXXXXXXXX"} {
		req := httptest.NewRequest(http.MethodGet, "/ctx", nil)
		req.Header.Set(fiber.HeaderUserAgent, agent)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	require.Len(t, stored, 2)
	assert.Equal(t, "first-agent/1.0", stored[0].UserAgent)
	assert.Equal(t, "XXXXXXXXXXXXXXX", stored[1].UserAgent)
}
