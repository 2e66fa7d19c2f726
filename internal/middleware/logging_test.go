package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"icebreaker/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextMiddleware_PropagatesRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(requestid.New())
	app.Use(ContextMiddleware())

	var seen string
	app.Get("/", func(c *fiber.Ctx) error {
		// the service layer logs with c.UserContext(); the request id must
		// be there, not just in the Fiber locals
		seen, _ = c.UserContext().Value(observability.RequestIDKey).(string)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, seen)
}

type testCtxKey string

func TestContextMiddleware_CopiesTraceIDLocal(t *testing.T) {
	app := fiber.New()
	// stand-in for the tracing middleware, which sets the local and the
	// user context before ContextMiddleware runs
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("traceID", "abc123")
		c.SetUserContext(context.WithValue(c.Context(), testCtxKey("upstream"), "kept"))
		return c.Next()
	})
	app.Use(ContextMiddleware())

	var traceID, upstream string
	app.Get("/", func(c *fiber.Ctx) error {
		traceID, _ = c.UserContext().Value(observability.TraceIDKey).(string)
		upstream, _ = c.UserContext().Value(testCtxKey("upstream")).(string)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "abc123", traceID)
	assert.Equal(t, "kept", upstream)
}

func TestContextMiddleware_DerivesFromRequestContext(t *testing.T) {
	app := fiber.New()
	app.Use(ContextMiddleware())

	var sameRequest bool
	app.Get("/", func(c *fiber.Ctx) error {
		// with no upstream user context the request context is the parent,
		// so per-request values set by fasthttp remain reachable
		sameRequest = c.UserContext() != context.Background()
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, sameRequest)
}
