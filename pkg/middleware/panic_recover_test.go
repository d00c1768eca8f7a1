package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicRecover_Returns500WithText(t *testing.T) {
	app := fiber.New()
	mw := NewPanicRecoverMiddleware(logrus.New())
	app.Use(mw.Middleware())
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("session store exploded")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "An error occurred: session store exploded")
}

func TestPanicRecover_PassesThrough(t *testing.T) {
	app := fiber.New()
	mw := NewPanicRecoverMiddleware(logrus.New())
	app.Use(mw.Middleware())
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
