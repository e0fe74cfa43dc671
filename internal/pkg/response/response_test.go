package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetch(t *testing.T, handler fiber.Handler) (int, Response) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body Response
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestSuccessEnvelope(t *testing.T) {
	status, body := fetch(t, func(c *fiber.Ctx) error {
		return Success(c, "memberships retrieved", []string{"UFA/001/2026"})
	})

	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, body.Success)
	assert.Equal(t, "memberships retrieved", body.Message)
	assert.Empty(t, body.Error)
	assert.Zero(t, body.Code)
}

func TestErrorEnvelopeCarriesCode(t *testing.T) {
	status, body := fetch(t, func(c *fiber.Ctx) error {
		return NotFound(c, "membership not found")
	})

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, body.Success)
	assert.Equal(t, "membership not found", body.Error)
	assert.Equal(t, fiber.StatusNotFound, body.Code)
}
