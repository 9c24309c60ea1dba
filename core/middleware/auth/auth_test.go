package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/*", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestNew(t *testing.T) {
	app := newApp(Config{ApiKey: "secret", Public: []string{"/health"}})

	tests := []struct {
		name   string
		path   string
		header string
		value  string
		want   int
	}{
		{"Missing", "/catalogue", "", "", fiber.StatusUnauthorized},
		{"Wrong", "/catalogue", HeaderName, "nope", fiber.StatusUnauthorized},
		{"Header", "/catalogue", HeaderName, "secret", fiber.StatusOK},
		{"Bearer", "/catalogue", fiber.HeaderAuthorization, "Bearer secret", fiber.StatusOK},
		{"Public", "/health", "", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestNew_Disabled(t *testing.T) {
	resp, err := newApp(Config{}).Test(httptest.NewRequest("GET", "/anything", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
