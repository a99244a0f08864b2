package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAPIKeyFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "x-api-key header",
			headers: map[string]string{"X-API-Key": "tfx_abc123"},
			want:    "tfx_abc123",
		},
		{
			name:    "x-api-key with surrounding whitespace",
			headers: map[string]string{"X-API-Key": "  tfx_abc123  "},
			want:    "tfx_abc123",
		},
		{
			name:    "bearer token",
			headers: map[string]string{"Authorization": "Bearer tfx_abc123"},
			want:    "tfx_abc123",
		},
		{
			name:    "bearer is case insensitive",
			headers: map[string]string{"Authorization": "bearer tfx_abc123"},
			want:    "tfx_abc123",
		},
		{
			name:    "x-api-key wins over authorization",
			headers: map[string]string{"X-API-Key": "tfx_key", "Authorization": "Bearer tfx_other"},
			want:    "tfx_key",
		},
		{
			name:    "authorization without bearer scheme",
			headers: map[string]string{"Authorization": "Basic dXNlcjpwYXNz"},
			want:    "",
		},
		{
			name:    "no headers",
			headers: map[string]string{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var got string
			app.Get("/", func(c *fiber.Ctx) error {
				got = extractAPIKeyFromHeader(c)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.want, got)
		})
	}
}
