package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/modxnet/modxnet-backend/internal/dto"
	"github.com/modxnet/modxnet-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		cfg  models.SiteConfig
		want interface{}
	}{
		{models.SiteConfig{Type: "bool", Value: "true"}, true},
		{models.SiteConfig{Type: "bool", Value: "nope"}, false},
		{models.SiteConfig{Type: "int", Value: "42"}, 42},
		{models.SiteConfig{Type: "json", Value: `{"a":1}`}, map[string]interface{}{"a": float64(1)}},
		{models.SiteConfig{Type: "json", Value: `{`}, nil},
		{models.SiteConfig{Type: "string", Value: "ModXnet"}, "ModXnet"},
		{models.SiteConfig{Value: "untyped"}, "untyped"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, decodeValue(tt.cfg), "%s %q", tt.cfg.Type, tt.cfg.Value)
	}
}

func TestValidateValue(t *testing.T) {
	assert.NoError(t, validateValue("string", ""))
	assert.NoError(t, validateValue("bool", "false"))
	assert.NoError(t, validateValue("int", "-3"))
	assert.NoError(t, validateValue("json", `[1,2]`))

	assert.Error(t, validateValue("bool", "yes please"))
	assert.Error(t, validateValue("int", "4.5"))
	assert.Error(t, validateValue("json", "{"))
	assert.Error(t, validateValue("float", "1"))
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		ping   func() error
		wantDB string
	}{
		{"healthy", func() error { return nil }, "ok"},
		{"db down", func() error { return errors.New("refused") }, "unhealthy: refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/health", NewHealthHandler(tt.ping, 3).Check)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
			require.NoError(t, err)
			raw, _ := io.ReadAll(resp.Body)

			var body dto.HealthResponse
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, "ok", body.Status)
			assert.Equal(t, tt.wantDB, body.DB)
			assert.Equal(t, 3, body.Modules)
		})
	}
}

func TestLegalPages(t *testing.T) {
	h := NewLegalHandler("ModXnet", "support@modxnet.example")
	app := fiber.New()
	app.Get("/privacy", h.PrivacyPolicy)
	app.Get("/terms", h.TermsOfService)

	for _, path := range []string{"/privacy", "/terms"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
		raw, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(raw), "ModXnet")
		assert.Contains(t, string(raw), "support@modxnet.example")
	}
}
