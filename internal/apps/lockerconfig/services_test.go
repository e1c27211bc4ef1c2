package lockerconfig

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/modxnet/modxnet-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPublic(t *testing.T) {
	tests := []struct {
		name string
		cfg  LockerConfig
		want PublicConfig
	}{
		{"missing both", LockerConfig{VariableName: "v"}, PublicConfig{}},
		{"missing key", LockerConfig{ITValue: 42}, PublicConfig{}},
		{"missing it", LockerConfig{KeyValue: "abc"}, PublicConfig{}},
		{
			"configured",
			LockerConfig{VariableName: "v", ITValue: 42, KeyValue: "abc", ScriptURL: "https://cdn/x.js"},
			PublicConfig{Configured: true, VariableName: "v", ITValue: 42, KeyValue: "abc", ScriptURL: "https://cdn/x.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toPublic(&tt.cfg))
		})
	}
}

func TestUnconfiguredJSON(t *testing.T) {
	raw, err := json.Marshal(PublicConfig{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"configured":false}`, string(raw))
}

type staticSlugs []string

func (s staticSlugs) Slugs(context.Context) ([]string, error) { return s, nil }

func TestConfigService_Integration(t *testing.T) {
	db := testutil.Postgres(t, &LockerConfig{})
	svc := NewConfigService(db, staticSlugs{"gta-v", "forza"})
	ctx := context.Background()

	created, err := svc.EnsureConfig(ctx, "gta-v")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureConfig(ctx, "gta-v")
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, PublicConfig{}, svc.Public(ctx, "gta-v"), "default rows are unconfigured")
	assert.Equal(t, PublicConfig{}, svc.Public(ctx, "missing"))

	n, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	saved, err := svc.Upsert(ctx, "gta-v", UpsertRequest{ITValue: 4455572, KeyValue: "e7e4f"})
	require.NoError(t, err)
	assert.Equal(t, DefaultVariableName, saved.VariableName)
	assert.Equal(t, DefaultScriptURL, saved.ScriptURL)

	pub := svc.Public(ctx, "gta-v")
	assert.True(t, pub.Configured)
	assert.Equal(t, int64(4455572), pub.ITValue)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	t.Run("handlers", func(t *testing.T) {
		app := fiber.New()
		p := New(svc)
		p.RegisterRoutes(app.Group("/api"), nil)
		p.RegisterAdminRoutes(app.Group("/api/admin"))

		req := httptest.NewRequest(http.MethodPut, "/api/admin/locker/forza", strings.NewReader(`{"variable_name":"LSggc_lIq_uBTErc","it_value":4513158,"key_value":"28405"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/locker/forza", nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		var got PublicConfig
		require.NoError(t, json.Unmarshal(body, &got))
		assert.True(t, got.Configured)
		assert.Equal(t, "LSggc_lIq_uBTErc", got.VariableName)
	})
}
