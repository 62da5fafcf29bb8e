package analyze

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapapi/internal/config"
	"mapapi/internal/geojson"
)

func TestClient_Forward(t *testing.T) {
	ctx := context.Background()
	zoom := 9.0
	feature := geojson.FromArea(geojson.Area{MinLng: 1, MinLat: 2, MaxLng: 3, MaxLat: 4, Zoom: &zoom})

	t.Run("echoes the posted feature", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			body, _ := io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
		}))
		defer srv.Close()

		cli := NewClient(config.AnalyzeConfig{EchoURL: srv.URL, TimeoutSec: 5})

		echoed, err := cli.Forward(ctx, feature)
		require.NoError(t, err)

		var got geojson.Feature
		require.NoError(t, json.Unmarshal(echoed, &got))
		assert.Equal(t, feature, got)
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		cli := NewClient(config.AnalyzeConfig{EchoURL: srv.URL, TimeoutSec: 5})

		_, err := cli.Forward(ctx, feature)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "status 502")
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		cli := NewClient(config.AnalyzeConfig{EchoURL: "http://127.0.0.1:1", TimeoutSec: 1})

		_, err := cli.Forward(ctx, feature)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "post feature")
	})
}
