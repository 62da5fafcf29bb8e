// Package analyze forwards map-selection features to an external echo
// endpoint. The analysis itself happens elsewhere; this passthrough exists
// for debugging the selection pipeline end to end.
package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"mapapi/internal/config"
	"mapapi/internal/geojson"
)

// Forwarder posts a GeoJSON feature to the configured endpoint and returns
// the echoed response body.
type Forwarder interface {
	Forward(ctx context.Context, f geojson.Feature) ([]byte, error)
}

// Client is the HTTP implementation of Forwarder.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient builds a Forwarder with an instrumented HTTP transport.
func NewClient(cfg config.AnalyzeConfig) *Client {
	return &Client{
		endpoint: cfg.EchoURL,
		http: &http.Client{
			Timeout:   time.Duration(cfg.TimeoutSec) * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

var _ Forwarder = (*Client)(nil)

// Forward posts the feature as JSON and returns whatever body the endpoint
// echoed back. Any non-2xx status is an error.
func (c *Client) Forward(ctx context.Context, f geojson.Feature) ([]byte, error) {
	body, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshal feature: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post feature: %w", err)
	}
	defer resp.Body.Close()

	echoed, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read echo response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("echo endpoint returned status %d", resp.StatusCode)
	}
	return echoed, nil
}
