package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/bridge-console/internal/api"
	"github.com/terra-clan/bridge-console/internal/config"
	"github.com/terra-clan/bridge-console/internal/models"
	"github.com/terra-clan/bridge-console/internal/scenario"
	"github.com/terra-clan/bridge-console/internal/stations"
)

type staticSource struct {
	sc *models.Scenario
}

func (s staticSource) Load(context.Context) *models.Scenario { return s.sc }

func (s staticSource) Info() (models.LoadRecord, bool) {
	return models.LoadRecord{ID: "load-1", Source: models.SourceFallback}, true
}

func newBridge(t *testing.T, apiKey string) *httptest.Server {
	t.Helper()
	srv := api.NewServer(
		config.ServerConfig{},
		config.AuthConfig{APIKey: apiKey},
		staticSource{sc: scenario.Fallback()},
		stations.NewRenderer(nil),
		nil,
		nil,
	)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestClient_Endpoints(t *testing.T) {
	ts := newBridge(t, "key-123456789")
	c := NewClient(ts.URL+"/", "key-123456789", WithTimeout(5*time.Second))
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))

	sc, err := c.Scenario(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fallback", sc.ID)

	st, err := c.Status(ctx)
	require.NoError(t, err)
	assert.True(t, st.Load.IsFallback())
	assert.Equal(t, 6, st.Systems)

	systems, err := c.Systems(ctx)
	require.NoError(t, err)
	assert.Len(t, systems, 6)

	sys, err := c.System(ctx, "ftl")
	require.NoError(t, err)
	assert.Equal(t, "standby", sys.Status)

	node, err := c.DamageNode(ctx, "sensors")
	require.NoError(t, err)
	assert.Equal(t, 3, node.Depth)

	list, err := c.Stations(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 6)

	panel, err := c.Station(ctx, "engineering")
	require.NoError(t, err)
	assert.Equal(t, "Engineering", panel.Title)
}

func TestClient_Errors(t *testing.T) {
	ts := newBridge(t, "key-123456789")
	ctx := context.Background()

	_, err := NewClient(ts.URL, "wrong").Stations(ctx)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid_api_key", apiErr.Code)

	c := NewClient(ts.URL, "key-123456789")
	_, err = c.System(ctx, "warp-core")
	assert.True(t, IsNotFound(err))

	_, err = c.Loads(ctx, LoadOptions{Source: models.SourceLive, Limit: 10})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "history_disabled", apiErr.Code)
}

func TestClient_WatchStation(t *testing.T) {
	ts := newBridge(t, "")
	c := NewClient(ts.URL, "")

	feed, err := c.WatchStation(context.Background(), "helm")
	require.NoError(t, err)
	defer feed.Close()

	panel, err := feed.Next()
	require.NoError(t, err)
	assert.Equal(t, "helm", panel.Station)

	require.NoError(t, feed.Refresh())
	again, err := feed.Next()
	require.NoError(t, err)
	assert.Equal(t, panel.Metrics, again.Metrics)

	_, err = c.WatchStation(context.Background(), "galley")
	assert.True(t, IsNotFound(err))
}
