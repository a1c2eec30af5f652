package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/bridge-console/internal/config"
	"github.com/terra-clan/bridge-console/internal/models"
	"github.com/terra-clan/bridge-console/internal/scenario"
	"github.com/terra-clan/bridge-console/internal/services"
	"github.com/terra-clan/bridge-console/internal/stations"
)

type fakeSource struct {
	sc     *models.Scenario
	rec    models.LoadRecord
	loaded bool
}

func (f *fakeSource) Load(context.Context) *models.Scenario { return f.sc }

func (f *fakeSource) Info() (models.LoadRecord, bool) { return f.rec, f.loaded }

type fakeHistory struct {
	filters models.LoadFilters
	records []*models.LoadRecord
	err     error
}

func (f *fakeHistory) RecordLoad(context.Context, *models.LoadRecord) error { return nil }

func (f *fakeHistory) ListLoads(_ context.Context, filters models.LoadFilters) ([]*models.LoadRecord, error) {
	f.filters = filters
	return f.records, f.err
}

func (f *fakeHistory) DeleteLoadsBefore(context.Context, time.Time) (int64, error) { return 0, nil }

func (f *fakeHistory) Ping(context.Context) error { return nil }

func (f *fakeHistory) Close() error { return nil }

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func newTestServer(t *testing.T, apiKey string, history *fakeHistory) (*Server, *fakeSource) {
	t.Helper()
	source := &fakeSource{
		sc:     scenario.Fallback(),
		rec:    models.LoadRecord{ID: "load-1", URL: "file:///missing.xml", Source: models.SourceFallback, Error: "open: no such file"},
		loaded: true,
	}
	var s *Server
	if history != nil {
		s = NewServer(config.ServerConfig{}, config.AuthConfig{APIKey: apiKey}, source, stations.NewRenderer(nil), history, nil)
	} else {
		s = NewServer(config.ServerConfig{}, config.AuthConfig{APIKey: apiKey}, source, stations.NewRenderer(nil), nil, nil)
	}
	return s, source
}

func do(t *testing.T, s *Server, path string, headers map[string]string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, "", nil)

	code, env := do(t, s, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestReady(t *testing.T) {
	s, source := newTestServer(t, "", nil)

	code, _ := do(t, s, "/ready", nil)
	assert.Equal(t, http.StatusOK, code)

	source.loaded = false
	code, env := do(t, s, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not_ready", env.Error.Code)
}

func TestReady_BackingServiceDown(t *testing.T) {
	registry := services.NewRegistry()
	registry.Register("redis", services.CheckerFunc(func(context.Context) error { return errors.New("refused") }))

	source := &fakeSource{sc: scenario.Fallback(), loaded: true}
	s := NewServer(config.ServerConfig{}, config.AuthConfig{}, source, stations.NewRenderer(nil), nil, registry)

	code, env := do(t, s, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, env.Success)
}

func TestScenarioEndpoints(t *testing.T) {
	s, _ := newTestServer(t, "", nil)

	code, env := do(t, s, "/api/v1/scenario", nil)
	require.Equal(t, http.StatusOK, code)
	var sc models.Scenario
	require.NoError(t, json.Unmarshal(env.Data, &sc))
	assert.Equal(t, "ISV Meridian", sc.Ship.Name)

	code, env = do(t, s, "/api/v1/scenario/status", nil)
	require.Equal(t, http.StatusOK, code)
	var status statusResponse
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, models.SourceFallback, status.Load.Source)
	assert.Equal(t, 6, status.Systems)

	code, env = do(t, s, "/api/v1/scenario/systems", nil)
	require.Equal(t, http.StatusOK, code)
	var list struct {
		Systems []models.System `json:"systems"`
		Total   int             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 6, list.Total)

	code, env = do(t, s, "/api/v1/scenario/systems/reactor", nil)
	require.Equal(t, http.StatusOK, code)
	var sys models.System
	require.NoError(t, json.Unmarshal(env.Data, &sys))
	assert.Equal(t, "Main Reactor", sys.Name)

	code, env = do(t, s, "/api/v1/scenario/systems/warp-core", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", env.Error.Code)
}

func TestDamageNodeLookup(t *testing.T) {
	s, _ := newTestServer(t, "", nil)

	code, env := do(t, s, "/api/v1/scenario/damage/sensors-port-relay", nil)
	require.Equal(t, http.StatusOK, code)
	var body struct {
		Node  models.DamageNode `json:"node"`
		Depth int               `json:"depth"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, "Signal Relay", body.Node.Name)
	assert.Equal(t, 1, body.Depth)

	code, _ = do(t, s, "/api/v1/scenario/damage/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestStationEndpoints(t *testing.T) {
	s, _ := newTestServer(t, "", nil)

	code, env := do(t, s, "/api/v1/stations", nil)
	require.Equal(t, http.StatusOK, code)
	var list struct {
		Stations []models.Station `json:"stations"`
		Total    int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 6, list.Total)

	code, env = do(t, s, "/api/v1/stations/helm", nil)
	require.Equal(t, http.StatusOK, code)
	var panel models.Panel
	require.NoError(t, json.Unmarshal(env.Data, &panel))
	assert.Equal(t, "helm", panel.Station)
	assert.False(t, panel.Unavailable)

	code, env = do(t, s, "/api/v1/stations/galley", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "station_not_found", env.Error.Code)
}

func TestStationPlaceholderOverHTTP(t *testing.T) {
	s, source := newTestServer(t, "", nil)
	source.sc.LifeSupport = nil

	code, env := do(t, s, "/api/v1/stations/life-support", nil)
	require.Equal(t, http.StatusOK, code)
	var panel models.Panel
	require.NoError(t, json.Unmarshal(env.Data, &panel))
	assert.True(t, panel.Unavailable)
	assert.Equal(t, stations.PlaceholderMessage, panel.Message)
}

func TestLoads(t *testing.T) {
	s, _ := newTestServer(t, "", nil)
	code, env := do(t, s, "/api/v1/loads", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "history_disabled", env.Error.Code)

	history := &fakeHistory{records: []*models.LoadRecord{{ID: "a", Source: models.SourceLive}}}
	s, _ = newTestServer(t, "", history)

	code, env = do(t, s, "/api/v1/loads?source=live&limit=5&offset=2", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.LoadFilters{Source: models.SourceLive, Limit: 5, Offset: 2}, history.filters)

	var body struct {
		Loads []models.LoadRecord `json:"loads"`
		Total int                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, 1, body.Total)

	code, env = do(t, s, "/api/v1/loads?source=cached", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "validation_error", env.Error.Code)

	history.err = errors.New("db down")
	code, _ = do(t, s, "/api/v1/loads", nil)
	assert.Equal(t, http.StatusInternalServerError, code)
}

func TestAuth(t *testing.T) {
	s, _ := newTestServer(t, "s3cret-key", nil)

	code, env := do(t, s, "/api/v1/stations", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "missing_api_key", env.Error.Code)

	code, env = do(t, s, "/api/v1/stations", map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid_api_key", env.Error.Code)

	code, _ = do(t, s, "/api/v1/stations", map[string]string{"Authorization": "Bearer s3cret-key"})
	assert.Equal(t, http.StatusOK, code)

	code, _ = do(t, s, "/api/v1/stations", map[string]string{"X-API-Key": "s3cret-key"})
	assert.Equal(t, http.StatusOK, code)

	code, _ = do(t, s, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestExtractAPIKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "raw-key")
	assert.Equal(t, "raw-key", extractAPIKey(req))

	assert.Equal(t, "***", maskKey("short"))
	assert.Equal(t, "abcdefgh...", maskKey("abcdefghijkl"))
}

func TestStationWebsocket(t *testing.T) {
	s, _ := newTestServer(t, "", nil)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/stations/tactical/ws"
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	readMessage := func() StationMessage {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var msg StationMessage
		require.NoError(t, conn.ReadJSON(&msg))
		return msg
	}

	first := readMessage()
	assert.Equal(t, MessagePanel, first.Type)
	require.NotNil(t, first.Panel)
	assert.Equal(t, "tactical", first.Panel.Station)

	require.NoError(t, conn.WriteJSON(StationMessage{Type: MessageRefresh}))
	refreshed := readMessage()
	assert.Equal(t, MessagePanel, refreshed.Type)
	assert.Equal(t, first.Panel.Rows, refreshed.Panel.Rows)

	require.NoError(t, conn.WriteJSON(StationMessage{Type: "launch"}))
	bad := readMessage()
	assert.Equal(t, MessageError, bad.Type)
	assert.Contains(t, bad.Message, "launch")
}

func TestStationWebsocket_UnknownStation(t *testing.T) {
	s, _ := newTestServer(t, "", nil)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/stations/galley/ws"
	_, resp, err := ws.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
