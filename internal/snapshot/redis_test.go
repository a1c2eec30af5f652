package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terra-clan/bridge-console/internal/models"
	"github.com/terra-clan/bridge-console/internal/scenario"
	"github.com/terra-clan/bridge-console/internal/stations"
)

type fakeRedis struct {
	values    map[string][]byte
	ttls      map[string]time.Duration
	published map[string][]byte
	order     []string
	setErr    error
	pingErr   error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		values:    make(map[string][]byte),
		ttls:      make(map[string]time.Duration),
		published: make(map[string][]byte),
	}
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.values[key] = value.([]byte)
	f.ttls[key] = expiration
	f.order = append(f.order, "set "+key)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	f.published[channel] = message.([]byte)
	f.order = append(f.order, "publish "+channel)
	return redis.NewIntResult(1, nil)
}

func (f *fakeRedis) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.pingErr)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "bridge:scenario", ScenarioKey())
	assert.Equal(t, "bridge:station:helm", StationKey("helm"))
	assert.Equal(t, "bridge:scenario:loaded", LoadedChannel())
}

func TestPublisher_ScenarioLoaded(t *testing.T) {
	fake := newFakeRedis()
	p := newPublisher(fake, stations.NewRenderer(nil), time.Hour)

	sc := scenario.Fallback()
	rec := models.LoadRecord{ID: "load-1", URL: "http://sim/x.xml", Source: models.SourceFallback, Systems: len(sc.Systems)}

	require.NoError(t, p.ScenarioLoaded(context.Background(), sc, rec))

	var doc Document
	require.NoError(t, json.Unmarshal(fake.values[ScenarioKey()], &doc))
	assert.Equal(t, "load-1", doc.Load.ID)
	assert.Equal(t, sc, doc.Scenario)
	assert.Equal(t, time.Hour, fake.ttls[ScenarioKey()])

	var panel models.Panel
	require.NoError(t, json.Unmarshal(fake.values[StationKey("tactical")], &panel))
	assert.Equal(t, "tactical", panel.Station)
	assert.Len(t, fake.values, 7)

	var announced models.LoadRecord
	require.NoError(t, json.Unmarshal(fake.published[LoadedChannel()], &announced))
	assert.Equal(t, rec.ID, announced.ID)
	assert.Equal(t, "publish "+LoadedChannel(), fake.order[len(fake.order)-1])
}

func TestPublisher_SetFailureSkipsAnnouncement(t *testing.T) {
	fake := newFakeRedis()
	fake.setErr = errors.New("READONLY")
	p := newPublisher(fake, stations.NewRenderer(nil), 0)

	err := p.ScenarioLoaded(context.Background(), scenario.Fallback(), models.LoadRecord{ID: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "READONLY")
	assert.Empty(t, fake.published)
}

func TestPublisher_HealthCheck(t *testing.T) {
	fake := newFakeRedis()
	p := newPublisher(fake, stations.NewRenderer(nil), 0)
	assert.NoError(t, p.HealthCheck(context.Background()))

	fake.pingErr = errors.New("connection refused")
	assert.Error(t, p.HealthCheck(context.Background()))
	assert.NoError(t, p.Close())
}
