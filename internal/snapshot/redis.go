// Package snapshot mirrors the loaded scenario and rendered station panels
// into Redis for consumers outside the bridge process.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/terra-clan/bridge-console/internal/models"
)

const (
	scenarioKey   = "bridge:scenario"
	stationPrefix = "bridge:station:"
	loadedChannel = "bridge:scenario:loaded"
)

// ScenarioKey is the key holding the scenario snapshot
func ScenarioKey() string { return scenarioKey }

// StationKey is the key holding the rendered panel of a station
func StationKey(id string) string { return stationPrefix + id }

// LoadedChannel is the pub/sub channel announcing a load
func LoadedChannel() string { return loadedChannel }

// commander is the subset of the Redis client used by the publisher
type commander interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// PanelRenderer renders every enabled station
type PanelRenderer interface {
	RenderAll(sc *models.Scenario) []models.Panel
}

// Document is the value stored under the scenario key
type Document struct {
	Load     models.LoadRecord `json:"load"`
	Scenario *models.Scenario  `json:"scenario"`
}

// Publisher writes snapshots after the scenario load
type Publisher struct {
	client   commander
	closer   func() error
	renderer PanelRenderer
	ttl      time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisPublisher connects to Redis and verifies the connection
func NewRedisPublisher(ctx context.Context, cfg RedisConfig, renderer PanelRenderer) (*Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	p := newPublisher(client, renderer, cfg.TTL)
	p.closer = client.Close
	return p, nil
}

func newPublisher(client commander, renderer PanelRenderer, ttl time.Duration) *Publisher {
	return &Publisher{
		client:   client,
		closer:   func() error { return nil },
		renderer: renderer,
		ttl:      ttl,
	}
}

// ScenarioLoaded implements loader.Observer. The scenario and every panel
// are written before the load is announced on the channel.
func (p *Publisher) ScenarioLoaded(ctx context.Context, sc *models.Scenario, rec models.LoadRecord) error {
	doc, err := json.Marshal(Document{Load: rec, Scenario: sc})
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}
	if err := p.client.Set(ctx, scenarioKey, doc, p.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store scenario: %w", err)
	}

	panels := p.renderer.RenderAll(sc)
	for _, panel := range panels {
		data, err := json.Marshal(panel)
		if err != nil {
			return fmt.Errorf("failed to marshal panel %s: %w", panel.Station, err)
		}
		if err := p.client.Set(ctx, StationKey(panel.Station), data, p.ttl).Err(); err != nil {
			return fmt.Errorf("failed to store panel %s: %w", panel.Station, err)
		}
	}

	announcement, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal load record: %w", err)
	}
	if err := p.client.Publish(ctx, loadedChannel, announcement).Err(); err != nil {
		return fmt.Errorf("failed to publish load: %w", err)
	}

	slog.Info("scenario snapshot published",
		"load_id", rec.ID,
		"source", rec.Source,
		"stations", len(panels),
	)
	return nil
}

// HealthCheck verifies Redis connectivity
func (p *Publisher) HealthCheck(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (p *Publisher) Close() error {
	return p.closer()
}
