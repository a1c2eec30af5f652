// Package stations builds per-station panel view models from a scenario.
package stations

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/terra-clan/bridge-console/internal/models"
)

// PlaceholderMessage is shown in place of a panel that failed to build
const PlaceholderMessage = "Station data unavailable"

var (
	ErrStationNotFound = errors.New("station not found")
	errNoData          = errors.New("section missing from scenario")
)

// Builder turns a scenario into the panel of one station
type Builder func(sc *models.Scenario) (models.Panel, error)

// Renderer renders the stations of a layout
type Renderer struct {
	mu       sync.RWMutex
	layout   *Layout
	builders map[string]Builder
}

// NewRenderer creates a renderer with the built-in station builders
func NewRenderer(layout *Layout) *Renderer {
	if layout == nil {
		layout = DefaultLayout()
	}
	return &Renderer{
		layout: layout,
		builders: map[string]Builder{
			"bridge":         buildBridge,
			"damage-control": buildDamageControl,
			"engineering":    buildEngineering,
			"life-support":   buildLifeSupport,
			"helm":           buildHelm,
			"tactical":       buildTactical,
		},
	}
}

// Register adds or replaces the builder for a station id
func (r *Renderer) Register(id string, b Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[id] = b
}

// Stations returns the enabled stations in layout order
func (r *Renderer) Stations() []models.Station {
	return r.layout.Enabled()
}

// Render builds the panel for one station. Only an unknown or disabled
// station is an error; a failing builder yields a placeholder panel.
func (r *Renderer) Render(id string, sc *models.Scenario) (models.Panel, error) {
	station, ok := r.layout.Get(id)
	if !ok || !station.Enabled {
		return models.Panel{}, ErrStationNotFound
	}
	return r.render(station, sc), nil
}

// RenderAll builds every enabled station independently
func (r *Renderer) RenderAll(sc *models.Scenario) []models.Panel {
	stations := r.Stations()
	panels := make([]models.Panel, 0, len(stations))
	for _, st := range stations {
		panels = append(panels, r.render(st, sc))
	}
	return panels
}

func (r *Renderer) render(st models.Station, sc *models.Scenario) (panel models.Panel) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("station panel panicked", "station", st.ID, "panic", fmt.Sprint(rec))
			panel = placeholder(st)
		}
	}()

	r.mu.RLock()
	build, ok := r.builders[st.ID]
	r.mu.RUnlock()
	if !ok {
		slog.Warn("no builder for station", "station", st.ID)
		return placeholder(st)
	}

	if sc == nil {
		return placeholder(st)
	}

	p, err := build(sc)
	if err != nil {
		slog.Warn("failed to build station panel", "station", st.ID, "error", err)
		return placeholder(st)
	}

	p.Station = st.ID
	p.Title = st.Title
	if p.Metrics == nil {
		p.Metrics = []models.Metric{}
	}
	if p.Rows == nil {
		p.Rows = []models.Row{}
	}
	if p.Alerts == nil {
		p.Alerts = []string{}
	}
	return p
}

func placeholder(st models.Station) models.Panel {
	return models.Panel{
		Station:     st.ID,
		Title:       st.Title,
		Tone:        models.ToneUnknown,
		Metrics:     []models.Metric{},
		Rows:        []models.Row{},
		Alerts:      []string{},
		Unavailable: true,
		Message:     PlaceholderMessage,
	}
}
