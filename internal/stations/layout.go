package stations

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/terra-clan/bridge-console/internal/models"
)

// Layout is the ordered set of stations offered by the bridge
type Layout struct {
	stations []models.Station
	index    map[string]int
}

// DefaultLayout returns the built-in station layout
func DefaultLayout() *Layout {
	return newLayout([]models.Station{
		{ID: "bridge", Title: "Bridge", Description: "Ship systems overview", Enabled: true},
		{ID: "helm", Title: "Helm", Description: "Propulsion and FTL", Enabled: true},
		{ID: "tactical", Title: "Tactical", Description: "Shields and hull", Enabled: true},
		{ID: "engineering", Title: "Engineering", Description: "Power and thermal", Enabled: true},
		{ID: "life-support", Title: "Life Support", Description: "Atmosphere and zones", Enabled: true},
		{ID: "damage-control", Title: "Damage Control", Description: "Damage reports and repairs", Enabled: true},
	})
}

func newLayout(stations []models.Station) *Layout {
	l := &Layout{
		stations: stations,
		index:    make(map[string]int, len(stations)),
	}
	for i, st := range stations {
		l.index[st.ID] = i
	}
	return l
}

// LoadLayout reads a YAML layout file. Invalid entries are skipped with a
// warning; a file without any usable station is an error.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseLayout(data)
}

// ParseLayout parses layout YAML
func ParseLayout(data []byte) (*Layout, error) {
	var lf layoutFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	seen := make(map[string]bool)
	var stations []models.Station
	for i, entry := range lf.Stations {
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			slog.Warn("skipping station without id", "index", i)
			continue
		}
		if seen[id] {
			slog.Warn("skipping duplicate station", "id", id)
			continue
		}
		seen[id] = true

		title := entry.Title
		if title == "" {
			title = id
		}
		enabled := true
		if entry.Enabled != nil {
			enabled = *entry.Enabled
		}

		stations = append(stations, models.Station{
			ID:          id,
			Title:       title,
			Description: entry.Description,
			Enabled:     enabled,
		})
	}

	if len(stations) == 0 {
		return nil, fmt.Errorf("layout defines no stations")
	}

	slog.Info("station layout loaded", "stations", len(stations))
	return newLayout(stations), nil
}

// Get returns a station by id
func (l *Layout) Get(id string) (models.Station, bool) {
	i, ok := l.index[id]
	if !ok {
		return models.Station{}, false
	}
	return l.stations[i], true
}

// Enabled returns the enabled stations in layout order
func (l *Layout) Enabled() []models.Station {
	result := make([]models.Station, 0, len(l.stations))
	for _, st := range l.stations {
		if st.Enabled {
			result = append(result, st)
		}
	}
	return result
}

// layoutFile represents the YAML structure of a layout file
type layoutFile struct {
	Stations []stationEntry `yaml:"stations"`
}

type stationEntry struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Enabled     *bool  `yaml:"enabled"`
}
