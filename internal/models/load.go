package models

import (
	"time"
)

// LoadSource tells where the served scenario came from
type LoadSource string

const (
	SourceLive     LoadSource = "live"
	SourceFallback LoadSource = "fallback"
)

// LoadRecord describes the outcome of one scenario load
type LoadRecord struct {
	ID         string     `json:"id"`
	URL        string     `json:"url"`
	Source     LoadSource `json:"source"`
	Error      string     `json:"error,omitempty"`
	ScenarioID string     `json:"scenario_id,omitempty"`
	Systems    int        `json:"systems"`
	DurationMs int64      `json:"duration_ms"`
	LoadedAt   time.Time  `json:"loaded_at"`
}

// IsFallback returns true if the fallback dataset was served
func (r *LoadRecord) IsFallback() bool {
	return r.Source == SourceFallback
}

// LoadFilters narrows a load history listing
type LoadFilters struct {
	Source LoadSource
	Limit  int
	Offset int
}
