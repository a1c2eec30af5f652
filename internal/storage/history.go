package storage

import (
	"context"
	"fmt"

	"github.com/terra-clan/bridge-console/internal/models"
)

// History records every scenario load in the repository
type History struct {
	repo Repository
}

// NewHistory creates a load history recorder
func NewHistory(repo Repository) *History {
	return &History{repo: repo}
}

// ScenarioLoaded implements loader.Observer
func (h *History) ScenarioLoaded(ctx context.Context, _ *models.Scenario, rec models.LoadRecord) error {
	if err := h.repo.RecordLoad(ctx, &rec); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	return nil
}
