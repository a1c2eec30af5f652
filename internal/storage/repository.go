package storage

import (
	"context"
	"errors"
	"time"

	"github.com/terra-clan/bridge-console/internal/models"
)

// ErrHistoryDisabled is returned when no database is configured
var ErrHistoryDisabled = errors.New("load history is disabled")

// Repository defines the interface for load history persistence
type Repository interface {
	RecordLoad(ctx context.Context, rec *models.LoadRecord) error
	ListLoads(ctx context.Context, filters models.LoadFilters) ([]*models.LoadRecord, error)
	DeleteLoadsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}
