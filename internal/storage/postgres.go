package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/terra-clan/bridge-console/internal/models"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN         string
	MaxConns    int32
	MaxLifetime time.Duration
}

// NewPostgresRepository connects to PostgreSQL and verifies the connection
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	// Set pool configuration
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	} else {
		poolConfig.MaxConns = 10
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Pool exposes the connection pool for migrations
func (r *PostgresRepository) Pool() *pgxpool.Pool {
	return r.pool
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// RecordLoad stores the outcome of a scenario load
func (r *PostgresRepository) RecordLoad(ctx context.Context, rec *models.LoadRecord) error {
	query := `
		INSERT INTO scenario_loads (id, url, source, error, scenario_id, systems, duration_ms, loaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		rec.ID,
		rec.URL,
		string(rec.Source),
		nullString(rec.Error),
		nullString(rec.ScenarioID),
		rec.Systems,
		rec.DurationMs,
		rec.LoadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record load: %w", err)
	}

	return nil
}

// ListLoads returns load records, newest first
func (r *PostgresRepository) ListLoads(ctx context.Context, filters models.LoadFilters) ([]*models.LoadRecord, error) {
	query, args := buildListQuery(filters)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list loads: %w", err)
	}
	defer rows.Close()

	records := make([]*models.LoadRecord, 0)
	for rows.Next() {
		var rec models.LoadRecord
		var source string
		var loadErr, scenarioID sql.NullString

		err := rows.Scan(
			&rec.ID,
			&rec.URL,
			&source,
			&loadErr,
			&scenarioID,
			&rec.Systems,
			&rec.DurationMs,
			&rec.LoadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan load: %w", err)
		}

		rec.Source = models.LoadSource(source)
		rec.Error = loadErr.String
		rec.ScenarioID = scenarioID.String
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loads: %w", err)
	}

	return records, nil
}

// DeleteLoadsBefore removes records older than cutoff and returns how many were removed
func (r *PostgresRepository) DeleteLoadsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM scenario_loads WHERE loaded_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete loads: %w", err)
	}
	return result.RowsAffected(), nil
}

// buildListQuery builds the filtered SELECT for ListLoads
func buildListQuery(filters models.LoadFilters) (string, []any) {
	query := `
		SELECT id::text, url, source, error, scenario_id, systems, duration_ms, loaded_at
		FROM scenario_loads
		WHERE 1=1
	`
	args := make([]any, 0, 3)
	argNum := 1

	if filters.Source != "" {
		query += fmt.Sprintf(" AND source = $%d", argNum)
		args = append(args, string(filters.Source))
		argNum++
	}

	// Newest first, always bounded
	query += " ORDER BY loaded_at DESC"

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	query += fmt.Sprintf(" LIMIT $%d", argNum)
	args = append(args, limit)
	argNum++

	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, filters.Offset)
	}

	return query, args
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
