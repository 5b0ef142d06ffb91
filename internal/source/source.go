// Package source provides read access to the operational Postgres system.
// The ETL treats it purely as rows-in: every extraction is a parameterless
// read with a fixed column set, wrapped in an ExtractionError on failure.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastandsafe/courier-dwh/internal/etl"
	"github.com/fastandsafe/courier-dwh/internal/logging"
)

// DB wraps the operational database connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// Connect establishes a connection pool to the operational database.
func Connect(ctx context.Context, connString string) (*DB, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	// The load is sequential; a small pool is plenty.
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	logging.Debug().
		Str("host", config.ConnConfig.Host).
		Uint16("port", config.ConnConfig.Port).
		Str("database", config.ConnConfig.Database).
		Msg("Connecting to operational database")

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Info().
		Str("host", config.ConnConfig.Host).
		Str("database", config.ConnConfig.Database).
		Msg("Connected to operational database")

	return &DB{Pool: pool}, nil
}

// Close releases the connection pool.
func (d *DB) Close() {
	if d.Pool != nil {
		d.Pool.Close()
	}
}

// Extract runs one extraction query and scans every row. Any failure is
// reported as an ExtractionError naming the extracted entity.
func Extract[T any](ctx context.Context, d *DB, entity, query string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, &etl.ExtractionError{Source: entity, Err: err}
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		row, err := scan(rows)
		if err != nil {
			return nil, &etl.ExtractionError{Source: entity, Err: err}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &etl.ExtractionError{Source: entity, Err: err}
	}

	logging.Info().
		Str("entity", entity).
		Int("rows", len(out)).
		Msg("Extracted from operational source")

	return out, nil
}
