//-------------------------------------------------------------------------
//
// FastAndSafe Courier Data Warehouse
//
// Copyright (c) 2025 - 2026, FastAndSafe Logistics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/fastandsafe/courier-dwh/internal/logging"
	"github.com/fastandsafe/courier-dwh/pkg/version"
)

const metadataTable = "etl_metadata"

const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS etl_metadata (
    key   VARCHAR PRIMARY KEY,
    value VARCHAR NOT NULL
)`

// SaveRunStamp records that a full load completed, with the tool version
// and completion time. The stamp is written only after every table loaded,
// so its presence means the warehouse is referentially complete.
func (s *Store) SaveRunStamp(ctx context.Context, sourceName string) error {
	if _, err := s.db.ExecContext(ctx, createMetadataTableSQL); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	metadata := map[string]string{
		"version":      version.Short(),
		"completed_at": time.Now().UTC().Format(time.RFC3339),
		"source":       sourceName,
	}

	for key, value := range metadata {
		_, err := s.db.ExecContext(ctx, `
            INSERT INTO etl_metadata (key, value) VALUES (?, ?)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
        `, key, value)
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}

	logging.Debug().Str("source", sourceName).Msg("Saved run stamp")
	return nil
}

// GetMetadataValue retrieves a single metadata value by key.
func (s *Store) GetMetadataValue(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
        SELECT value FROM etl_metadata WHERE key = ?
    `, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}
