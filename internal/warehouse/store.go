//-------------------------------------------------------------------------
//
// FastAndSafe Courier Data Warehouse
//
// Copyright (c) 2025 - 2026, FastAndSafe Logistics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package warehouse persists dimension and fact tables into the embedded
// DuckDB analytical store with replace-whole-table semantics.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/fastandsafe/courier-dwh/internal/etl"
	"github.com/fastandsafe/courier-dwh/internal/logging"
)

// Store wraps the warehouse database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the DuckDB database at path. An empty path
// opens an in-memory database, used by tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping warehouse %q: %w", path, err)
	}

	logging.Debug().Str("path", path).Msg("Opened warehouse")
	return &Store{db: db}, nil
}

// Close closes the warehouse database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Column describes one warehouse table column.
type Column struct {
	Name string
	Type string // DuckDB column type, e.g. BIGINT, VARCHAR, DATE
}

// TableSpec describes a dimension or fact table. PrimaryKey names the
// surrogate key column and must appear in Columns.
type TableSpec struct {
	Name       string
	PrimaryKey string
	Columns    []Column
}

func (t TableSpec) createSQL() string {
	defs := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		def := fmt.Sprintf("%q %s", c.Name, c.Type)
		if c.Name == t.PrimaryKey {
			def += " PRIMARY KEY"
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE %q (%s)", t.Name, strings.Join(defs, ", "))
}

func (t TableSpec) insertSQL() string {
	cols := make([]string, 0, len(t.Columns))
	marks := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		cols = append(cols, fmt.Sprintf("%q", c.Name))
		marks = append(marks, "?")
	}
	return fmt.Sprintf("INSERT INTO %q (%s) VALUES (%s)",
		t.Name, strings.Join(cols, ", "), strings.Join(marks, ", "))
}

// ReplaceTable fully replaces the named table: drop, recreate with the
// surrogate key declared as primary key, and repopulate, all inside one
// transaction. Repeated runs are therefore idempotent and a failed load
// never leaves a half-written table addressable as final.
func (s *Store) ReplaceTable(ctx context.Context, spec TableSpec, rows [][]any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &etl.LoadError{Table: spec.Name, Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %q", spec.Name)); err != nil {
		return &etl.LoadError{Table: spec.Name, Err: err}
	}
	if _, err := tx.ExecContext(ctx, spec.createSQL()); err != nil {
		return &etl.LoadError{Table: spec.Name, Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, spec.insertSQL())
	if err != nil {
		return &etl.LoadError{Table: spec.Name, Err: err}
	}
	defer stmt.Close()

	for _, row := range rows {
		if len(row) != len(spec.Columns) {
			return &etl.LoadError{
				Table: spec.Name,
				Err:   fmt.Errorf("row has %d values, table has %d columns", len(row), len(spec.Columns)),
			}
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return &etl.LoadError{Table: spec.Name, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &etl.LoadError{Table: spec.Name, Err: err}
	}

	logging.Info().
		Str("table", spec.Name).
		Int("rows", len(rows)).
		Str("primary_key", spec.PrimaryKey).
		Msg("Replaced warehouse table")

	return nil
}

// TableExists reports whether the named table is present.
func (s *Store) TableExists(ctx context.Context, table string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
        SELECT count(*) FROM information_schema.tables WHERE table_name = ?
    `, table).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RowCount returns the number of rows in the named table.
func (s *Store) RowCount(ctx context.Context, table string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT count(*) FROM %q", table)).Scan(&count)
	return count, err
}
