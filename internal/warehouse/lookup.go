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

	"github.com/fastandsafe/courier-dwh/internal/etl"
	"github.com/fastandsafe/courier-dwh/internal/logging"
)

// The lookup service reads back the minimal surrogate-key + natural-key
// projection of an already-built dimension. Loading a dimension that has
// not been built this run fails with DependencyError: the fact build must
// never run against a partial or stale lookup set.

func (s *Store) projection(ctx context.Context, table, keyCol, naturalCol string, scan func(rowScanner) error) error {
	exists, err := s.TableExists(ctx, table)
	if err != nil {
		return fmt.Errorf("checking for %s: %w", table, err)
	}
	if !exists {
		return &etl.DependencyError{Table: table}
	}

	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %q, %q FROM %q", keyCol, naturalCol, table))
	if err != nil {
		return fmt.Errorf("projecting %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("projecting %s: %w", table, err)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// LookupInt loads a projection whose natural key is an integer
// operational identifier.
func (s *Store) LookupInt(ctx context.Context, table, keyCol, naturalCol string) (*etl.Lookup[int64], error) {
	l := etl.NewLookup[int64](table)
	err := s.projection(ctx, table, keyCol, naturalCol, func(r rowScanner) error {
		var key, natural int64
		if err := r.Scan(&key, &natural); err != nil {
			return err
		}
		l.Put(natural, key)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Debug().Str("table", table).Int("rows", l.Len()).Msg("Loaded lookup projection")
	return l, nil
}

// LookupString loads a projection whose natural key is textual.
func (s *Store) LookupString(ctx context.Context, table, keyCol, naturalCol string) (*etl.Lookup[string], error) {
	l := etl.NewLookup[string](table)
	err := s.projection(ctx, table, keyCol, naturalCol, func(r rowScanner) error {
		var key int64
		var natural string
		if err := r.Scan(&key, &natural); err != nil {
			return err
		}
		l.Put(natural, key)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// LookupDate loads a projection keyed by a normalized calendar day
// (Dim_Fecha). The stored DATE column and any timestamp on the probe side
// are both coerced to etl.Date, so granularity mismatches cannot produce
// a false non-match.
func (s *Store) LookupDate(ctx context.Context, table, keyCol, naturalCol string) (*etl.Lookup[etl.Date], error) {
	l := etl.NewLookup[etl.Date](table)
	err := s.projection(ctx, table, keyCol, naturalCol, func(r rowScanner) error {
		var key int64
		var day time.Time
		if err := r.Scan(&key, &day); err != nil {
			return err
		}
		l.Put(etl.DateOf(day), key)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// LookupTimeOfDay loads a projection keyed by a minute-granularity clock
// value (Dim_Hora), stored as an HH:MM text column.
func (s *Store) LookupTimeOfDay(ctx context.Context, table, keyCol, naturalCol string) (*etl.Lookup[etl.TimeOfDay], error) {
	l := etl.NewLookup[etl.TimeOfDay](table)
	err := s.projection(ctx, table, keyCol, naturalCol, func(r rowScanner) error {
		var key int64
		var clock string
		if err := r.Scan(&key, &clock); err != nil {
			return err
		}
		t, err := time.Parse("15:04", clock)
		if err != nil {
			return fmt.Errorf("invalid time-of-day %q: %w", clock, err)
		}
		l.Put(etl.TimeOfDayOf(t), key)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}
