//-------------------------------------------------------------------------
//
// FastAndSafe Courier Data Warehouse
//
// Copyright (c) 2025 - 2026, FastAndSafe Logistics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package etl implements the dimensional key-resolution and fact-assembly
// engine: deterministic surrogate key assignment, keyword classification,
// normalized date/time join keys, lookup resolution with sentinel policy,
// the error taxonomy, and the build scheduler.
package etl

// Builder assembles dimension rows from extracted source rows.
//
// Transform is the pure row-wise derivation (categorization, defaulting,
// null-filling). Sentinel, when set, is prepended before key assignment so
// the synthetic "value absent" row always receives the lowest surrogate
// key. SetKey writes the assigned surrogate key into a finished row.
type Builder[S any, D any] struct {
	Transform func(S) (D, error)
	Sentinel  *D
	SetKey    func(*D, int64)
}

// Build derives one dimension row per source row, in source order, then
// assigns dense surrogate keys 1..N over the final row order. A Transform
// failure aborts the build; every row in the output is fully derived.
func (b Builder[S, D]) Build(src []S) ([]D, error) {
	rows := make([]D, 0, len(src)+1)
	if b.Sentinel != nil {
		rows = append(rows, *b.Sentinel)
	}
	for _, s := range src {
		d, err := b.Transform(s)
		if err != nil {
			return nil, err
		}
		rows = append(rows, d)
	}
	for i := range rows {
		b.SetKey(&rows[i], int64(i+1))
	}
	return rows, nil
}
