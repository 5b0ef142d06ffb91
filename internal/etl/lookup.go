//-------------------------------------------------------------------------
//
// FastAndSafe Courier Data Warehouse
//
// Copyright (c) 2025 - 2026, FastAndSafe Logistics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package etl

import "fmt"

// SentinelKey stands in for a foreign key whose optional relationship is
// legitimately absent or unmatched, in dimensions without a dedicated
// sentinel row.
const SentinelKey int64 = -1

// Lookup is the minimal projection of a persisted dimension: natural key
// to surrogate key. It is the join table the fact assembler resolves
// foreign keys against.
type Lookup[K comparable] struct {
	table string
	keys  map[K]int64
}

// NewLookup creates an empty lookup for the named dimension table.
func NewLookup[K comparable](table string) *Lookup[K] {
	return &Lookup[K]{table: table, keys: make(map[K]int64)}
}

// Table returns the dimension table this lookup projects.
func (l *Lookup[K]) Table() string { return l.table }

// Put records one natural-key to surrogate-key pair.
func (l *Lookup[K]) Put(natural K, key int64) {
	l.keys[natural] = key
}

// Len returns the number of projected rows.
func (l *Lookup[K]) Len() int { return len(l.keys) }

// Resolve returns the surrogate key for a natural key.
func (l *Lookup[K]) Resolve(natural K) (int64, bool) {
	key, ok := l.keys[natural]
	return key, ok
}

// Optional resolves a nullable foreign key. A nil natural key or an
// unmatched value yields the fallback key; events are never dropped over
// an absent optional relationship.
func Optional[K comparable](l *Lookup[K], natural *K, fallback int64) int64 {
	if natural == nil {
		return fallback
	}
	if key, ok := l.keys[*natural]; ok {
		return key
	}
	return fallback
}

// Required resolves a mandatory foreign key. An unmatched value is a
// data-quality defect reported as a TransformError naming the offending
// row, never silently defaulted.
func Required[K comparable](l *Lookup[K], natural K, step string, rowKey int64) (int64, error) {
	key, ok := l.keys[natural]
	if !ok {
		return 0, &TransformError{
			Step:   step,
			Key:    fmt.Sprint(rowKey),
			Reason: fmt.Sprintf("no %s row matches natural key %v", l.table, natural),
		}
	}
	return key, nil
}
