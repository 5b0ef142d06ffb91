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

// ExtractionError reports a failed read against the operational source.
// It is fatal: the current step and the whole run are aborted.
type ExtractionError struct {
	Source string // the query or entity being extracted
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction of %s failed: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// TransformError reports source data a derivation rule cannot handle,
// identified by the offending row's natural key. It signals a data-quality
// problem upstream and is never silently defaulted.
type TransformError struct {
	Step   string // dimension or fact being built
	Key    string // natural key of the offending row
	Reason string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform of %s failed at row %s: %s", e.Step, e.Key, e.Reason)
}

// DependencyError reports a lookup against a dimension that has not been
// built this run. The fact build must not proceed with a partial or stale
// lookup set.
type DependencyError struct {
	Table string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dimension table %s has not been built yet", e.Table)
}

// LoadError reports a failed write to the warehouse. The replace is
// transactional, so no partial table is left addressable as final.
type LoadError struct {
	Table string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load of %s failed: %v", e.Table, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
