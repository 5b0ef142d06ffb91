// Package dims implements the dimension builds of the courier warehouse
// and the registry the run command schedules them from.
package dims

import (
	"context"
	"fmt"
	"sync"

	"github.com/fastandsafe/courier-dwh/internal/etl"
	"github.com/fastandsafe/courier-dwh/internal/source"
	"github.com/fastandsafe/courier-dwh/internal/warehouse"
)

// Env carries the stores and run parameters a build needs.
type Env struct {
	Source    *source.DB
	Warehouse *warehouse.Store

	// Calendar range covered by Dim_Fecha (inclusive).
	CalendarStart etl.Date
	CalendarEnd   etl.Date
}

// Build is one table build in the load sequence. DependsOn names the
// warehouse tables this build reads back through the lookup service;
// the scheduler guarantees those are loaded first.
type Build interface {
	// Name returns the warehouse table this build produces.
	Name() string

	// DependsOn returns the tables that must be loaded before this one.
	DependsOn() []string

	// Run extracts, transforms and loads the table.
	Run(ctx context.Context, env Env) error
}

var (
	registry []Build
	byName   = make(map[string]Build)
	mu       sync.RWMutex
)

// Register adds a build to the registry. Registration order is the
// tiebreak for scheduling, so it is part of the deterministic contract.
func Register(b Build) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := byName[b.Name()]; dup {
		panic(fmt.Sprintf("dims: duplicate build %s", b.Name()))
	}
	registry = append(registry, b)
	byName[b.Name()] = b
}

// Get retrieves a build by table name.
func Get(name string) (Build, error) {
	mu.RLock()
	defer mu.RUnlock()
	b, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown build: %s", name)
	}
	return b, nil
}

// All returns every registered build in registration order.
func All() []Build {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Build(nil), registry...)
}

// Steps returns the registered builds as scheduler steps.
func Steps() []etl.Step {
	mu.RLock()
	defer mu.RUnlock()
	steps := make([]etl.Step, 0, len(registry))
	for _, b := range registry {
		steps = append(steps, etl.Step{Name: b.Name(), DependsOn: b.DependsOn()})
	}
	return steps
}
