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

// Step is one build in the load sequence, with the builds it must read
// from the warehouse before it can run.
type Step struct {
	Name      string
	DependsOn []string
}

// Order returns the steps in a dependency-respecting execution order.
// Among ready steps the original declaration order is preserved, so the
// schedule (and therefore surrogate key assignment) is deterministic for
// a fixed set of steps. Unknown dependencies and cycles are errors.
func Order(steps []Step) ([]string, error) {
	index := make(map[string]int, len(steps))
	for i, s := range steps {
		if _, dup := index[s.Name]; dup {
			return nil, fmt.Errorf("duplicate step %s", s.Name)
		}
		index[s.Name] = i
	}

	pending := make(map[string][]string, len(steps))
	for _, s := range steps {
		for _, dep := range s.DependsOn {
			if _, ok := index[dep]; !ok {
				return nil, fmt.Errorf("step %s depends on unknown step %s", s.Name, dep)
			}
		}
		pending[s.Name] = append([]string(nil), s.DependsOn...)
	}

	order := make([]string, 0, len(steps))
	done := make(map[string]bool, len(steps))

	for len(order) < len(steps) {
		progressed := false
		for _, s := range steps {
			if done[s.Name] {
				continue
			}
			ready := true
			for _, dep := range pending[s.Name] {
				if !done[dep] {
					ready = false
					break
				}
			}
			if ready {
				order = append(order, s.Name)
				done[s.Name] = true
				progressed = true
			}
		}
		if !progressed {
			return nil, fmt.Errorf("dependency cycle among remaining steps")
		}
	}

	return order, nil
}
