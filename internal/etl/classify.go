//-------------------------------------------------------------------------
//
// FastAndSafe Courier Data Warehouse
//
// Copyright (c) 2025 - 2026, FastAndSafe Logistics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package etl

import "strings"

// Rule maps a set of keywords to a category. Matching is case-insensitive
// substring containment.
type Rule struct {
	Category string
	Keywords []string
}

// Classifier assigns a category to free text by scanning an ordered rule
// table. The first matching rule wins; text matching no rule falls back to
// Default. Rule order is part of the contract.
type Classifier struct {
	Rules   []Rule
	Default string
}

// Classify returns the category for the given text.
func (c Classifier) Classify(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range c.Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return rule.Category
			}
		}
	}
	return c.Default
}
