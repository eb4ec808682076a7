package schema

import (
	"fk-bigint/internal/logger"
)

// ---------------------------------------------------------------------
// 1. Script Analysis (declaration order)
// ---------------------------------------------------------------------

// Analyze runs one forward pass over a schema script: each table is
// recorded and then its columns are checked against everything recorded so
// far. A reference to a table defined further down is therefore not
// resolved. Every call uses a fresh registry.
func Analyze(defs []*TableDefinition) []Finding {
	reg := NewRegistry()
	var findings []Finding
	for _, def := range defs {
		reg.Record(def)
		findings = append(findings, Check(def, reg)...)
	}
	logRegistry(reg)
	return findings
}

// ---------------------------------------------------------------------
// 2. Catalog Analysis (no declaration order)
// ---------------------------------------------------------------------

// AnalyzeCatalog is used for tables read from a live database, where there
// is no declaration order: every table is recorded before any is checked.
// onProgress, if set, is called once per checked table.
func AnalyzeCatalog(defs []*TableDefinition, onProgress func()) []Finding {
	reg := NewRegistry()
	for _, def := range defs {
		reg.Record(def)
	}
	logRegistry(reg)

	var findings []Finding
	for _, def := range defs {
		findings = append(findings, Check(def, reg)...)
		if onProgress != nil {
			onProgress()
		}
	}
	return findings
}

func logRegistry(reg *Registry) {
	if !logger.Verbose() {
		return
	}
	logger.Debug("registry: %d tables", reg.Len())
	for _, name := range reg.Tables() {
		t, _ := reg.Lookup(name)
		logger.Debug("  %s: %s", name, t)
	}
}

// ---------------------------------------------------------------------
// 3. Sorting Algorithm (Topological / Greedy)
// ---------------------------------------------------------------------

// Dependencies lists the known tables that def points at through `_id`
// columns of any type, in column order and without duplicates.
// Self references are left out.
func Dependencies(def *TableDefinition, known map[string]bool) []string {
	var deps []string
	seen := make(map[string]bool)
	for _, col := range def.Columns {
		if col == nil || !IsForeignKeyName(col.Name) {
			continue
		}
		ref := InferTable(col.Name)
		if ref == def.Name || !known[ref] || seen[ref] {
			continue
		}
		seen[ref] = true
		deps = append(deps, ref)
	}
	return deps
}

// SortTablesByFKCount sorts tables by dependency order.
// It handles circular dependencies by using a scoring system.
func SortTablesByFKCount(tables []*TableDefinition) []*TableDefinition {
	known := make(map[string]bool)
	for _, t := range tables {
		known[t.Name] = true
	}
	deps := make(map[*TableDefinition][]string, len(tables))
	byName := make(map[string]*TableDefinition, len(tables))
	for _, t := range tables {
		deps[t] = Dependencies(t, known)
		byName[t.Name] = t
	}

	var sorted []*TableDefinition
	processed := make(map[string]bool)

	// Keep looping until all tables are processed
	for len(sorted) < len(tables) {
		added := false

		// Pass 1: Add tables whose dependencies are fully satisfied
		for _, t := range tables {
			if processed[t.Name] {
				continue
			}

			allDepsProcessed := true
			for _, depName := range deps[t] {
				if !processed[depName] {
					allDepsProcessed = false
					break
				}
			}

			if allDepsProcessed {
				sorted = append(sorted, t)
				processed[t.Name] = true
				added = true
			}
		}

		// Pass 2: If no table added, we have a cycle. Break it using heuristic score.
		if !added {
			var bestTable *TableDefinition
			bestScore := -999999

			for _, t := range tables {
				if processed[t.Name] {
					continue
				}

				// Penalty: unprocessed dependencies. Bonus: taking part in a 2-cycle.
				score := 0
				unprocessedDeps := 0
				for _, dep := range deps[t] {
					if !processed[dep] {
						unprocessedDeps++
					}
				}
				score -= unprocessedDeps * 100

				if isCircular(t, deps, byName, processed) {
					score += 500
				}

				// Tie-breaker: Name (Deterministic)
				if score > bestScore {
					bestScore = score
					bestTable = t
				} else if score == bestScore && (bestTable == nil || t.Name > bestTable.Name) {
					bestTable = t
				}
			}

			if bestTable == nil {
				logger.Error("sort: remaining tables cannot be ordered")
				break
			}
			sorted = append(sorted, bestTable)
			processed[bestTable.Name] = true
			logger.Debug("sort: breaking circular dependency at %s (score %d)", bestTable.Name, bestScore)
		}
	}

	return sorted
}

// isCircular reports whether an unprocessed dependency of t depends on t.
func isCircular(t *TableDefinition, deps map[*TableDefinition][]string, byName map[string]*TableDefinition, processed map[string]bool) bool {
	for _, depName := range deps[t] {
		if processed[depName] {
			continue
		}
		cand, ok := byName[depName]
		if !ok {
			continue
		}
		for _, candDep := range deps[cand] {
			if candDep == t.Name {
				return true
			}
		}
	}
	return false
}
