package schema

import "sort"

// PKType is the width of a table's primary key.
type PKType string

const (
	PKInteger PKType = "integer"
	PKBigint  PKType = "bigint"
)

// DefaultPKType is assumed for tables that do not declare `id:`.
const DefaultPKType = PKBigint

// Registry maps table name to primary-key type for one analysis pass.
// Create a new one per script; entries from a previous script would make
// references to tables missing from the current one resolve.
type Registry struct {
	types map[string]PKType
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]PKType)}
}

// Record stores the primary-key type of def under its name, replacing any
// earlier entry for the same name. Definitions without a name are ignored.
func (r *Registry) Record(def *TableDefinition) {
	if def == nil || def.Name == "" {
		return
	}
	r.Set(def.Name, ExtractPKType(def))
}

// Set writes an entry directly, replacing any earlier one.
func (r *Registry) Set(table string, t PKType) {
	r.types[table] = t
}

func (r *Registry) Lookup(table string) (PKType, bool) {
	t, ok := r.types[table]
	return t, ok
}

func (r *Registry) Len() int {
	return len(r.types)
}

// Tables returns the recorded table names in sorted order.
func (r *Registry) Tables() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExtractPKType returns the type of the first `id` option carrying a
// recognized symbol value, or DefaultPKType.
func ExtractPKType(def *TableDefinition) PKType {
	for _, opt := range def.Options {
		if t, ok := pkTypeFromOption(opt); ok {
			return t
		}
	}
	return DefaultPKType
}

func pkTypeFromOption(opt Option) (PKType, bool) {
	if opt.Key != "id" || opt.Value.Kind != ValueSymbol {
		return "", false
	}
	switch PKType(opt.Value.Text) {
	case PKInteger:
		return PKInteger, true
	case PKBigint:
		return PKBigint, true
	}
	return "", false
}
