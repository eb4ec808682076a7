package schema

import (
	"context"
	"database/sql"
	"fmt"

	"fk-bigint/internal/dialect"
)

// Introspect reads the tables of a live database and turns each one into a
// TableDefinition, the same shape the schema script parser produces:
//   - a single-column primary key named "id" becomes an `id:` option
//     carrying the column's type tag;
//   - a primary key on another column becomes a `primary_key:` option;
//   - tables without a primary key get `id: false`.
//
// Locations name the table as "<schema>.<table>"; there is no source text
// behind them.
func Introspect(ctx context.Context, db *sql.DB, d dialect.Dialect, schemaName string) ([]*TableDefinition, error) {
	target := d.GetSchemaName(schemaName)

	tableMap := make(map[string]*TableDefinition)
	var tables []*TableDefinition

	// --- Step 1: Fetch Tables ---
	rows, err := db.QueryContext(ctx, d.GetTablesQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		name = d.NormalizeName(name)
		t := &TableDefinition{
			Name:     name,
			Location: Location{File: target + "." + name},
		}
		tableMap[name] = t
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	// --- Step 2: Fetch Columns ---
	colRows, err := db.QueryContext(ctx, d.GetColumnsQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer colRows.Close()

	columnTypes := make(map[string]map[string]string)
	for colRows.Next() {
		var tName, cName, dType sql.NullString
		if err := colRows.Scan(&tName, &cName, &dType); err != nil {
			return nil, fmt.Errorf("failed to scan column (table: %s): %w", tName.String, err)
		}
		if !tName.Valid || !cName.Valid {
			continue // Skip invalid rows
		}

		t, ok := tableMap[d.NormalizeName(tName.String)]
		if !ok {
			continue
		}
		colName := d.NormalizeName(cName.String)
		typeTag := dialect.TypeTag(d.NormalizeType(dType.String))
		t.Columns = append(t.Columns, &ColumnDeclaration{
			TypeTag:  typeTag,
			Name:     colName,
			Location: Location{File: t.Location.File + "." + colName},
		})
		if columnTypes[t.Name] == nil {
			columnTypes[t.Name] = make(map[string]string)
		}
		columnTypes[t.Name][colName] = typeTag
	}
	if err := colRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}

	// --- Step 3: Fetch Primary Keys ---
	pkRows, err := db.QueryContext(ctx, d.GetPrimaryKeysQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query primary keys: %w", err)
	}
	defer pkRows.Close()

	pkColumns := make(map[string][]string)
	for pkRows.Next() {
		var tName, cName sql.NullString
		if err := pkRows.Scan(&tName, &cName); err != nil {
			return nil, fmt.Errorf("failed to scan primary key: %w", err)
		}
		if !tName.Valid || !cName.Valid {
			continue
		}
		name := d.NormalizeName(tName.String)
		pkColumns[name] = append(pkColumns[name], d.NormalizeName(cName.String))
	}
	if err := pkRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating primary keys: %w", err)
	}

	for _, t := range tables {
		t.Options = primaryKeyOptions(pkColumns[t.Name], columnTypes[t.Name])
	}

	return tables, nil
}

func primaryKeyOptions(pk []string, types map[string]string) []Option {
	switch {
	case len(pk) == 0:
		return []Option{{Key: "id", Value: Value{Kind: ValueLiteral, Text: "false"}}}
	case len(pk) == 1 && pk[0] == "id":
		return []Option{{Key: "id", Value: Value{Kind: ValueSymbol, Text: types["id"]}}}
	case len(pk) == 1:
		return []Option{{Key: "primary_key", Value: Value{Kind: ValueString, Text: pk[0]}}}
	default:
		return []Option{{Key: "primary_key", Value: Value{Kind: ValueNested, Text: fmt.Sprintf("%q", pk)}}}
	}
}
