package dialect

// Dialect abstracts database-specific catalog queries.
//
// Every query takes the schema name as its single bind parameter.
type Dialect interface {
	// Metadata Queries (Schema Introspection)
	GetTablesQuery(schema string) string      // TABLE_NAME
	GetColumnsQuery(schema string) string     // TABLE_NAME, COLUMN_NAME, DATA_TYPE
	GetPrimaryKeysQuery(schema string) string // TABLE_NAME, COLUMN_NAME

	// Helpers
	NormalizeType(sqlType string) string
	NormalizeName(name string) string
	GetSchemaName(input string) string
}
