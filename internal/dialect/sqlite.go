package dialect

import "strings"

type SqliteDialect struct{}

func (d *SqliteDialect) GetTablesQuery(schema string) string {
	return `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND ? IS NOT NULL ORDER BY name`
}

func (d *SqliteDialect) GetColumnsQuery(schema string) string {
	return `SELECT m.name, p.name, p.type
FROM sqlite_master m
JOIN pragma_table_info(m.name) p
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%' AND ? IS NOT NULL
ORDER BY m.name, p.cid`
}

func (d *SqliteDialect) GetPrimaryKeysQuery(schema string) string {
	return `SELECT m.name, p.name
FROM sqlite_master m
JOIN pragma_table_info(m.name) p
WHERE m.type = 'table' AND p.pk > 0 AND ? IS NOT NULL
ORDER BY m.name, p.pk`
}

// NormalizeType drops length modifiers such as "integer(8)"; SQLite keeps
// whatever type text the DDL used.
func (d *SqliteDialect) NormalizeType(sqlType string) string {
	t := DefaultNormalizeType(sqlType)
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}

func (d *SqliteDialect) NormalizeName(name string) string {
	return DefaultNormalizeName(name)
}

func (d *SqliteDialect) GetSchemaName(input string) string {
	if input == "" {
		return "main"
	}
	return input
}
