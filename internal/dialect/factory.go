package dialect

import "strings"

// GetDialect returns the appropriate Dialect implementation based on driver name.
func GetDialect(driver string) Dialect {
	switch NormalizeDriver(driver) {
	case "postgres":
		return &PostgresDialect{}
	case "sqlserver":
		return &MSSQLDialect{}
	case "oracle":
		return &OracleDialect{}
	case "sqlite":
		return &SqliteDialect{}
	default: // mysql
		return &MysqlDialect{}
	}
}

// NormalizeDriver maps common aliases to the database/sql driver names
// registered by the drivers this tool links.
func NormalizeDriver(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "postgresql", "pg", "postgres", "pgx":
		return "postgres"
	case "mysql", "mariadb":
		return "mysql"
	case "sqlite", "sqlite3", "file":
		return "sqlite"
	case "mssql", "sqlserver", "azuresql":
		return "sqlserver"
	case "godror", "oracle", "ora", "oci8":
		return "oracle"
	default:
		return strings.ToLower(d)
	}
}

// Ensure interface implementation
var _ Dialect = (*MysqlDialect)(nil)
var _ Dialect = (*PostgresDialect)(nil)
var _ Dialect = (*MSSQLDialect)(nil)
var _ Dialect = (*OracleDialect)(nil)
var _ Dialect = (*SqliteDialect)(nil)
