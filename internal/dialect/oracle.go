package dialect

import "strings"

type OracleDialect struct{}

// USER_* views list the current user's objects, so the schema bind is only
// consumed by a dummy clause to keep the calling convention uniform.

func (d *OracleDialect) GetTablesQuery(schema string) string {
	return `SELECT TABLE_NAME FROM USER_TABLES WHERE :1 IS NOT NULL ORDER BY TABLE_NAME`
}

func (d *OracleDialect) GetColumnsQuery(schema string) string {
	// NUMBER(p, 0) is sized by precision: up to 10 digits fits a 4 byte
	// integer, up to 19 an 8 byte one.
	return `
SELECT
    t.TABLE_NAME,
    t.COLUMN_NAME,
    CASE
        WHEN t.DATA_TYPE = 'NUMBER' AND COALESCE(t.DATA_SCALE, 0) = 0 AND t.DATA_PRECISION <= 10 THEN 'INTEGER'
        WHEN t.DATA_TYPE = 'NUMBER' AND COALESCE(t.DATA_SCALE, 0) = 0 AND t.DATA_PRECISION <= 19 THEN 'BIGINT'
        ELSE t.DATA_TYPE
    END
FROM USER_TAB_COLUMNS t
WHERE :1 IS NOT NULL
ORDER BY t.TABLE_NAME, t.COLUMN_ID`
}

func (d *OracleDialect) GetPrimaryKeysQuery(schema string) string {
	return `
SELECT cc.TABLE_NAME, cc.COLUMN_NAME
FROM USER_CONS_COLUMNS cc
JOIN USER_CONSTRAINTS uc ON cc.CONSTRAINT_NAME = uc.CONSTRAINT_NAME
WHERE uc.CONSTRAINT_TYPE = 'P' AND :1 IS NOT NULL
ORDER BY cc.TABLE_NAME, cc.POSITION`
}

func (d *OracleDialect) NormalizeType(sqlType string) string {
	return DefaultNormalizeType(sqlType)
}

// NormalizeName lowercases the upper-case identifiers Oracle stores for
// unquoted names so that foreign-key naming rules apply.
func (d *OracleDialect) NormalizeName(name string) string {
	return strings.ToLower(name)
}

func (d *OracleDialect) GetSchemaName(input string) string {
	if input == "" {
		return "USER"
	}
	return strings.ToUpper(input)
}
