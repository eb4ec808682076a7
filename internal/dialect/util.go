package dialect

import (
	"strings"
)

// DefaultNormalizeType is a default implementation for type normalization (lowercase).
func DefaultNormalizeType(sqlType string) string {
	return strings.ToLower(strings.TrimSpace(sqlType))
}

// DefaultNormalizeName is a default implementation for identifiers (identity).
func DefaultNormalizeName(name string) string {
	return name
}

// DefaultGetSchemaName is a default implementation for Getting Schema Name (identity).
func DefaultGetSchemaName(input string) string {
	return input
}

// TypeTag maps a normalized column type onto the type tags used in schema
// scripts. Four byte integers become "integer", eight byte ones "bigint";
// anything else is returned unchanged.
func TypeTag(normalized string) string {
	switch normalized {
	case "int", "integer", "int4", "serial", "serial4":
		return "integer"
	case "bigint", "int8", "bigserial", "serial8":
		return "bigint"
	default:
		return normalized
	}
}
