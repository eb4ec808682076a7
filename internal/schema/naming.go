package schema

import "strings"

const foreignKeySuffix = "_id"

// IsForeignKeyName reports whether a column follows the `<table>_id`
// naming convention.
func IsForeignKeyName(column string) bool {
	return strings.HasSuffix(column, foreignKeySuffix)
}

// InferTable guesses the table a foreign-key column points at:
// company_id -> companies, user_id -> users. The column does not need the
// _id suffix (application_ref -> application_refs). There is no irregular
// plural list, so person_id -> persons.
func InferTable(column string) string {
	base := strings.TrimSuffix(column, foreignKeySuffix)
	if strings.HasSuffix(base, "y") {
		return strings.TrimSuffix(base, "y") + "ies"
	}
	return base + "s"
}
