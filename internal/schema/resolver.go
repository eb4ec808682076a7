package schema

// MismatchMessage is attached to every finding.
const MismatchMessage = "Use bigint for a foreign key column when the referenced table's primary key is bigint."

// Check returns a finding for every `integer` foreign-key column of def
// whose referenced table is recorded in reg with a bigint key. Tables that
// are not (yet) in reg are not resolved.
func Check(def *TableDefinition, reg *Registry) []Finding {
	if def == nil || def.Name == "" {
		return nil
	}

	var findings []Finding
	for _, col := range def.Columns {
		if f, ok := checkColumn(def, col, reg); ok {
			findings = append(findings, f)
		}
	}
	return findings
}

func checkColumn(def *TableDefinition, col *ColumnDeclaration, reg *Registry) (Finding, bool) {
	if col == nil || col.TypeTag != string(PKInteger) {
		return Finding{}, false
	}
	if col.Name == "" || !IsForeignKeyName(col.Name) {
		return Finding{}, false
	}

	referenced := InferTable(col.Name)
	pk, ok := reg.Lookup(referenced)
	if !ok || pk != PKBigint {
		return Finding{}, false
	}

	return Finding{
		Location:        col.Location,
		Message:         MismatchMessage,
		Table:           def.Name,
		Column:          col.Name,
		ReferencedTable: referenced,
		Fix: &Fix{
			From: string(PKInteger),
			To:   string(PKBigint),
			Span: col.Location,
		},
	}, true
}
