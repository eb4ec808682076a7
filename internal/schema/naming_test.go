package schema_test

import (
	"testing"

	"fk-bigint/internal/schema"
)

func TestInferTable(t *testing.T) {
	var tests = []struct {
		column string
		table  string
	}{
		{"application_id", "applications"},
		{"user_id", "users"},
		{"company_id", "companies"},
		{"order_id", "orders"},
		{"category_id", "categories"},
		{"key_id", "keies"},
		{"person_id", "persons"},
		{"application_ref", "application_refs"},
		{"company", "companies"},
		{"y", "ies"},
		{"_id", "s"},
		{"", "s"},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			if got := schema.InferTable(tt.column); got != tt.table {
				t.Errorf("InferTable(%q) = %q, wanted %q", tt.column, got, tt.table)
			}
		})
	}
}

func TestIsForeignKeyName(t *testing.T) {
	var tests = []struct {
		column string
		want   bool
	}{
		{"user_id", true},
		{"_id", true},
		{"id", false},
		{"user_ids", false},
		{"userid", false},
		{"user_ID", false},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			if got := schema.IsForeignKeyName(tt.column); got != tt.want {
				t.Errorf("IsForeignKeyName(%q) = %v, wanted %v", tt.column, got, tt.want)
			}
		})
	}
}
