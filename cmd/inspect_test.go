package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"fk-bigint/internal/schema"
)

func TestWithTimeout(t *testing.T) {
	var tests = []struct {
		name         string
		d            time.Duration
		wantDeadline bool
	}{
		{"Zero Disables", 0, false},
		{"Negative Disables", -time.Second, false},
		{"Positive Bounds", time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := withTimeout(context.Background(), tt.d)
			defer cancel()

			if _, ok := ctx.Deadline(); ok != tt.wantDeadline {
				t.Errorf("got deadline %v, wanted %v", ok, tt.wantDeadline)
			}
			if err := ctx.Err(); err != nil {
				t.Errorf("Expected a live context, got %v", err)
			}
		})
	}
}

func TestPrintDependencyOrder(t *testing.T) {
	fk := func(name string) *schema.ColumnDeclaration {
		return &schema.ColumnDeclaration{TypeTag: "bigint", Name: name}
	}
	defs := []*schema.TableDefinition{
		{Name: "order_items", Columns: []*schema.ColumnDeclaration{fk("order_id")}},
		{Name: "orders", Columns: []*schema.ColumnDeclaration{fk("user_id")}},
		{Name: "users"},
	}

	var out bytes.Buffer
	printDependencyOrder(&out, defs)

	want := []string{
		"[01] users (Dependencies: [])",
		"[02] orders (Dependencies: [users])",
		"[03] order_items (Dependencies: [orders])",
	}
	got := out.String()
	for _, line := range want {
		if !strings.Contains(got, line) {
			t.Errorf("Expected %q in output:\n%s", line, got)
		}
	}
	if strings.Index(got, want[0]) > strings.Index(got, want[2]) {
		t.Errorf("Expected users before order_items:\n%s", got)
	}
}
