package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"fk-bigint/internal/report"
	"fk-bigint/internal/schema"

	"gopkg.in/yaml.v3"
)

func sampleFindings() []schema.Finding {
	mk := func(line int, column, ref string) schema.Finding {
		loc := schema.Location{File: "db/schema.rb", Line: line, Column: 5, Offset: line * 10, EndOffset: line*10 + 5}
		return schema.Finding{
			Location:        loc,
			Message:         schema.MismatchMessage,
			Table:           "device_settings",
			Column:          column,
			ReferencedTable: ref,
			Fix:             &schema.Fix{From: "integer", To: "bigint", Span: loc},
		}
	}
	return []schema.Finding{mk(21, "application_id", "applications"), mk(23, "user_id", "users")}
}

func TestNew(t *testing.T) {
	findings := sampleFindings()
	r := report.New(1, findings, findings[1:])

	if r.Summary.Inspected != 1 || r.Summary.Offenses != 2 || r.Summary.Corrected != 1 {
		t.Errorf("Unexpected summary %+v", r.Summary)
	}
	if r.Uncorrected() != 1 {
		t.Errorf("Expected 1 uncorrected finding, got %d", r.Uncorrected())
	}
	if r.Findings[0].Corrected || !r.Findings[1].Corrected {
		t.Errorf("Corrected flags not matched by location: %+v", r.Findings)
	}
	if !r.Findings[0].Correctable {
		t.Errorf("Expected findings with a fix to be correctable")
	}
}

func TestWrite_Text(t *testing.T) {
	findings := sampleFindings()
	var buf bytes.Buffer
	if err := report.Write(&buf, report.FormatText, report.New(1, findings, findings[1:]), report.Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := "db/schema.rb:21:5: C: [Correctable] " + schema.MismatchMessage + " (device_settings.application_id -> applications)\n" +
		"db/schema.rb:23:5: C: [Corrected] " + schema.MismatchMessage + " (device_settings.user_id -> users)\n" +
		"\n" +
		"1 file inspected, 2 offenses detected, 1 offense corrected\n"
	if got := buf.String(); got != want {
		t.Errorf("\ngot:\n%s\nwanted:\n%s", got, want)
	}
}

func TestWrite_TextClean(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Write(&buf, "", report.New(3, nil, nil), report.Options{Unit: "table"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if got := buf.String(); got != "3 tables inspected, no offenses detected\n" {
		t.Errorf("Unexpected output %q", got)
	}
}

func TestWrite_TextWithoutLine(t *testing.T) {
	f := sampleFindings()[0]
	f.Location = schema.Location{File: "public.device_settings.application_id"}
	f.Fix = nil

	var buf bytes.Buffer
	if err := report.Write(&buf, report.FormatText, report.New(1, []schema.Finding{f}, nil), report.Options{Unit: "table"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "public.device_settings.application_id: C: Use bigint") {
		t.Errorf("Unexpected output %q", buf.String())
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Write(&buf, report.FormatJSON, report.New(1, sampleFindings(), nil), report.Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var got report.Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Summary.Offenses != 2 || got.Findings[1].ColumnName != "user_id" || got.Findings[1].Line != 23 {
		t.Errorf("Unexpected decoded report %+v", got)
	}
	if !strings.Contains(buf.String(), `"referenced_table": "applications"`) {
		t.Errorf("Expected snake_case keys, got %s", buf.String())
	}
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Write(&buf, "YAML", report.New(1, sampleFindings(), nil), report.Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var got report.Report
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if got.Summary.Inspected != 1 || got.Findings[0].ReferencedTable != "applications" {
		t.Errorf("Unexpected decoded report %+v", got)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := report.Write(&buf, "xml", report.New(0, nil, nil), report.Options{}); err == nil {
		t.Errorf("expected an error, did not receive one")
	}
}
