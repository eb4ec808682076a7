// Package report renders findings for people (text) and tools (json, yaml).
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fk-bigint/internal/schema"

	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted values of the --format flag.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Record is one finding flattened for output.
type Record struct {
	File            string `json:"file" yaml:"file"`
	Line            int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column          int    `json:"column,omitempty" yaml:"column,omitempty"`
	Table           string `json:"table" yaml:"table"`
	ColumnName      string `json:"column_name" yaml:"column_name"`
	ReferencedTable string `json:"referenced_table" yaml:"referenced_table"`
	Message         string `json:"message" yaml:"message"`
	Correctable     bool   `json:"correctable" yaml:"correctable"`
	Corrected       bool   `json:"corrected" yaml:"corrected"`
}

type Summary struct {
	Inspected int `json:"inspected" yaml:"inspected"`
	Offenses  int `json:"offenses" yaml:"offenses"`
	Corrected int `json:"corrected" yaml:"corrected"`
}

type Report struct {
	Summary  Summary  `json:"summary" yaml:"summary"`
	Findings []Record `json:"findings" yaml:"findings"`
}

// Options controls the text format.
type Options struct {
	Color bool
	Unit  string // what was inspected: "file", "table", ...
}

// New builds a report. corrected holds the findings whose fix was applied.
func New(inspected int, findings, corrected []schema.Finding) *Report {
	fixed := make(map[schema.Location]bool, len(corrected))
	for _, f := range corrected {
		fixed[f.Location] = true
	}

	r := &Report{
		Summary:  Summary{Inspected: inspected, Offenses: len(findings)},
		Findings: make([]Record, 0, len(findings)),
	}
	for _, f := range findings {
		rec := Record{
			File:            f.Location.File,
			Line:            f.Location.Line,
			Column:          f.Location.Column,
			Table:           f.Table,
			ColumnName:      f.Column,
			ReferencedTable: f.ReferencedTable,
			Message:         f.Message,
			Correctable:     f.Fix != nil,
			Corrected:       fixed[f.Location],
		}
		if rec.Corrected {
			r.Summary.Corrected++
		}
		r.Findings = append(r.Findings, rec)
	}
	return r
}

// Uncorrected is the number of findings left after fixes were applied.
func (r *Report) Uncorrected() int {
	return r.Summary.Offenses - r.Summary.Corrected
}

// Write renders r to w in the given format.
func Write(w io.Writer, format string, r *Report, opts Options) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return writeText(w, r, opts)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %s (want one of %s)", format, strings.Join(Formats, ", "))
	}
}
