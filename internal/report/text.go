package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	location  func(...string) string
	severity  func(...string) string
	corrected func(...string) string
	clean     func(...string) string
}

func plain(s ...string) string { return strings.Join(s, " ") }

func newPalette(w io.Writer, color bool) palette {
	if !color {
		return palette{plain, plain, plain, plain}
	}
	r := lipgloss.NewRenderer(w)
	return palette{
		location:  r.NewStyle().Foreground(lipgloss.Color("6")).Render,
		severity:  r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true).Render,
		corrected: r.NewStyle().Foreground(lipgloss.Color("2")).Render,
		clean:     r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true).Render,
	}
}

// writeText prints one line per finding in the
// `path:line:col: C: [Correctable] message` layout, then a summary.
func writeText(w io.Writer, r *Report, opts Options) error {
	p := newPalette(w, opts.Color)

	for _, rec := range r.Findings {
		loc := rec.File
		if rec.Line > 0 {
			loc = fmt.Sprintf("%s:%d:%d", rec.File, rec.Line, rec.Column)
		}

		tag := ""
		switch {
		case rec.Corrected:
			tag = p.corrected("[Corrected] ")
		case rec.Correctable:
			tag = "[Correctable] "
		}

		if _, err := fmt.Fprintf(w, "%s: %s: %s%s (%s.%s -> %s)\n",
			p.location(loc), p.severity("C"), tag, rec.Message,
			rec.Table, rec.ColumnName, rec.ReferencedTable); err != nil {
			return err
		}
	}

	unit := opts.Unit
	if unit == "" {
		unit = "file"
	}
	line := fmt.Sprintf("%s inspected, ", plural(r.Summary.Inspected, unit))
	if r.Summary.Offenses == 0 {
		line += p.clean("no offenses") + " detected"
	} else {
		line += plural(r.Summary.Offenses, "offense") + " detected"
	}
	if r.Summary.Corrected > 0 {
		line += ", " + p.corrected(plural(r.Summary.Corrected, "offense")+" corrected")
	}

	if len(r.Findings) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
