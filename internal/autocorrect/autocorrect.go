// Package autocorrect applies the text fixes attached to findings.
package autocorrect

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"fk-bigint/internal/schema"
)

// Apply returns src with every applicable fix applied, and the findings
// whose fix was applied. A fix is skipped when its span lies outside src,
// overlaps a fix applied before it, or does not contain the text to replace.
// Fixes are applied from the end of src backwards so offsets stay valid.
func Apply(src []byte, findings []schema.Finding) ([]byte, []schema.Finding) {
	var pending []schema.Finding
	for _, f := range findings {
		if f.Fix != nil {
			pending = append(pending, f)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Fix.Span.Offset > pending[j].Fix.Span.Offset
	})

	out := append([]byte(nil), src...)
	var applied []schema.Finding
	limit := len(src)
	for _, f := range pending {
		span := f.Fix.Span
		if span.Offset < 0 || span.EndOffset > limit || span.Offset >= span.EndOffset {
			continue
		}
		i := bytes.Index(out[span.Offset:span.EndOffset], []byte(f.Fix.From))
		if i < 0 {
			continue
		}
		at := span.Offset + i
		out = append(out[:at], append([]byte(f.Fix.To), out[at+len(f.Fix.From):]...)...)
		limit = span.Offset
		applied = append(applied, f)
	}

	// Report in source order.
	sort.SliceStable(applied, func(i, j int) bool {
		return applied[i].Location.Offset < applied[j].Location.Offset
	})
	return out, applied
}

// ApplyFile rewrites path in place when at least one fix applies, keeping
// the file mode.
func ApplyFile(path string, findings []schema.Finding) ([]schema.Finding, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	out, applied := Apply(src, findings)
	if len(applied) == 0 {
		return nil, nil
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return applied, nil
}
