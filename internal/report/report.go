package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/locality/internal/bench"
	"github.com/roach88/locality/internal/container"
	"github.com/roach88/locality/internal/kernel"
)

// Format is an output format.
type Format string

const (
	FormatText       Format = "text"
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
	FormatPrometheus Format = "prometheus"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatPrometheus}
}

// ParseFormat resolves a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if slices.Contains(Formats(), f) {
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (valid: text, json, yaml, prometheus)", s)
}

// CellName is the display name of a cell, e.g. "Deque (by value)".
func CellName(kind container.Kind, mode kernel.Mode) string {
	return fmt.Sprintf("%s (%s)", kind, mode)
}

// Baseline is the cell every other cell is compared against.
var Baseline = CellName(container.KindSlice, kernel.ByReference)

// Document is the rendered unit: a report plus an optional comparison.
type Document struct {
	RunID      string         `json:"run_id" yaml:"run_id"`
	Config     bench.Config   `json:"config" yaml:"config"`
	Groups     []*bench.Group `json:"groups" yaml:"groups"`
	Comparison []Ranking      `json:"comparison,omitempty" yaml:"comparison,omitempty"`
}

// NewDocument wraps r, computing the comparison when compare is set.
func NewDocument(r *bench.Report, compare bool) *Document {
	doc := &Document{
		RunID:  r.RunID,
		Config: r.Config,
		Groups: r.Groups,
	}
	if compare {
		doc.Comparison = Compare(r)
	}
	return doc
}

// Render writes doc to w in format f.
func Render(w io.Writer, doc *Document, f Format) error {
	switch f {
	case FormatText:
		return renderText(w, doc)
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(doc)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return err
		}
		return encoder.Close()
	case FormatPrometheus:
		return renderPrometheus(w, doc)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}
