package harness

import (
	"github.com/roach88/locality/internal/bench"
	"github.com/roach88/locality/internal/container"
	"github.com/roach88/locality/internal/kernel"
	"github.com/roach88/locality/internal/sweep"
)

// Cell is one measured (kind, mode, size) combination.
type Cell struct {
	Kind         container.Kind
	Mode         kernel.Mode
	Size         sweep.Size
	Distribution *bench.Distribution
}

// ID returns the identity the cell was registered under.
func (c Cell) ID() bench.CellID {
	return cellID(c.Kind, c.Mode, c.Size)
}

func cellID(kind container.Kind, mode kernel.Mode, size sweep.Size) bench.CellID {
	return bench.CellID{
		Kind:     kind.String(),
		Mode:     mode.String(),
		Size:     size.Label(),
		Bytes:    size.Bytes,
		Elements: size.Elements,
	}
}

// Result is the outcome of a sweep.
type Result struct {
	// Sizes lists the sizes visited, ascending.
	Sizes []sweep.Size

	// Cells lists every cell in visit order.
	Cells []Cell
}

// NewResult creates an empty result.
func NewResult() *Result {
	return &Result{
		Sizes: []sweep.Size{},
		Cells: []Cell{},
	}
}

// CellsAt returns the cells measured at a byte budget, in visit order.
func (r *Result) CellsAt(bytes uint64) []Cell {
	var out []Cell
	for _, c := range r.Cells {
		if c.Size.Bytes == bytes {
			out = append(out, c)
		}
	}
	return out
}

// TraceEvent is one visited cell in a golden trace.
type TraceEvent struct {
	Seq      int    `json:"seq"`
	Size     string `json:"size"`
	Bytes    uint64 `json:"bytes"`
	Elements int    `json:"elements"`
	Cell     string `json:"cell"`
	Result   string `json:"result,omitempty"`
}

// Trace flattens the visit order into events numbered from 1.
func (r *Result) Trace() []TraceEvent {
	events := make([]TraceEvent, len(r.Cells))
	for i, c := range r.Cells {
		id := c.ID()
		events[i] = TraceEvent{
			Seq:      i + 1,
			Size:     id.Size,
			Bytes:    id.Bytes,
			Elements: id.Elements,
			Cell:     id.Name(),
		}
		if c.Distribution != nil {
			events[i].Result = c.Distribution.Result
		}
	}
	return events
}
