package bench

import (
	"fmt"
	"time"
)

// Prepare builds one fresh input and returns the operation bound to it.
// Only the returned operation is timed.
type Prepare func() func() float64

// Trial adapts a typed setup and operation into a Prepare.
func Trial[T any](setup func() T, op func(T) float64) Prepare {
	return func() func() float64 {
		input := setup()
		return func() float64 { return op(input) }
	}
}

// Runner is the measurement collaborator the harness drives.
type Runner interface {
	// LabelGroup starts a new named group; later trials belong to it.
	LabelGroup(name string)

	// SetThroughputHint records the bytes each subsequent operation processes.
	SetThroughputHint(bytes uint64)

	// RunTimedTrial samples one cell.
	RunTimedTrial(id CellID, prepare Prepare) (*Distribution, error)
}

// CellID identifies one measurement cell.
type CellID struct {
	Kind     string `json:"kind" yaml:"kind"`
	Mode     string `json:"mode" yaml:"mode"`
	Size     string `json:"size" yaml:"size"`
	Bytes    uint64 `json:"bytes" yaml:"bytes"`
	Elements int    `json:"elements" yaml:"elements"`
}

// Name is the cell's display name, e.g. "Slice (by reference)".
func (id CellID) Name() string {
	return fmt.Sprintf("%s (%s)", id.Kind, id.Mode)
}

func (id CellID) String() string {
	return id.Name() + " @ " + id.Size
}

// Throughput is derived from the median per-operation duration.
type Throughput struct {
	BytesPerSecond    float64 `json:"bytes_per_second" yaml:"bytes_per_second"`
	ElementsPerSecond float64 `json:"elements_per_second" yaml:"elements_per_second"`
}

// Distribution is the sampled result of one cell.
type Distribution struct {
	ID CellID `json:"id" yaml:"id"`

	// Samples is the number of per-operation durations behind Stats.
	Samples int `json:"samples" yaml:"samples"`

	// Outliers is the number of samples dropped by the IQR fence.
	Outliers int `json:"outliers" yaml:"outliers"`

	// ThroughputBytes is the hint in effect when the cell ran.
	ThroughputBytes uint64 `json:"throughput_bytes" yaml:"throughput_bytes"`

	Stats      Stats      `json:"stats" yaml:"stats"`
	Throughput Throughput `json:"throughput" yaml:"throughput"`

	// Result is the last operation's return value, formatted with %g
	// semantics. NaN and Inf are valid results.
	Result string `json:"result" yaml:"result"`

	// Raw holds every per-operation duration in sampling order.
	Raw []time.Duration `json:"-" yaml:"-"`

	// Iterations is the number of operations timed in each raw sample.
	Iterations []int `json:"-" yaml:"-"`
}

func throughputOf(bytes uint64, elements int, median time.Duration) Throughput {
	if median <= 0 {
		return Throughput{}
	}
	secs := median.Seconds()
	return Throughput{
		BytesPerSecond:    float64(bytes) / secs,
		ElementsPerSecond: float64(elements) / secs,
	}
}
