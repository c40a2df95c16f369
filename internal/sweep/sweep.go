package sweep

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/roach88/locality/internal/value"
)

// Size is one point on the sweep axis.
type Size struct {
	Pow2     int    `json:"pow2" yaml:"pow2"`
	Bytes    uint64 `json:"bytes" yaml:"bytes"`
	Elements int    `json:"elements" yaml:"elements"`
}

// SizeAt returns the size for a byte budget of 2^pow2.
func SizeAt(pow2 int) Size {
	bytes := uint64(1) << pow2
	return Size{
		Pow2:     pow2,
		Bytes:    bytes,
		Elements: int(bytes / value.Size),
	}
}

// Label is the human-readable byte budget, e.g. "1.0 KiB" or "64 MiB".
func (s Size) Label() string {
	return ByteLabel(s.Bytes)
}

// ByteLabel formats a byte count with IEC units.
func ByteLabel(bytes uint64) string {
	return humanize.IBytes(bytes)
}

func (s Size) String() string {
	return fmt.Sprintf("%s (%d elements)", s.Label(), s.Elements)
}

// Sizes lists every size of a valid config in visiting order.
func (c Config) Sizes() ([]Size, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var sizes []Size
	for p := c.StartPow2; p <= c.EndPow2; p += c.StepPow2 {
		sizes = append(sizes, SizeAt(p))
	}
	return sizes, nil
}

// State is the controller's lifecycle position.
type State int

const (
	Idle State = iota
	Sweeping
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sweeping:
		return "sweeping"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrNotIdle is returned when Run is called on a controller that already ran.
var ErrNotIdle = errors.New("sweep controller is not idle")

// Controller visits every size of a config once.
type Controller struct {
	cfg     Config
	sizes   []Size
	state   State
	visited int
}

// NewController validates cfg eagerly.
func NewController(cfg Config) (*Controller, error) {
	sizes, err := cfg.Sizes()
	if err != nil {
		return nil, err
	}
	return &Controller{cfg: cfg, sizes: sizes}, nil
}

// Config returns the validated configuration.
func (c *Controller) Config() Config { return c.cfg }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Sizes returns the planned sizes.
func (c *Controller) Sizes() []Size { return c.sizes }

// Visited returns how many sizes have been handed to visit.
func (c *Controller) Visited() int { return c.visited }

// Run calls visit for each size in increasing order. A visit error or a
// cancelled context stops the sweep; the controller ends in Done either way.
func (c *Controller) Run(ctx context.Context, visit func(Size) error) error {
	if c.state != Idle {
		return fmt.Errorf("%w (state %s)", ErrNotIdle, c.state)
	}
	c.state = Sweeping
	defer func() { c.state = Done }()

	for _, size := range c.sizes {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.visited++
		if err := visit(size); err != nil {
			return fmt.Errorf("size %s: %w", size.Label(), err)
		}
	}
	return nil
}
