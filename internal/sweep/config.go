package sweep

import (
	_ "embed"
	"errors"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE string

// MaxPow2 caps the byte budget at 1 TiB. schema.cue carries the same bound.
const MaxPow2 = 40

// Defaults sweep 1 KiB up to 64 MiB, quadrupling each step, so the sweep
// crosses a typical 16 MiB L3.
const (
	DefaultStartPow2 = 10
	DefaultEndPow2   = 26
	DefaultStepPow2  = 2
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("invalid sweep configuration")

// ConfigError reports which field of a Config was rejected.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Config holds the sweep exponents.
type Config struct {
	StartPow2 int `json:"start_pow2" yaml:"start_pow2"`
	EndPow2   int `json:"end_pow2" yaml:"end_pow2"`
	StepPow2  int `json:"step_pow2" yaml:"step_pow2"`
}

// DefaultConfig returns the 1 KiB to 64 MiB sweep.
func DefaultConfig() Config {
	return Config{
		StartPow2: DefaultStartPow2,
		EndPow2:   DefaultEndPow2,
		StepPow2:  DefaultStepPow2,
	}
}

// Validate rejects configurations that would not terminate or would visit
// no size, then checks the ranges in schema.cue.
func (c Config) Validate() error {
	if c.StepPow2 == 0 {
		return &ConfigError{Field: "step_pow2", Message: "must be at least 1 (a zero step never advances)"}
	}
	if c.StartPow2 > c.EndPow2 {
		return &ConfigError{
			Field:   "start_pow2",
			Message: fmt.Sprintf("%d is greater than end_pow2 %d (empty sweep)", c.StartPow2, c.EndPow2),
		}
	}
	return CheckSchema(c)
}

// CheckSchema unifies c with the #Sweep definition.
func CheckSchema(c Config) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile sweep schema: %w", err)
	}

	v := schema.LookupPath(cue.ParsePath("#Sweep")).Unify(ctx.Encode(c))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// formatCUEError turns the first CUE error into a ConfigError named after
// the offending field.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ConfigError{Field: "sweep", Message: err.Error()}
	}

	first := errs[0]
	field := "sweep"
	if path := first.Path(); len(path) > 0 {
		field = path[len(path)-1]
	}
	format, args := first.Msg()
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}
