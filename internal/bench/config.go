package bench

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidConfig is wrapped by every engine configuration error.
	ErrInvalidConfig = errors.New("invalid benchmark configuration")

	// ErrNoSamples indicates statistics were requested for an empty sample set.
	ErrNoSamples = errors.New("no samples collected")

	// ErrNoGroup indicates a trial ran before any group was labelled.
	ErrNoGroup = errors.New("no benchmark group: call LabelGroup first")
)

// Config controls how each cell is sampled.
type Config struct {
	// Warmup is the number of untimed operations before sampling.
	Warmup int `json:"warmup" yaml:"warmup"`

	// Samples is the number of timed samples per cell.
	Samples int `json:"samples" yaml:"samples"`

	// BatchSize is the number of operations timed together in one sample.
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// RemoveOutliers drops samples outside the IQR fence.
	RemoveOutliers bool `json:"remove_outliers" yaml:"remove_outliers"`

	// OutlierThreshold is the IQR multiplier of the fence.
	OutlierThreshold float64 `json:"outlier_threshold" yaml:"outlier_threshold"`

	// ConfidenceLevel is one of ConfidenceLevels.
	ConfidenceLevel float64 `json:"confidence_level" yaml:"confidence_level"`
}

// DefaultConfig returns 100 samples of single operations after 3 warmups.
func DefaultConfig() Config {
	return Config{
		Warmup:           3,
		Samples:          100,
		BatchSize:        1,
		RemoveOutliers:   true,
		OutlierThreshold: 1.5,
		ConfidenceLevel:  0.95,
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	switch {
	case c.Warmup < 0:
		return fmt.Errorf("%w: warmup must be non-negative, got %d", ErrInvalidConfig, c.Warmup)
	case c.Samples <= 0:
		return fmt.Errorf("%w: samples must be positive, got %d", ErrInvalidConfig, c.Samples)
	case c.BatchSize <= 0:
		return fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidConfig, c.BatchSize)
	case c.OutlierThreshold <= 0:
		return fmt.Errorf("%w: outlier threshold must be positive, got %g", ErrInvalidConfig, c.OutlierThreshold)
	case !slices.Contains(ConfidenceLevels(), c.ConfidenceLevel):
		return fmt.Errorf("%w: confidence level must be one of %v, got %g", ErrInvalidConfig, ConfidenceLevels(), c.ConfidenceLevel)
	}
	return nil
}
