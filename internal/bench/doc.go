// Package bench is the timing and sampling engine the harness hands its
// measurement cells to.
//
// The harness only needs two things from it: a way to run a timed operation
// many times on fresh input, and a place to attach reporting metadata. Both
// are captured by the Runner interface:
//
//	LabelGroup(name)             start a named group of cells
//	SetThroughputHint(bytes)     bytes processed per operation, for the axis scale
//	RunTimedTrial(id, prepare)   sample one cell
//
// A Prepare builds one fresh input and returns the operation bound to it.
// Preparation is never timed:
//
//	prepare := bench.Trial(
//	    func() *container.Slice[value.Float] { return template.Clone() },
//	    func(s *container.Slice[value.Float]) float64 { return kernel.Process(s) },
//	)
//
// # Sampling
//
// Engine runs Config.Warmup untimed operations, then Config.Samples timed
// samples. A batch prepares Config.BatchSize inputs, then times running all
// of them back to back. Under SamplingFlat each sample is one batch; under
// SamplingLinear, the default, sample n is n batches with their times
// summed, so at most one batch of inputs is alive at once. Every sample
// records the mean per-operation duration. Samples
// outside [Q1 - k*IQR, Q3 + k*IQR] are dropped before the statistics are
// computed unless that would drop more than half of them.
//
// # Statistics
//
// Percentiles use linear interpolation between order statistics. The
// confidence interval for the mean uses Student's t for fewer than 30
// samples and the normal approximation otherwise.
package bench
