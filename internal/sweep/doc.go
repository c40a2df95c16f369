// Package sweep drives the measurement across a logarithmic range of input
// sizes.
//
// A sweep is described by three exponents. The byte budget starts at
// 2^StartPow2 and is multiplied by 2^StepPow2 while it stays at or below
// 2^EndPow2. Every budget is converted to an element count of
// budget / value.Size. Sizes are visited in strictly increasing order;
// downstream plotting relies on a monotonic size axis.
//
// # Validation
//
// Configurations are rejected before any size is visited. A zero step would
// never advance and a start above the end would sweep nothing, so both are
// errors rather than degenerate runs. The accepted ranges are also written
// down as a CUE schema (schema.cue) that every config is unified with:
//
//	#Sweep: {
//		start_pow2: int & >=0 & <=#MaxPow2
//		end_pow2:   int & >=start_pow2 & <=#MaxPow2
//		step_pow2:  int & >=1
//	}
//
// # States
//
// A Controller moves Idle → Sweeping → Done exactly once. It is not safe for
// concurrent use.
package sweep
