// Package value provides the comparable floating-point element stored in every
// container under measurement.
//
// Float wraps a float64 and replaces its native partial order with a total
// order so it can live in hashed and ordered containers:
//
//   - -0.0 and +0.0 are equal.
//   - Every NaN is equal to every other NaN.
//   - NaN is greater than +Inf.
//
// Equality, ordering and hashing are all derived from the same canonical bit
// pattern, so a value that compares equal always hashes equal. Inner returns
// the raw float64 unchanged; canonicalization only affects comparison.
//
// This package imports nothing internal.
package value
