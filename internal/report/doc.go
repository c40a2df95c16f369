// Package report renders what a bench.Engine measured.
//
// Four formats are supported: an aligned text table with grouped numbers,
// indented JSON, YAML, and the Prometheus text exposition format. Compare
// ranks the cells of each size by median and relates them to the
// "Slice (by reference)" baseline.
package report
