// Package harness drives a sum-of-squares locality sweep.
//
// For every size the sweep controller visits, the harness generates one
// scrambled sequence of values and builds a template container of every
// requested kind from it. Each (mode, kind) pair is then registered with a
// bench.Runner as one cell. Trials clone the template during setup, so the
// timed operation always sees a fresh, exclusively owned container:
//
//	by reference   kernel.SumOfSquaresRef over the clone
//	by value       kernel.SumOfSquaresMove, draining the clone
//
// Cells are visited in a fixed order: sizes ascending, reference cells
// before value cells, kinds in catalog order. The order is recorded in
// Result.Cells and golden-tested.
//
// # Determinism
//
// Generation is seeded (Options.Seed). With the same seed and options the
// templates, and therefore every cell's result value, are identical across
// runs. Timing is owned by the runner.
//
// # Usage
//
//	engine, _ := bench.NewEngine(bench.DefaultConfig())
//	result, err := harness.Run(ctx, harness.DefaultOptions(), engine)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(result.Cells))
//
// Demo reproduces the single-shot entry point: 1000 bytes of values summed
// from a consumed slice.
package harness
