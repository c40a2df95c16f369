package kernel

import (
	"fmt"
	"testing"

	"github.com/dustin/go-humanize"

	"github.com/roach88/locality/internal/container"
	"github.com/roach88/locality/internal/datagen"
	"github.com/roach88/locality/internal/value"
)

var sink float64

// BenchmarkSumOfSquares mirrors the harness sweep at a few sizes with the
// testing package's own timer. Setup runs with the timer stopped.
func BenchmarkSumOfSquares(b *testing.B) {
	for _, bytes := range []uint64{1 << 10, 1 << 14, 1 << 18} {
		n := int(bytes / value.Size)
		for _, e := range container.Catalog[value.Float]() {
			template := datagen.Generate(datagen.NewSource(1, datagen.Unit), n, value.New, e.New)

			b.Run(fmt.Sprintf("%s/%s/%s", e.Kind, ByReference.Short(), humanize.IBytes(bytes)), func(b *testing.B) {
				b.SetBytes(int64(bytes))
				for i := 0; i < b.N; i++ {
					sink = SumOfSquaresRef[value.Float](template)
				}
			})

			b.Run(fmt.Sprintf("%s/%s/%s", e.Kind, ByValue.Short(), humanize.IBytes(bytes)), func(b *testing.B) {
				b.SetBytes(int64(bytes))
				for i := 0; i < b.N; i++ {
					b.StopTimer()
					c := template.Clone()
					b.StartTimer()
					sink = SumOfSquaresMove[value.Float](c)
				}
			})
		}
	}
}
