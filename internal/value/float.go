package value

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Size is the number of bytes one Float occupies in a container.
const Size = 8

// canonicalNaN is the quiet NaN every NaN payload collapses to.
const canonicalNaN uint64 = 0x7FF8000000000000

// Element is the capability contract the reduction and container packages
// require from a stored value: access to the raw float and a total order
// with a consistent hash.
type Element[V any] interface {
	Inner() float64
	Compare(other V) int
	Hash() uint64
}

// Float is a totally ordered, hashable float64. Immutable.
type Float struct {
	raw float64
}

// New wraps raw. Valid for every float64 including NaN and ±Inf.
func New(raw float64) Float {
	return Float{raw: raw}
}

// Inner returns the wrapped float64 exactly as it was created.
func (f Float) Inner() float64 {
	return f.raw
}

// Bits returns the canonical bit pattern used for equality and hashing.
// -0.0 maps to +0.0 and every NaN maps to a single quiet NaN.
func (f Float) Bits() uint64 {
	switch {
	case f.IsNaN():
		return canonicalNaN
	case f.raw == 0:
		return 0
	default:
		return math.Float64bits(f.raw)
	}
}

// key maps canonical bits onto an unsigned integer whose natural order is
// the total order: negatives flipped below positives, NaN above +Inf.
func (f Float) key() uint64 {
	b := f.Bits()
	if b&(1<<63) != 0 {
		return ^b
	}
	return b | 1<<63
}

// Compare returns -1, 0 or +1 as f is less than, equal to or greater than other.
func (f Float) Compare(other Float) int {
	a, b := f.key(), other.key()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether f orders strictly before other.
func (f Float) Less(other Float) bool {
	return f.key() < other.key()
}

// Equal reports whether f and other have the same canonical bits.
func (f Float) Equal(other Float) bool {
	return f.Bits() == other.Bits()
}

// IsNaN reports whether the wrapped value is any NaN.
func (f Float) IsNaN() bool {
	return f.raw != f.raw
}

// Hash returns the xxhash of the canonical bits in little-endian order.
func (f Float) Hash() uint64 {
	var buf [Size]byte
	binary.LittleEndian.PutUint64(buf[:], f.Bits())
	return xxhash.Sum64(buf[:])
}

func (f Float) String() string {
	return strconv.FormatFloat(f.raw, 'g', -1, 64)
}
