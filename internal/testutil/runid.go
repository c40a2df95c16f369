package testutil

// DefaultRunID is returned by a FixedRunID created with an empty id.
const DefaultRunID = "test-run-00000000-0000-0000-0000-000000000001"

// FixedRunID generates the same run id every time.
//
// The same measurements with the same FixedRunID render byte-identical
// reports, which keeps golden files stable.
//
// Thread-safety: FixedRunID is stateless and safe for concurrent use.
type FixedRunID struct {
	id string
}

// NewFixedRunID creates a generator for id. If id is empty, Generate
// returns DefaultRunID.
func NewFixedRunID(id string) *FixedRunID {
	if id == "" {
		id = DefaultRunID
	}
	return &FixedRunID{id: id}
}

// Generate returns the fixed run id.
//
// Implements bench.RunIDGenerator.
func (g *FixedRunID) Generate() string {
	return g.id
}
