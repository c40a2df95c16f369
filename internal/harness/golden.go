package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot captures the visit order of a sweep.
type TraceSnapshot struct {
	Name  string       `json:"name"`
	Sizes int          `json:"sizes"`
	Trace []TraceEvent `json:"trace"`
}

// AssertGolden compares result's visit trace against
// testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	snapshot := TraceSnapshot{
		Name:  name,
		Sizes: len(result.Sizes),
		Trace: result.Trace(),
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, append(data, '\n'))
	return nil
}
