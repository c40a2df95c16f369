package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogText(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"catalog"})
	require.NoError(t, cmd.Execute())

	want := `KIND       CONTIGUOUS ORDERED  COALESCES
Slice      yes        no       no
Deque      yes        no       no
List       no         no       no
HashSet    no         no       yes
TreeSet    no         yes      yes

MODES
ref    by reference
value  by value
`
	assert.Equal(t, want, buf.String())
}

func TestCatalogJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"catalog", "--format", "json"})
	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string        `json:"status"`
		Data   CatalogResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Kinds, 5)
	assert.Equal(t, "TreeSet", resp.Data.Kinds[4].Name)
	assert.True(t, resp.Data.Kinds[4].Ordered)
	require.Len(t, resp.Data.Modes, 2)
	assert.Equal(t, "ref", resp.Data.Modes[0].Flag)
}
