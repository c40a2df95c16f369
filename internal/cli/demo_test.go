package cli

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/locality/internal/harness"
)

func executeDemo(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"demo"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestDemoSeeded(t *testing.T) {
	out, err := executeDemo(t, "--seed", "3")
	require.NoError(t, err)

	want := strconv.FormatFloat(harness.Demo(3, harness.DemoBytes), 'g', -1, 64)
	assert.Equal(t, want+"\n", out)
}

func TestDemoJSON(t *testing.T) {
	out, err := executeDemo(t, "--seed", "9", "--bytes", "4096", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   DemoResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, uint64(9), resp.Data.Seed)
	assert.Equal(t, 4096, resp.Data.Bytes)
	assert.Equal(t, 512, resp.Data.Elements)
	assert.Equal(t, harness.Demo(9, 4096), resp.Data.Sum)
}

func TestDemoYAML(t *testing.T) {
	out, err := executeDemo(t, "--seed", "1", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "status: ok")
	assert.Contains(t, out, "elements: 125")
}

func TestDemoZeroBytes(t *testing.T) {
	out, err := executeDemo(t, "--bytes", "0")
	require.NoError(t, err)
	assert.Equal(t, "0", strings.TrimSpace(out))
}

func TestDemoRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"negative bytes", []string{"--bytes", "-8"}, "non-negative"},
		{"prometheus format", []string{"--format", "prometheus"}, "only supported by sweep"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeDemo(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}
