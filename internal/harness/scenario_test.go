package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_AllFixtures(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		s, err := LoadScenario(path)
		require.NoError(t, err, path)
		assert.Equal(t, filepath.Base(path), s.Name+".yaml", "scenario name should match file name")
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: tmp
description: "temp"
steps:
  - function: discount
    input: {}
`), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "tmp", s.Name)
	assert.Empty(t, s.RunToken)
	require.Len(t, s.Steps, 1)
	assert.Equal(t, map[string]any{}, s.Steps[0].Input)
	assert.Nil(t, s.Steps[0].Expect)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: x\ndescription: y\nstep: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			yaml:    "description: y\nsteps: [{function: discount, input: {}}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: x\nsteps: [{function: discount, input: {}}]\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			yaml:    "name: x\ndescription: y\nsteps: []\n",
			wantErr: "steps list is required",
		},
		{
			name:    "step without function",
			yaml:    "name: x\ndescription: y\nsteps: [{input: {}}]\n",
			wantErr: "steps[0]: function is required",
		},
		{
			name:    "step without input",
			yaml:    "name: x\ndescription: y\nsteps: [{function: discount}]\n",
			wantErr: "steps[0]: input is required",
		},
		{
			name:    "empty expect",
			yaml:    "name: x\ndescription: y\nsteps: [{function: discount, input: {}, expect: {}}]\n",
			wantErr: "one of output or error is required",
		},
		{
			name:    "output and error",
			yaml:    "name: x\ndescription: y\nsteps: [{function: discount, input: {}, expect: {output: {}, error: INVALID_INPUT}}]\n",
			wantErr: "mutually exclusive",
		},
		{
			name:    "unknown error code",
			yaml:    "name: x\ndescription: y\nsteps: [{function: discount, input: {}, expect: {error: BOOM}}]\n",
			wantErr: `unknown error code "BOOM"`,
		},
		{
			name:    "unknown assertion type",
			yaml:    "name: x\ndescription: y\nsteps: [{function: discount, input: {}}]\nassertions: [{type: final_state}]\n",
			wantErr: `unknown assertion type "final_state"`,
		},
		{
			name:    "trace_order without functions",
			yaml:    "name: x\ndescription: y\nsteps: [{function: discount, input: {}}]\nassertions: [{type: trace_order}]\n",
			wantErr: "functions list is required",
		},
		{
			name:    "log_stats failed exceeds total",
			yaml:    "name: x\ndescription: y\nsteps: [{function: discount, input: {}}]\nassertions: [{type: log_stats, function: discount, total: 1, failed: 2}]\n",
			wantErr: "failed cannot exceed total",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
