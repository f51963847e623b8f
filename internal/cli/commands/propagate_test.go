package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/svkit/internal/cli/testutil"
	"github.com/leapstack-labs/svkit/pkg/propagate"
)

func propagateProject(t *testing.T) string {
	t.Helper()
	return testutil.SetupSourceTree(t, map[string]string{
		"inc/defs.svh":   "parameter int DEPTH = 16;\n",
		"rtl/top_pkg.sv": "package top_pkg;\n`include \"defs.svh\"\n`include \"missing.svh\"\nendpackage\n",
	})
}

func TestPropagateCommand_Export(t *testing.T) {
	dir := propagateProject(t)
	inc := filepath.Join(dir, "inc")
	rtl := filepath.Join(dir, "rtl")

	tests := []struct {
		name   string
		file   string
		decode func([]byte, any) error
	}{
		{name: "json", file: "out.json", decode: json.Unmarshal},
		{name: "yaml", file: "out.yaml", decode: yaml.Unmarshal},
		{name: "msgpack", file: "out.mp", decode: msgpack.Unmarshal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outFile := filepath.Join(t.TempDir(), tt.file)
			_, err := execute(t, NewPropagateCommand(), "-I", inc, "-I", rtl, "-o", outFile, dir)
			require.NoError(t, err)

			data, err := os.ReadFile(outFile)
			require.NoError(t, err)
			var export propagate.Export
			require.NoError(t, tt.decode(data, &export))

			assert.NotEmpty(t, export.RunID)
			require.Len(t, export.Units, 2)
			byName := map[string]propagate.ExportUnit{}
			for _, u := range export.Units {
				byName[u.Name] = u
			}
			top := byName["top_pkg.sv"]
			assert.Equal(t, map[string]string{"defs.svh": "defs.svh"}, top.Resolved)
			assert.Equal(t, []string{"missing.svh"}, top.Unresolved)
			assert.NotNil(t, top.Tree)
		})
	}
}

func TestPropagateCommand_Render(t *testing.T) {
	dir := propagateProject(t)

	out, err := execute(t, NewPropagateCommand(), "-I", filepath.Join(dir, "inc"), "-I", filepath.Join(dir, "rtl"), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Propagation run")
	assert.Contains(t, out, "top_pkg.sv")
	assert.Contains(t, out, "missing.svh")
	assert.Contains(t, out, "Summary: 2 units, 0 failed, 1 unresolved includes, 0 cycles")
}

func TestPropagateCommand_Structured(t *testing.T) {
	dir := propagateProject(t)

	out, err := execute(t, NewPropagateCommand(), "-f", "json", "-D", "SYNTH", "-I", filepath.Join(dir, "inc"), dir)
	require.NoError(t, err)

	var export propagate.Export
	require.NoError(t, json.Unmarshal([]byte(out), &export))
	assert.Len(t, export.Units, 2)
}

func TestPropagateCommand_FailedUnitStillExported(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "bad.sv", "package ;\n")
	writeSource(t, dir, "good_pkg.sv", "package good;\nendpackage\n")

	var stderr bytes.Buffer
	cmd := NewPropagateCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(&stderr)
	outFile := filepath.Join(t.TempDir(), "out.json")
	cmd.SetArgs([]string{"-I", dir, "-o", outFile, dir})

	require.ErrorIs(t, cmd.Execute(), ErrUnitsFailed)
	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var export propagate.Export
	require.NoError(t, json.Unmarshal(data, &export))
	require.Len(t, export.Units, 2)
	assert.True(t, export.Units[0].Failed)
	assert.NotEmpty(t, export.Units[0].Error)
	assert.False(t, export.Units[1].Failed)
}

func TestPropagateCommand_InvalidDefine(t *testing.T) {
	dir := propagateProject(t)

	_, err := execute(t, NewPropagateCommand(), "-D", "=1", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid define")
}
