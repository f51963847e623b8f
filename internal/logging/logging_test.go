package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Console: &buf})
	require.NoError(t, err)
	defer func() { _ = closeFn() }()

	logger.Debug("hidden")
	logger.Info("shown", "unit", "a.sv")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "unit=a.sv")

	buf.Reset()
	verbose, _, err := New(Options{Console: &buf, Verbose: true})
	require.NoError(t, err)
	verbose.Debug("details")
	assert.Contains(t, buf.String(), "details")
}

func TestNew_FileFanout(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "svkit.log")
	logger, closeFn, err := New(Options{Console: &buf, File: path})
	require.NoError(t, err)

	logger.Debug("only in file", "n", 1)
	logger.Warn("everywhere")
	require.NoError(t, closeFn())

	assert.NotContains(t, buf.String(), "only in file")
	assert.Contains(t, buf.String(), "everywhere")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "only in file", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
}

func TestNew_BadFile(t *testing.T) {
	_, _, err := New(Options{File: filepath.Join(t.TempDir(), "missing", "x.log")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open log file")
}
