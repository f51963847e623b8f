package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeSource(t, dir, "a.sv", "")
	b := writeSource(t, dir, "sub/b.svh", "")
	c := writeSource(t, dir, "sub/c.V", "")
	writeSource(t, dir, "sub/readme.md", "")
	writeSource(t, dir, ".git/hooks.sv", "")
	other := writeSource(t, dir, "extra.inc", "")

	files, err := collectFiles([]string{dir, a, other})
	require.NoError(t, err)
	assert.Equal(t, []string{a, other, b, c}, files)
}

func TestCollectFiles_Missing(t *testing.T) {
	_, err := collectFiles([]string{filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot access")
}

func TestUnitName(t *testing.T) {
	tests := []struct {
		name string
		path string
		dirs []string
		want string
	}{
		{name: "relative to dir", path: "/work/inc/defs.svh", dirs: []string{"/work/inc"}, want: "defs.svh"},
		{name: "nested keeps subdir", path: "/work/inc/sub/x.svh", dirs: []string{"/work/inc"}, want: "sub/x.svh"},
		{name: "deepest dir wins", path: "/work/inc/sub/x.svh", dirs: []string{"/work", "/work/inc/sub"}, want: "x.svh"},
		{name: "outside every dir", path: "/elsewhere/y.sv", dirs: []string{"/work/inc"}, want: "/elsewhere/y.sv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dirs := make([]string, len(tt.dirs))
			for i, d := range tt.dirs {
				dirs[i] = filepath.FromSlash(d)
			}
			got := unitName(filepath.FromSlash(tt.path), dirs)
			assert.Equal(t, tt.want, got)
		})
	}
}
