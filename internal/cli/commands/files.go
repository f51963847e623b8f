package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// sourceExtensions are the file extensions picked up when a directory is
// given on the command line.
var sourceExtensions = map[string]bool{
	".sv":  true,
	".svh": true,
	".v":   true,
	".vh":  true,
}

// collectFiles expands args into a sorted, de-duplicated list of source
// files. Directories are walked recursively, skipping hidden ones; explicit
// file arguments are taken whatever their extension.
func collectFiles(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if sourceExtensions[strings.ToLower(filepath.Ext(path))] {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

// unitName returns the include-style name of path: its slash-separated path
// relative to the deepest include directory containing it, or the path as
// given when none does.
func unitName(path string, includeDirs []string) string {
	best := ""
	for _, dir := range includeDirs {
		rel, err := filepath.Rel(dir, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if best == "" || len(rel) < len(best) {
			best = rel
		}
	}
	if best == "" {
		best = path
	}
	return filepath.ToSlash(best)
}
