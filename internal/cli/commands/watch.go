package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce delays re-linting until edits settle.
const watchDebounce = 100 * time.Millisecond

// watchLint lints args, then again after every change to a source file
// under them, until ctx is canceled.
func watchLint(ctx context.Context, cc *CommandContext, args []string, opts *LintOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, arg := range args {
		if err := watchPath(watcher, arg); err != nil {
			return fmt.Errorf("failed to watch %s: %w", arg, err)
		}
	}

	relint := func() {
		if _, err := lintOnce(ctx, cc, args, opts); err != nil {
			cc.Renderer.Error(err.Error())
		}
		cc.Renderer.Println(cc.Renderer.Styles().Muted.Render("Watching for changes..."))
	}
	relint()

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchPath(watcher, event.Name)
					continue
				}
			}
			if !sourceExtensions[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}
			cc.Logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			debounce = time.After(watchDebounce)
		case <-debounce:
			debounce = nil
			relint()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cc.Logger.Warn("watcher error", "error", err)
		}
	}
}

// watchPath adds path to watcher: every non-hidden directory below it when
// it is a directory, its parent directory otherwise.
func watchPath(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(path))
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != path && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}
