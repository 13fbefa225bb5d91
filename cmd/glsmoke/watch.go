package main

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/polyfloyd/glsmoke/renderer"
)

const watchDebounce = 20 * time.Millisecond

// watchShaders loads the shader program and schedules it on the scene, then
// does so again every time one of the files it was built from changes.
//
// The directories of the files are watched rather than the files themselves
// so files that are replaced or briefly missing keep being tracked. A failed
// reload keeps watching the files of the last successful one.
func watchShaders(ctx context.Context, scene interface{ SetProgram(renderer.Program) }, newFn func() (renderer.Program, []string, error)) {
	var files []string
	for ctx.Err() == nil {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			log.Println(err)
			return
		}

		prog, newFiles, err := newFn()
		if err == nil {
			files = newFiles
		} else {
			files = mergeFiles(files, newFiles)
		}
		watched := watchFiles(watcher, files)
		if err != nil {
			log.Println(err)
		} else {
			scene.SetProgram(prog)
		}

		waitForChange(ctx, watcher, watched)
		watcher.Close()
	}
}

// watchFiles adds the parent directory of each file to the watcher and
// returns the set of cleaned absolute filenames to filter events on.
func watchFiles(watcher *fsnotify.Watcher, files []string) map[string]bool {
	watched := map[string]bool{}
	dirs := map[string]bool{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			log.Println(err)
			continue
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			log.Println(err)
		}
	}
	return watched
}

func mergeFiles(a, b []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, f := range append(append([]string{}, a...), b...) {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// waitForChange blocks until the watcher reports an event for one of the
// files and no other such events follow within the debounce interval.
func waitForChange(ctx context.Context, watcher *fsnotify.Watcher, files map[string]bool) {
	var debounce <-chan time.Time
	for {
		select {
		case event := <-watcher.Events:
			abs, err := filepath.Abs(event.Name)
			if err != nil || !files[abs] {
				continue
			}
			debounce = time.After(watchDebounce)
		case err := <-watcher.Errors:
			log.Println(err)
			return
		case <-debounce:
			return
		case <-ctx.Done():
			return
		}
	}
}
