// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package shimconfig

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// LoadTheme reads a yaml theme file into a nested map.  an empty path returns (nil, nil).
func LoadTheme(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	barr, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	var theme map[string]any
	err = yaml.Unmarshal(barr, &theme)
	if err != nil {
		return nil, fmt.Errorf("parsing theme file %s: %w", path, err)
	}
	return theme, nil
}

// ThemeWatcher keeps the latest successfully parsed version of a theme file
type ThemeWatcher struct {
	lock     *sync.Mutex
	path     string
	theme    map[string]any
	watcher  *fsnotify.Watcher
	onChange func(theme map[string]any)
}

func MakeThemeWatcher(path string) (*ThemeWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	theme, err := LoadTheme(absPath)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	// watch the dir, editors often replace the file instead of writing it
	err = watcher.Add(filepath.Dir(absPath))
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(absPath), err)
	}
	return &ThemeWatcher{lock: &sync.Mutex{}, path: absPath, theme: theme, watcher: watcher}, nil
}

func (w *ThemeWatcher) Theme() map[string]any {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.theme
}

// OnChange sets a callback run (on the watcher goroutine) after each successful reload
func (w *ThemeWatcher) OnChange(fn func(theme map[string]any)) {
	w.lock.Lock()
	defer w.lock.Unlock()
	w.onChange = fn
}

// Start runs the watch loop until ctx is done or the watcher is closed
func (w *ThemeWatcher) Start(ctx context.Context) {
	log.Printf("[config] watching theme file %s\n", w.path)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				w.reload()
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[config] theme watcher error: %v\n", err)
			}
		}
	}()
}

func (w *ThemeWatcher) reload() {
	theme, err := LoadTheme(w.path)
	if err != nil {
		// keep serving the last good theme
		log.Printf("[config] error reloading theme: %v\n", err)
		return
	}
	if theme == nil {
		// empty file, usually a write in progress
		return
	}
	w.lock.Lock()
	w.theme = theme
	onChange := w.onChange
	w.lock.Unlock()
	log.Printf("[config] reloaded theme %s\n", w.path)
	if onChange != nil {
		onChange(theme)
	}
}

func (w *ThemeWatcher) Close() error {
	return w.watcher.Close()
}
