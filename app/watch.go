// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// shaderWatcher watches a shader file for changes.
type shaderWatcher struct {
	// Reload receives the shader path when it changes. Bursts of
	// changes are coalesced into one pending reload.
	Reload <-chan string

	cancel context.CancelFunc
	done   chan struct{}
}

// watchShader watches the given shader file and sends its path on
// Reload when it changes, calling wake after each send so a loop
// blocked waiting for window events picks it up. The watcher stops
// when ctx is done or [shaderWatcher.Stop] is called.
func watchShader(ctx context.Context, file string, wake func()) (*shaderWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("app: shader watcher: %w", err)
	}
	file = filepath.Clean(file)
	// the directory is watched, as editors often save by replacing the file.
	if err := watcher.Add(filepath.Dir(file)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("app: shader watcher: %w", err)
	}
	ctx, cancel := context.WithCancel(ctx)
	reload := make(chan string, 1)
	sw := &shaderWatcher{Reload: reload, cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(sw.done)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != file {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				select {
				case reload <- file:
				default:
				}
				if wake != nil && ctx.Err() == nil {
					wake()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Error("app: shader watcher error: " + err.Error())
			}
		}
	}()
	return sw, nil
}

// Stop stops the watcher and waits for it to finish, after which
// wake is no longer called.
func (sw *shaderWatcher) Stop() {
	sw.cancel()
	<-sw.done
}
