// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app runs hellogpu: it opens the window, initializes the GPU
// scene, and runs the event loop that draws one frame per iteration.
package app

import (
	"context"
	"image"
	"log/slog"
	"time"

	"cogentcore.org/hellogpu/base/errors"
	"cogentcore.org/hellogpu/config"
	"cogentcore.org/hellogpu/gpu"
	"cogentcore.org/hellogpu/window"
)

// eventSource is the window side of the event loop.
type eventSource interface {
	Wait()
	Poll()
	Drain() []window.Event
	ShouldClose() bool
	FramebufferSize() image.Point
}

// renderer is the GPU side of the event loop.
type renderer interface {
	DrawFrame() error
	SetSize(size image.Point) bool
	Reconfigure() error
	Recreate() error
	ReloadShader(file string) error
}

// App runs the window and render loop for a [config.Config].
type App struct {
	Config *config.Config

	// Frames is the number of frames drawn so far.
	Frames int

	fpsFrames int
	fpsStart  time.Time
}

// New returns a new App for the given config.
func New(cfg *config.Config) *App {
	return &App{Config: cfg}
}

// Run opens the window, initializes the GPU, and runs the event loop
// until the window is closed or ctx is done. It must be called on the
// main thread, which must be locked to its OS thread.
func (a *App) Run(ctx context.Context) error {
	if err := a.Config.Validate(); err != nil {
		return err
	}
	if err := window.Init(); err != nil {
		return err
	}
	defer window.Terminate()

	win, err := window.New(a.Config.Title, a.Config.Size())
	if err != nil {
		return err
	}
	defer win.Destroy()

	sc, err := newScene(a.Config, win)
	if err != nil {
		return err
	}
	defer sc.Release()

	// everything waking the loop is stopped before glfw is terminated.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var reload <-chan string
	if a.Config.WatchShader {
		sw, err := watchShader(ctx, a.Config.Shader, window.Wake)
		if errors.Log(err) == nil {
			defer sw.Stop()
			reload = sw.Reload
		}
	}
	stop := context.AfterFunc(ctx, window.Wake)
	defer stop()

	slog.Info("app: running", "size", win.FramebufferSize(), "shader", a.Config.Shader)
	return a.loop(ctx, win, sc, reload)
}

// loop runs one iteration per batch of window events: it waits for
// events (or polls them when drawing continuously), handles them,
// applies any pending shader reload, and draws a frame.
func (a *App) loop(ctx context.Context, win eventSource, rd renderer, reload <-chan string) error {
	a.fpsStart = time.Now()
	for {
		if ctx.Err() != nil || win.ShouldClose() {
			return nil
		}
		if a.Config.Continuous {
			win.Poll()
		} else {
			win.Wait()
		}
		for _, ev := range win.Drain() {
			if !a.handleEvent(rd, ev) {
				return nil
			}
		}
		select {
		case file := <-reload:
			if err := rd.ReloadShader(file); err != nil {
				slog.Error("app: shader reload failed, keeping previous pipeline", "err", err)
			}
		default:
		}
		if ctx.Err() != nil || win.ShouldClose() {
			return nil
		}
		a.drawFrame(win, rd)
	}
}

// handleEvent reacts to one window event, returning false
// if the loop should stop.
func (a *App) handleEvent(rd renderer, ev window.Event) bool {
	switch ev.Type {
	case window.Resize:
		if ev.Size.X <= 0 || ev.Size.Y <= 0 {
			slog.Debug("app: ignoring resize", "size", ev.Size)
			return true
		}
		if rd.SetSize(ev.Size) {
			slog.Debug("app: resized", "size", ev.Size)
		}
	case window.Move:
		errors.Log(rd.Reconfigure())
	case window.Close:
		return false
	}
	return true
}

// drawFrame draws one frame, recovering the surface if it was lost
// or outdated. Any other error is logged and the loop goes on.
func (a *App) drawFrame(win eventSource, rd renderer) {
	size := win.FramebufferSize()
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	err := rd.DrawFrame()
	if err != nil {
		if !gpu.Recoverable(err) {
			slog.Error("app: frame failed", "err", err)
			return
		}
		a.recoverSurface(rd, size, err)
		return
	}
	a.Frames++
	a.fpsFrames++
	if dur := time.Since(a.fpsStart); dur > 10*time.Second {
		slog.Debug("app: frame rate", "fps", float64(a.fpsFrames)/dur.Seconds())
		a.fpsFrames = 0
		a.fpsStart = time.Now()
	}
}

// recoverSurface recreates a lost surface, and configures an
// outdated one for the current window size.
func (a *App) recoverSurface(rd renderer, size image.Point, err error) {
	if errors.Is(err, gpu.ErrSurfaceLost) {
		slog.Warn("app: recreating surface", "reason", err)
		errors.Log(rd.Recreate())
		return
	}
	slog.Warn("app: reconfiguring surface", "reason", err, "size", size)
	if !rd.SetSize(size) {
		errors.Log(rd.Reconfigure())
	}
}
