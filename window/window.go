// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package window provides a native window using glfw, and queues
// the window events that the render loop reacts to.
package window

import (
	"fmt"
	"image"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var (
	// mu guards running, so that Wake never reaches glfw
	// while it is being terminated.
	mu      sync.Mutex
	running bool
)

// Init initializes glfw.
// IMPORTANT: must be called on the main initial thread!
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("window: glfw init: %w", err)
	}
	running = true
	return nil
}

// Terminate shuts down glfw; call it as the last thing before quitting.
// IMPORTANT: must be called on the main initial thread!
func Terminate() {
	mu.Lock()
	defer mu.Unlock()
	running = false
	glfw.Terminate()
}

// Wake unblocks a pending [Window.Wait]. It is safe to call from
// any goroutine, and does nothing when glfw is not initialized.
func Wake() {
	mu.Lock()
	defer mu.Unlock()
	if running {
		glfw.PostEmptyEvent()
	}
}

// Window is a native window without a client graphics API,
// for use as a WebGPU surface.
type Window struct {
	Queue

	glw *glfw.Window
}

// New creates a new window with the given title and size.
// [Init] must have been called.
func New(title string, size image.Point) (*Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glw, err := glfw.CreateWindow(size.X, size.Y, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("window: create: %w", err)
	}
	w := &Window{glw: glw}
	glw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.Push(Event{Type: Resize, Size: image.Point{width, height}})
	})
	glw.SetPosCallback(func(_ *glfw.Window, xpos, ypos int) {
		w.Push(Event{Type: Move, Pos: image.Point{xpos, ypos}})
	})
	glw.SetRefreshCallback(func(_ *glfw.Window) {
		w.Push(Event{Type: Refresh})
	})
	glw.SetCloseCallback(func(_ *glfw.Window) {
		w.Push(Event{Type: Close})
	})
	glw.SetKeyCallback(func(gw *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.SetShouldClose(true)
			w.Push(Event{Type: Close})
		}
	})
	return w, nil
}

// SurfaceDescriptor returns the descriptor for creating
// a WebGPU surface for this window.
func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.glw)
}

// FramebufferSize returns the current size of the framebuffer in pixels.
func (w *Window) FramebufferSize() image.Point {
	width, height := w.glw.GetFramebufferSize()
	return image.Point{width, height}
}

// ShouldClose returns whether the window has been asked to close.
func (w *Window) ShouldClose() bool {
	return w.glw.ShouldClose()
}

// Wait blocks until at least one OS event is available and processes it.
func (w *Window) Wait() {
	glfw.WaitEvents()
}

// Poll processes any pending OS events without blocking.
func (w *Window) Poll() {
	glfw.PollEvents()
}

// Destroy destroys the window.
func (w *Window) Destroy() {
	if w.glw == nil {
		return
	}
	w.glw.Destroy()
	w.glw = nil
}
