// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"image"
	"log/slog"

	"cogentcore.org/hellogpu/config"
	"cogentcore.org/hellogpu/gpu"
	"cogentcore.org/hellogpu/mesh"
	"github.com/cogentcore/webgpu/wgpu"
)

// surfaceWindow is the window a scene renders to.
type surfaceWindow interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	FramebufferSize() image.Point
}

// scene has all of the GPU state for drawing the triangle to a window.
type scene struct {
	win surfaceWindow

	gpu      *gpu.GPU
	device   *gpu.Device
	surface  *gpu.Surface
	render   *gpu.Render
	pipeline *gpu.GraphicsPipeline
	vertices *gpu.VertexBuffer

	// windowSurface is only held until it is owned by surface.
	windowSurface *wgpu.Surface
}

// newScene runs the GPU initialization sequence for the given window:
// surface, adapter, device, surface configuration, shader and pipeline,
// and vertex buffer. Anything created before a failure is released.
func newScene(cfg *config.Config, win surfaceWindow) (sc *scene, err error) {
	sc = &scene{win: win}
	defer func() {
		if err != nil {
			sc.Release()
			sc = nil
		}
	}()
	gpu.Debug = cfg.Debug
	clr, err := cfg.Color()
	if err != nil {
		return
	}
	// the shader file is read before anything is created on the GPU.
	sh := gpu.NewShader("shader")
	if err = sh.OpenFile(cfg.Shader); err != nil {
		return
	}

	sc.windowSurface = gpu.Instance().CreateSurface(win.SurfaceDescriptor())
	sc.gpu, err = gpu.NewGPU(sc.windowSurface, cfg.Power)
	if err != nil {
		return
	}
	sc.device, err = gpu.NewDevice(sc.gpu)
	if err != nil {
		return
	}
	size := win.FramebufferSize()
	if size.X <= 0 || size.Y <= 0 {
		size = cfg.Size()
	}
	sc.surface, err = gpu.NewSurface(sc.gpu, sc.device, sc.windowSurface, size, cfg.PresentMode)
	if err != nil {
		return
	}
	sc.windowSurface = nil
	sc.surface.WindowSize = win.FramebufferSize
	sc.render = gpu.NewRender(clr, sc.surface.Format)

	layout := gpu.NewVertexLayout().
		Add("Position", gpu.Float32Vector3).
		Add("Color", gpu.Float32Vector3)
	sc.pipeline = gpu.NewGraphicsPipeline("triangle", sh, layout, sc.surface.Format)
	if !mesh.CounterClockwise(mesh.Triangle) {
		sc.pipeline.SetFrontFace(wgpu.FrontFaceCW)
	}
	if err = sc.pipeline.Config(sc.device); err != nil {
		return
	}
	sc.vertices, err = gpu.NewVertexBuffer(sc.device, "triangle", layout, mesh.Triangle)
	if err != nil {
		return
	}
	lo, hi := mesh.Bounds(mesh.Triangle)
	slog.Debug("app: mesh uploaded", "vertices", sc.vertices.N, "min", lo, "max", hi)
	return
}

func (sc *scene) DrawFrame() error {
	return sc.render.DrawFrame(sc.surface, sc.pipeline, sc.vertices)
}

func (sc *scene) SetSize(size image.Point) bool {
	return sc.surface.SetSize(size)
}

func (sc *scene) Reconfigure() error {
	return sc.surface.Reconfigure()
}

// Recreate replaces a lost surface with a new one for the window.
func (sc *scene) Recreate() error {
	return sc.surface.Recreate(sc.win.SurfaceDescriptor())
}

// ReloadShader rebuilds the pipeline from the given shader file,
// keeping the current pipeline if that fails.
func (sc *scene) ReloadShader(file string) error {
	sh := gpu.NewShader(sc.pipeline.Shader.Name)
	if err := sh.OpenFile(file); err != nil {
		return err
	}
	if err := sc.pipeline.Rebuild(sc.device, sh); err != nil {
		return err
	}
	slog.Info("app: shader reloaded", "file", file)
	return nil
}

// Release releases everything in the reverse order of creation.
// It is safe to call more than once.
func (sc *scene) Release() {
	if sc.device != nil {
		sc.device.WaitDone()
	}
	if sc.vertices != nil {
		sc.vertices.Release()
		sc.vertices = nil
	}
	if sc.pipeline != nil {
		sc.pipeline.Release()
		sc.pipeline = nil
	}
	if sc.surface != nil {
		sc.surface.Release()
		sc.surface = nil
	}
	if sc.windowSurface != nil {
		sc.windowSurface.Release()
		sc.windowSurface = nil
	}
	if sc.device != nil {
		sc.device.Release()
		sc.device = nil
	}
	if sc.gpu != nil {
		sc.gpu.Release()
		sc.gpu = nil
	}
	gpu.ReleaseInstance()
}
