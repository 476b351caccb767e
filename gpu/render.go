// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image/color"

	"cogentcore.org/hellogpu/base/errors"
	"cogentcore.org/hellogpu/colors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Render has the per-frame rendering settings and draws frames:
// clearing the surface texture, drawing one vertex buffer with one
// pipeline, and presenting the result.
type Render struct {
	// ClearColor is the color the frame is cleared to, sRGB encoded.
	ClearColor color.RGBA

	// Linear converts the clear color to linear space, which is
	// needed when the target format is sRGB.
	Linear bool
}

// NewRender returns a new Render for a target of the given format.
func NewRender(clear color.RGBA, format wgpu.TextureFormat) *Render {
	return &Render{ClearColor: clear, Linear: IsSRGB(format)}
}

// ClearValue returns the clear color as a WebGPU color.
func (rd *Render) ClearValue() wgpu.Color {
	var r, g, b, a float64
	if rd.Linear {
		r, g, b, a = colors.ToLinear(rd.ClearColor)
	} else {
		r, g, b, a = colors.ToFloat64(rd.ClearColor)
	}
	return wgpu.Color{R: r, G: g, B: b, A: a}
}

// ClearRenderPass returns a render pass descriptor that clears the view.
func (rd *Render) ClearRenderPass(view *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	return &wgpu.RenderPassDescriptor{
		Label: "clear",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: rd.ClearValue(),
		}},
	}
}

// BeginRenderPass adds commands to the given command encoder
// to start a render pass that clears the given view.
func (rd *Render) BeginRenderPass(cmd *wgpu.CommandEncoder, view *wgpu.TextureView) *wgpu.RenderPassEncoder {
	return cmd.BeginRenderPass(rd.ClearRenderPass(view))
}

// DrawFrame renders one frame to the surface: it acquires the next
// surface texture, clears it, draws all vertices of vb with pl,
// submits the commands and presents. Acquire failures wrap
// [ErrSurfaceLost] or [ErrSurfaceOutdated]; see [Recoverable].
func (rd *Render) DrawFrame(sf *Surface, pl *GraphicsPipeline, vb *VertexBuffer) error {
	_, view, err := sf.AcquireTexture()
	if err != nil {
		return err
	}
	defer view.Release()

	dev := sf.Device
	cmd, err := dev.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "frame"})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	defer cmd.Release()

	rp := rd.BeginRenderPass(cmd, view)
	if err := pl.BindPipeline(rp); err != nil {
		errors.Log(rp.End())
		rp.Release()
		return err
	}
	vb.Draw(rp)
	endErr := errors.Log(rp.End())
	rp.Release() // must happen before Finish
	if endErr != nil {
		return fmt.Errorf("gpu: end render pass: %w", endErr)
	}

	cmdBuffer, err := cmd.Finish(nil)
	if err != nil {
		return fmt.Errorf("gpu: finish command encoder: %w", err)
	}
	defer cmdBuffer.Release()
	dev.Queue.Submit(cmdBuffer)
	sf.Present()
	return nil
}
