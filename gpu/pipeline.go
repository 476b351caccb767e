// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/hellogpu/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// GraphicsPipeline is a render pipeline made from one shader with
// a vertex and a fragment entry point, drawing from a single vertex
// buffer into a single color target.
type GraphicsPipeline struct {
	// Name is the label of the pipeline.
	Name string

	// Shader has the code for both entry points.
	Shader *Shader

	// VertexEntry is the name of the vertex shader function.
	VertexEntry string

	// FragmentEntry is the name of the fragment shader function.
	FragmentEntry string

	// Layout is the layout of the vertex buffer.
	Layout *VertexLayout

	// Format is the color target format, from the Surface.
	Format wgpu.TextureFormat

	// Primitive has various settings for graphics primitives,
	// e.g., TriangleList
	Primitive wgpu.PrimitiveState

	Multisample wgpu.MultisampleState

	layout         *wgpu.PipelineLayout
	renderPipeline *wgpu.RenderPipeline
}

// NewGraphicsPipeline returns a new GraphicsPipeline with the
// default graphics settings and entry points vs_main and fs_main.
func NewGraphicsPipeline(name string, sh *Shader, layout *VertexLayout, format wgpu.TextureFormat) *GraphicsPipeline {
	pl := &GraphicsPipeline{
		Name:          name,
		Shader:        sh,
		VertexEntry:   "vs_main",
		FragmentEntry: "fs_main",
		Layout:        layout,
		Format:        format,
	}
	pl.SetGraphicsDefaults()
	return pl
}

// SetGraphicsDefaults configures all the default settings for a
// graphics rendering pipeline.
func (pl *GraphicsPipeline) SetGraphicsDefaults() *GraphicsPipeline {
	pl.SetTopology(wgpu.PrimitiveTopologyTriangleList)
	pl.SetFrontFace(wgpu.FrontFaceCCW)
	pl.SetCullMode(wgpu.CullModeBack)
	pl.SetMultisample(1)
	return pl
}

// SetTopology sets the topology of vertex position data.
// TriangleList is the default.
func (pl *GraphicsPipeline) SetTopology(topo wgpu.PrimitiveTopology) *GraphicsPipeline {
	pl.Primitive.Topology = topo
	return pl
}

// SetFrontFace sets the winding order for what counts as a front face.
func (pl *GraphicsPipeline) SetFrontFace(face wgpu.FrontFace) *GraphicsPipeline {
	pl.Primitive.FrontFace = face
	return pl
}

// SetCullMode sets the face culling mode.
func (pl *GraphicsPipeline) SetCullMode(mode wgpu.CullMode) *GraphicsPipeline {
	pl.Primitive.CullMode = mode
	return pl
}

func (pl *GraphicsPipeline) SetMultisample(ms int) *GraphicsPipeline {
	pl.Multisample.Count = uint32(max(1, ms))
	pl.Multisample.Mask = 0xFFFFFFFF
	pl.Multisample.AlphaToCoverageEnabled = false
	return pl
}

// Descriptor returns the render pipeline descriptor for the given
// shader module and pipeline layout.
func (pl *GraphicsPipeline) Descriptor(module *wgpu.ShaderModule, layout *wgpu.PipelineLayout) *wgpu.RenderPipelineDescriptor {
	return &wgpu.RenderPipelineDescriptor{
		Label:  pl.Name,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: pl.VertexEntry,
			Buffers:    []wgpu.VertexBufferLayout{pl.Layout.BufferLayout()},
		},
		Primitive:   pl.Primitive,
		Multisample: pl.Multisample,
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: pl.FragmentEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    pl.Format,
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
	}
}

// Config compiles the shader and creates the pipeline on the
// given device. The pipeline has no bind groups.
func (pl *GraphicsPipeline) Config(dev *Device) error {
	if pl.Shader == nil {
		return fmt.Errorf("gpu: pipeline %q has no shader", pl.Name)
	}
	if err := pl.Shader.Compile(dev); err != nil {
		return err
	}
	if pl.layout == nil {
		lay, err := dev.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
			Label: pl.Name,
		})
		if err != nil {
			return fmt.Errorf("gpu: create pipeline layout %q: %w", pl.Name, err)
		}
		pl.layout = lay
	}
	rp, err := dev.Device.CreateRenderPipeline(pl.Descriptor(pl.Shader.Module(), pl.layout))
	if err != nil {
		return fmt.Errorf("gpu: create render pipeline %q: %w", pl.Name, err)
	}
	pl.releaseRenderPipeline()
	pl.renderPipeline = rp
	return nil
}

// Rebuild compiles the given shader into a new pipeline, which
// replaces the current one only if everything succeeds. On failure
// the current pipeline and shader stay in use.
func (pl *GraphicsPipeline) Rebuild(dev *Device, sh *Shader) error {
	if pl.layout == nil {
		return fmt.Errorf("gpu: pipeline %q is not configured", pl.Name)
	}
	if err := sh.Compile(dev); err != nil {
		return err
	}
	rp, err := dev.Device.CreateRenderPipeline(pl.Descriptor(sh.Module(), pl.layout))
	if err != nil {
		sh.Release()
		return fmt.Errorf("gpu: rebuild render pipeline %q: %w", pl.Name, err)
	}
	pl.releaseRenderPipeline()
	if pl.Shader != nil {
		pl.Shader.Release()
	}
	pl.Shader = sh
	pl.renderPipeline = rp
	return nil
}

// BindPipeline binds this pipeline as the one to use for next
// commands in the given render pass.
func (pl *GraphicsPipeline) BindPipeline(rp *wgpu.RenderPassEncoder) error {
	if pl.renderPipeline == nil {
		return errors.New("gpu: BindPipeline: pipeline " + pl.Name + " is not configured")
	}
	rp.SetPipeline(pl.renderPipeline)
	return nil
}

func (pl *GraphicsPipeline) Release() {
	pl.releaseRenderPipeline()
	if pl.layout != nil {
		pl.layout.Release()
		pl.layout = nil
	}
	if pl.Shader != nil {
		pl.Shader.Release()
	}
}

func (pl *GraphicsPipeline) releaseRenderPipeline() {
	if pl.renderPipeline != nil {
		pl.renderPipeline.Release()
		pl.renderPipeline = nil
	}
}
