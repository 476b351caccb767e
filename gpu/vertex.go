// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// VertexAttribute is one interleaved attribute of a vertex.
type VertexAttribute struct {
	// Name is for documentation and debugging only; shaders
	// access attributes by location, which is the attribute index.
	Name string

	// Type is the data type of the attribute.
	Type Types
}

// VertexLayout describes a buffer of interleaved vertex attributes,
// packed in order with no padding.
type VertexLayout struct {
	Attributes []VertexAttribute
}

// NewVertexLayout returns a new VertexLayout.
func NewVertexLayout() *VertexLayout {
	return &VertexLayout{}
}

// Add adds an attribute with the next shader location.
func (vl *VertexLayout) Add(name string, typ Types) *VertexLayout {
	vl.Attributes = append(vl.Attributes, VertexAttribute{Name: name, Type: typ})
	return vl
}

// Stride returns the size of one vertex in bytes.
func (vl *VertexLayout) Stride() int {
	n := 0
	for _, a := range vl.Attributes {
		n += a.Type.Bytes()
	}
	return n
}

// Offset returns the byte offset of the attribute at the given index.
func (vl *VertexLayout) Offset(idx int) int {
	n := 0
	for _, a := range vl.Attributes[:idx] {
		n += a.Type.Bytes()
	}
	return n
}

// BufferLayout returns the WebGPU layout for a per-vertex buffer.
func (vl *VertexLayout) BufferLayout() wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, len(vl.Attributes))
	off := 0
	for i, a := range vl.Attributes {
		attrs[i] = wgpu.VertexAttribute{
			Format:         a.Type.VertexFormat(),
			Offset:         uint64(off),
			ShaderLocation: uint32(i),
		}
		off += a.Type.Bytes()
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(off),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}
}
