// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// VertexBuffer is a static vertex buffer uploaded once at init.
type VertexBuffer struct {
	// Name is the label of the buffer.
	Name string

	// N is the number of vertices.
	N int

	// Layout is the layout of each vertex.
	Layout *VertexLayout

	buffer *wgpu.Buffer
}

// NewVertexBuffer uploads the given vertex data to a new vertex buffer.
// The size of each element of data must match the layout stride.
func NewVertexBuffer[T any](dev *Device, name string, layout *VertexLayout, data []T) (*VertexBuffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("gpu: vertex buffer %q: no vertices", name)
	}
	contents := wgpu.ToBytes(data)
	if len(contents) != len(data)*layout.Stride() {
		return nil, fmt.Errorf("gpu: vertex buffer %q: %d bytes for %d vertices does not match stride %d", name, len(contents), len(data), layout.Stride())
	}
	buf, err := dev.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name,
		Contents: contents,
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create vertex buffer %q: %w", name, err)
	}
	return &VertexBuffer{Name: name, N: len(data), Layout: layout, buffer: buf}, nil
}

// Bind sets this buffer as the vertex buffer at the given slot.
func (vb *VertexBuffer) Bind(rp *wgpu.RenderPassEncoder, slot int) {
	rp.SetVertexBuffer(uint32(slot), vb.buffer, 0, wgpu.WholeSize)
}

// Draw binds the buffer at slot 0 and draws all of its vertices.
func (vb *VertexBuffer) Draw(rp *wgpu.RenderPassEncoder) {
	vb.Bind(rp, 0)
	rp.Draw(uint32(vb.N), 1, 0, 0)
}

// Release releases the buffer.
func (vb *VertexBuffer) Release() {
	if vb.buffer == nil {
		return
	}
	vb.buffer.Release()
	vb.buffer = nil
}
