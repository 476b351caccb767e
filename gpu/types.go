// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Types is a list of GPU data types that can be used as vertex attributes.
type Types int32

const (
	UndefinedType Types = iota

	Float32
	Float32Vector2
	Float32Vector3 // note: only use for vertex data
	Float32Vector4
)

// VertexFormat returns the WebGPU VertexFormat for given type.
func (tp Types) VertexFormat() wgpu.VertexFormat {
	return TypeToVertexFormat[tp]
}

// Bytes returns number of bytes for this type.
func (tp Types) Bytes() int {
	return TypeSizes[tp]
}

func (tp Types) String() string {
	if s, ok := typeNames[tp]; ok {
		return s
	}
	return "UndefinedType"
}

// TypeSizes gives our data type sizes in bytes.
var TypeSizes = map[Types]int{
	Float32:        4,
	Float32Vector2: 8,
	Float32Vector3: 12,
	Float32Vector4: 16,
}

// TypeToVertexFormat maps gpu.Types to WebGPU VertexFormat.
var TypeToVertexFormat = map[Types]wgpu.VertexFormat{
	Float32:        wgpu.VertexFormatFloat32,
	Float32Vector2: wgpu.VertexFormatFloat32x2,
	Float32Vector3: wgpu.VertexFormatFloat32x3,
	Float32Vector4: wgpu.VertexFormatFloat32x4,
}

var typeNames = map[Types]string{
	Float32:        "Float32",
	Float32Vector2: "Float32Vector2",
	Float32Vector3: "Float32Vector3",
	Float32Vector4: "Float32Vector4",
}
