// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh has the static vertex data drawn by hellogpu.
package mesh

import (
	"math"
	"unsafe"

	"github.com/chewxy/math32"
)

// Vertex is one vertex as laid out in the vertex buffer:
// a position followed by an RGB color, both float32x3.
type Vertex struct {
	Position [3]float32
	Color    [3]float32
}

// VertexSize is the size of one [Vertex] in bytes, which is the
// vertex buffer stride.
const VertexSize = int(unsafe.Sizeof(Vertex{}))

// Triangle is the triangle drawn each frame, in counter-clockwise order:
// red bottom left, green bottom right, blue top.
var Triangle = []Vertex{
	{Position: [3]float32{-0.75, -0.75, 0.0}, Color: [3]float32{1.0, 0.0, 0.0}},
	{Position: [3]float32{0.75, -0.75, 0.0}, Color: [3]float32{0.0, 1.0, 0.0}},
	{Position: [3]float32{0.0, 0.75, 0.0}, Color: [3]float32{0.0, 0.0, 1.0}},
}

// SignedArea returns the signed area of the triangle a, b, c
// projected onto the XY plane. It is positive for counter-clockwise
// winding and negative for clockwise.
func SignedArea(a, b, c Vertex) float32 {
	return 0.5 * ((b.Position[0]-a.Position[0])*(c.Position[1]-a.Position[1]) -
		(c.Position[0]-a.Position[0])*(b.Position[1]-a.Position[1]))
}

// CounterClockwise returns whether every triangle in the given
// triangle list is wound counter-clockwise and non-degenerate.
// Trailing vertices that do not form a full triangle are ignored.
func CounterClockwise(vtx []Vertex) bool {
	n := len(vtx) / 3
	if n == 0 {
		return false
	}
	for i := 0; i < n; i++ {
		if SignedArea(vtx[3*i], vtx[3*i+1], vtx[3*i+2]) <= 0 {
			return false
		}
	}
	return true
}

// Bounds returns the min and max corners of the XY extent of the vertices.
func Bounds(vtx []Vertex) (min, max [2]float32) {
	if len(vtx) == 0 {
		return
	}
	min = [2]float32{math.MaxFloat32, math.MaxFloat32}
	max = [2]float32{-math.MaxFloat32, -math.MaxFloat32}
	for _, v := range vtx {
		for d := 0; d < 2; d++ {
			min[d] = math32.Min(min[d], v.Position[d])
			max[d] = math32.Max(max[d], v.Position[d])
		}
	}
	return
}
