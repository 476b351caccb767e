// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVertexSize(t *testing.T) {
	assert.Equal(t, 24, VertexSize)
}

func TestTriangle(t *testing.T) {
	assert.Len(t, Triangle, 3)
	assert.True(t, CounterClockwise(Triangle))
	assert.InDelta(t, 1.125, SignedArea(Triangle[0], Triangle[1], Triangle[2]), 1e-6)

	cw := []Vertex{Triangle[0], Triangle[2], Triangle[1]}
	assert.False(t, CounterClockwise(cw))
	assert.Less(t, SignedArea(cw[0], cw[1], cw[2]), float32(0))

	flat := []Vertex{Triangle[0], Triangle[0], Triangle[1]}
	assert.False(t, CounterClockwise(flat))
	assert.False(t, CounterClockwise(nil))
}

func TestBounds(t *testing.T) {
	min, max := Bounds(Triangle)
	assert.Equal(t, [2]float32{-0.75, -0.75}, min)
	assert.Equal(t, [2]float32{0.75, 0.75}, max)

	min, max = Bounds(nil)
	assert.Equal(t, [2]float32{}, min)
	assert.Equal(t, [2]float32{}, max)
}
