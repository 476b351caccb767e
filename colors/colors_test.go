// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colors

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHex(t *testing.T) {
	tests := map[string]color.RGBA{
		"#1a334d":   {0x1a, 0x33, 0x4d, 0xff},
		"1A334D":    {0x1a, 0x33, 0x4d, 0xff},
		"#fff":      {0xff, 0xff, 0xff, 0xff},
		"#10203080": {0x10, 0x20, 0x30, 0x80},
	}
	for in, want := range tests {
		c, err := FromHex(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, c, in)
	}
	for _, bad := range []string{"#12", "#12345", "#zzzzzz", ""} {
		_, err := FromHex(bad)
		assert.Error(t, err, bad)
	}
}

func TestFromString(t *testing.T) {
	c, err := FromString("CornflowerBlue")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{100, 149, 237, 255}, c)

	c, err = FromString(" #000 ")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, c)

	_, err = FromString("notacolor")
	assert.Error(t, err)
	_, err = FromString("")
	assert.Error(t, err)
}

func TestToFloat64(t *testing.T) {
	r, g, b, a := ToFloat64(color.RGBA{255, 0, 51, 255})
	assert.Equal(t, 1.0, r)
	assert.Equal(t, 0.0, g)
	assert.InDelta(t, 0.2, b, 1e-9)
	assert.Equal(t, 1.0, a)
}

func TestToLinear(t *testing.T) {
	assert.Equal(t, float32(0), SRGBToLinear(0))
	assert.InDelta(t, 1, SRGBToLinear(1), 1e-6)
	assert.InDelta(t, 0.2140, SRGBToLinear(0.5), 1e-3)

	r, g, b, a := ToLinear(color.RGBA{255, 128, 0, 128})
	assert.InDelta(t, 1, r, 1e-6)
	assert.InDelta(t, 0.2158, g, 1e-3)
	assert.Equal(t, 0.0, b)
	assert.InDelta(t, 128.0/255, a, 1e-9)
}
