// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colors parses colors given by name or hex value and
// converts them to the normalized floating point form used by the GPU.
package colors

import (
	"fmt"
	"image/color"
	"strings"

	"cogentcore.org/hellogpu/base/errors"
	"github.com/chewxy/math32"
	"golang.org/x/image/colornames"
)

// FromName returns the color value specified
// by the given CSS standard color name.
func FromName(name string) (color.RGBA, error) {
	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return color.RGBA{}, errors.New("colors.FromName: name not found: " + name)
	}
	return c, nil
}

// FromHex parses the given hex color string, with or without
// a leading #, in 3, 6 or 8 digit form.
func FromHex(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b, a int
	a = 255
	var n int
	var err error
	switch len(hex) {
	case 3:
		n, err = fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b)
		r |= r << 4
		g |= g << 4
		b |= b << 4
		n++
	case 6:
		n, err = fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
		n++
	case 8:
		n, err = fmt.Sscanf(hex, "%02x%02x%02x%02x", &r, &g, &b, &a)
	default:
		return color.RGBA{}, errors.New("colors.FromHex: could not process: " + hex)
	}
	if err != nil || n != 4 {
		return color.RGBA{}, errors.New("colors.FromHex: could not process: " + hex)
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), uint8(a)}, nil
}

// FromString returns a color from a hex value (starting with #)
// or a standard color name.
func FromString(str string) (color.RGBA, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return color.RGBA{}, errors.New("colors.FromString: empty color")
	}
	if str[0] == '#' {
		return FromHex(str)
	}
	return FromName(str)
}

// ToFloat64 returns the color components normalized to [0, 1].
func ToFloat64(c color.RGBA) (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

// SRGBToLinear converts one sRGB encoded component in [0, 1]
// to linear space.
func SRGBToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}

// ToLinear returns the color components normalized to [0, 1]
// and converted from sRGB to linear space. Alpha is not converted.
func ToLinear(c color.RGBA) (r, g, b, a float64) {
	r, g, b, a = ToFloat64(c)
	return float64(SRGBToLinear(float32(r))), float64(SRGBToLinear(float32(g))), float64(SRGBToLinear(float32(b))), a
}
