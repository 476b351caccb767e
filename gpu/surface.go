// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"log/slog"
	"slices"

	"cogentcore.org/hellogpu/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrSurfaceLost is returned when the surface texture could not be
	// acquired and the surface needs to be created again.
	ErrSurfaceLost = errors.New("gpu: surface lost")

	// ErrSurfaceOutdated is returned when the surface texture could not
	// be acquired because the window size no longer matches the
	// surface configuration.
	ErrSurfaceOutdated = errors.New("gpu: surface outdated")
)

// Recoverable returns whether the given frame error is fixed by
// reconfiguring ([ErrSurfaceOutdated]) or recreating ([ErrSurfaceLost])
// the surface.
func Recoverable(err error) bool {
	return errors.Is(err, ErrSurfaceLost) || errors.Is(err, ErrSurfaceOutdated)
}

// Surface manages the configuration of a window surface and
// provides the textures rendered to each frame.
type Surface struct {
	// Format is the texture format configured for the surface.
	Format wgpu.TextureFormat

	// PresentMode is the configured present mode.
	PresentMode wgpu.PresentMode

	// AlphaMode is the configured composite alpha mode.
	AlphaMode wgpu.CompositeAlphaMode

	// GPU is the adapter the surface is configured for.
	GPU *GPU

	// Device is the device the surface is configured for.
	Device *Device

	// WindowSize, if set, returns the current framebuffer size of
	// the window, which is used to tell outdated from lost surfaces.
	WindowSize func() image.Point

	// size is the configured size.
	size image.Point

	surface *wgpu.Surface
}

// NewSurface returns a new Surface for the given window surface,
// configured at the given size with the requested present mode
// ("fifo", "fifo-relaxed", "mailbox" or "immediate"). Unsupported
// present modes fall back to fifo, which is always available.
func NewSurface(gp *GPU, dev *Device, ws *wgpu.Surface, size image.Point, presentMode string) (*Surface, error) {
	want, err := PresentMode(presentMode)
	if err != nil {
		return nil, err
	}
	caps := ws.GetCapabilities(gp.Adapter)
	if len(caps.Formats) == 0 {
		return nil, errors.New("gpu: surface is not supported by the adapter")
	}
	sf := &Surface{
		GPU:     gp,
		Device:  dev,
		surface: ws,
		size:    size,
	}
	sf.Format = ChooseFormat(caps.Formats)
	sf.PresentMode = ChoosePresentMode(caps.PresentModes, want)
	sf.AlphaMode = wgpu.CompositeAlphaModeAuto
	if len(caps.AlphaModes) > 0 {
		sf.AlphaMode = caps.AlphaModes[0]
	}
	if err := sf.Reconfigure(); err != nil {
		return nil, err
	}
	slog.Info("gpu: surface configured", "format", sf.Format.String(), "present", sf.PresentMode.String(), "size", size)
	return sf, nil
}

// Size returns the configured size.
func (sf *Surface) Size() image.Point {
	return sf.size
}

// SetSize configures the surface for the given size. Sizes with a
// non-positive dimension (e.g., a minimized window) and the current
// size are ignored, returning false.
func (sf *Surface) SetSize(size image.Point) bool {
	if size.X <= 0 || size.Y <= 0 || size == sf.size {
		return false
	}
	sf.size = size
	if err := sf.Reconfigure(); err != nil {
		slog.Error(err.Error())
	}
	return true
}

// Reconfigure applies the current configuration to the surface,
// which is needed after it is outdated or the window moved.
func (sf *Surface) Reconfigure() error {
	if sf.surface == nil {
		return ErrSurfaceLost
	}
	if sf.size.X <= 0 || sf.size.Y <= 0 {
		return fmt.Errorf("gpu: cannot configure surface at size %v", sf.size)
	}
	sf.surface.Configure(sf.GPU.Adapter, sf.Device.Device, sf.configuration())
	return nil
}

// Recreate replaces a lost surface with a new one created from the
// given descriptor and configures it with the current settings.
func (sf *Surface) Recreate(desc *wgpu.SurfaceDescriptor) error {
	sf.Release()
	if desc == nil {
		return fmt.Errorf("%w: no surface descriptor", ErrSurfaceLost)
	}
	sf.surface = Instance().CreateSurface(desc)
	return sf.Reconfigure()
}

func (sf *Surface) configuration() *wgpu.SurfaceConfiguration {
	return &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      sf.Format,
		Width:       uint32(sf.size.X),
		Height:      uint32(sf.size.Y),
		PresentMode: sf.PresentMode,
		AlphaMode:   sf.AlphaMode,
	}
}

// AcquireTexture returns the surface texture to render the next frame
// into, and a view of it. Only the view must be released, after
// [Surface.Present]. Errors wrap [ErrSurfaceOutdated] when the window
// size no longer matches the configured size, and [ErrSurfaceLost]
// when there is no surface or the texture could not be acquired.
func (sf *Surface) AcquireTexture() (*wgpu.Texture, *wgpu.TextureView, error) {
	// GetCurrentTexture does not report the texture status, and an
	// outdated surface returns an invalid texture, so this is checked first.
	if err := sf.Outdated(); err != nil {
		return nil, nil, err
	}
	if sf.surface == nil {
		return nil, nil, ErrSurfaceLost
	}
	tex, err := sf.surface.GetCurrentTexture()
	if err != nil {
		return nil, nil, sf.acquireError(err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: create surface texture view: %v", ErrSurfaceLost, err)
	}
	return tex, view, nil
}

// Outdated returns an error wrapping [ErrSurfaceOutdated] if the
// window has a positive size that differs from the configured size.
func (sf *Surface) Outdated() error {
	if sf.WindowSize == nil {
		return nil
	}
	current := sf.WindowSize()
	if current.X <= 0 || current.Y <= 0 || current == sf.size {
		return nil
	}
	return fmt.Errorf("%w: window is %v, surface is %v", ErrSurfaceOutdated, current, sf.size)
}

func (sf *Surface) acquireError(err error) error {
	var current image.Point
	if sf.WindowSize != nil {
		current = sf.WindowSize()
	}
	return fmt.Errorf("%w: %v", AcquireStatus(sf.size, current), err)
}

// AcquireStatus classifies a failure to acquire the surface texture,
// given the configured size and the current window size (zero if
// unknown): a size mismatch means the surface is outdated,
// otherwise it is lost.
func AcquireStatus(configured, current image.Point) error {
	if current != (image.Point{}) && current != configured {
		return ErrSurfaceOutdated
	}
	return ErrSurfaceLost
}

// Present shows the most recently acquired texture on the surface.
func (sf *Surface) Present() {
	sf.surface.Present()
}

// Release releases the surface.
func (sf *Surface) Release() {
	if sf.surface == nil {
		return
	}
	sf.surface.Release()
	sf.surface = nil
}

// ChooseFormat returns the first sRGB format in the given surface
// formats, or the first format if there is no sRGB one.
func ChooseFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if IsSRGB(f) {
			return f
		}
	}
	if len(formats) == 0 {
		return wgpu.TextureFormatUndefined
	}
	return formats[0]
}

// IsSRGB returns whether the given format stores sRGB encoded color,
// which means clear colors must be given in linear space.
func IsSRGB(f wgpu.TextureFormat) bool {
	switch f {
	case wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatRGBA8UnormSrgb:
		return true
	}
	return false
}

// ChoosePresentMode returns want if it is in the available modes,
// and fifo otherwise.
func ChoosePresentMode(available []wgpu.PresentMode, want wgpu.PresentMode) wgpu.PresentMode {
	if slices.Contains(available, want) {
		return want
	}
	return wgpu.PresentModeFifo
}

// PresentMode returns the present mode for the given config value.
func PresentMode(mode string) (wgpu.PresentMode, error) {
	switch mode {
	case "", "fifo":
		return wgpu.PresentModeFifo, nil
	case "fifo-relaxed":
		return wgpu.PresentModeFifoRelaxed, nil
	case "mailbox":
		return wgpu.PresentModeMailbox, nil
	case "immediate":
		return wgpu.PresentModeImmediate, nil
	}
	return wgpu.PresentModeFifo, fmt.Errorf("gpu: unknown present mode %q", mode)
}
