// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"cogentcore.org/hellogpu/mesh"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meshLayout() *VertexLayout {
	return NewVertexLayout().Add("Position", Float32Vector3).Add("Color", Float32Vector3)
}

func TestTypes(t *testing.T) {
	assert.Equal(t, 12, Float32Vector3.Bytes())
	assert.Equal(t, wgpu.VertexFormatFloat32x3, Float32Vector3.VertexFormat())
	assert.Equal(t, wgpu.VertexFormatFloat32x2, Float32Vector2.VertexFormat())
	assert.Equal(t, 0, UndefinedType.Bytes())
	assert.Equal(t, "Float32Vector4", Float32Vector4.String())
	assert.Equal(t, "UndefinedType", Types(99).String())
}

func TestVertexLayout(t *testing.T) {
	vl := meshLayout()
	assert.Equal(t, mesh.VertexSize, vl.Stride())
	assert.Equal(t, 0, vl.Offset(0))
	assert.Equal(t, 12, vl.Offset(1))

	bl := vl.BufferLayout()
	assert.Equal(t, uint64(24), bl.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, bl.StepMode)
	require.Len(t, bl.Attributes, 2)
	assert.Equal(t, wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0}, bl.Attributes[0])
	assert.Equal(t, wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, bl.Attributes[1])
}

func TestChooseFormat(t *testing.T) {
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb,
		ChooseFormat([]wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb}))
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm,
		ChooseFormat([]wgpu.TextureFormat{wgpu.TextureFormatRGBA8Unorm, wgpu.TextureFormatBGRA8Unorm}))
	assert.Equal(t, wgpu.TextureFormatUndefined, ChooseFormat(nil))
	assert.True(t, IsSRGB(wgpu.TextureFormatRGBA8UnormSrgb))
	assert.False(t, IsSRGB(wgpu.TextureFormatRGBA8Unorm))
}

func TestPresentMode(t *testing.T) {
	tests := map[string]wgpu.PresentMode{
		"":             wgpu.PresentModeFifo,
		"fifo":         wgpu.PresentModeFifo,
		"fifo-relaxed": wgpu.PresentModeFifoRelaxed,
		"mailbox":      wgpu.PresentModeMailbox,
		"immediate":    wgpu.PresentModeImmediate,
	}
	for in, want := range tests {
		got, err := PresentMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := PresentMode("vsync")
	assert.Error(t, err)

	avail := []wgpu.PresentMode{wgpu.PresentModeFifo, wgpu.PresentModeImmediate}
	assert.Equal(t, wgpu.PresentModeImmediate, ChoosePresentMode(avail, wgpu.PresentModeImmediate))
	assert.Equal(t, wgpu.PresentModeFifo, ChoosePresentMode(avail, wgpu.PresentModeMailbox))
	assert.Equal(t, wgpu.PresentModeFifo, ChoosePresentMode(nil, wgpu.PresentModeMailbox))
}

func TestPowerPreference(t *testing.T) {
	pp, err := PowerPreference("high")
	require.NoError(t, err)
	assert.Equal(t, wgpu.PowerPreferenceHighPerformance, pp)
	pp, err = PowerPreference("low")
	require.NoError(t, err)
	assert.Equal(t, wgpu.PowerPreferenceLowPower, pp)
	_, err = PowerPreference("turbo")
	assert.Error(t, err)
}

func TestAcquireStatus(t *testing.T) {
	cfg := image.Point{800, 600}
	assert.Equal(t, ErrSurfaceOutdated, AcquireStatus(cfg, image.Point{1024, 768}))
	assert.Equal(t, ErrSurfaceLost, AcquireStatus(cfg, cfg))
	assert.Equal(t, ErrSurfaceLost, AcquireStatus(cfg, image.Point{}))

	sf := &Surface{size: cfg, WindowSize: func() image.Point { return image.Point{640, 480} }}
	err := sf.acquireError(errors.New("failed to acquire next swapchain texture"))
	assert.ErrorIs(t, err, ErrSurfaceOutdated)
	assert.Contains(t, err.Error(), "swapchain")
	assert.True(t, Recoverable(err))
}

func TestAcquireOutdated(t *testing.T) {
	size := image.Point{800, 600}
	win := size
	sf := &Surface{size: size, WindowSize: func() image.Point { return win }}

	// the window size is checked before the surface is touched.
	win = image.Point{1024, 768}
	_, _, err := sf.AcquireTexture()
	assert.ErrorIs(t, err, ErrSurfaceOutdated)
	assert.Contains(t, err.Error(), "(1024,768)")

	// same size or minimized: not outdated, and with no surface it is lost.
	for _, w := range []image.Point{size, {0, 0}, {0, 600}} {
		win = w
		assert.NoError(t, sf.Outdated(), w)
		_, _, err = sf.AcquireTexture()
		assert.ErrorIs(t, err, ErrSurfaceLost, w)
	}

	sf.WindowSize = nil
	assert.NoError(t, sf.Outdated())
}

func TestRecreateWithoutDescriptor(t *testing.T) {
	sf := &Surface{size: image.Point{800, 600}}
	err := sf.Recreate(nil)
	assert.ErrorIs(t, err, ErrSurfaceLost)
	assert.True(t, Recoverable(err))
	_, _, err = sf.AcquireTexture()
	assert.ErrorIs(t, err, ErrSurfaceLost)
}

func TestRecoverable(t *testing.T) {
	assert.True(t, Recoverable(ErrSurfaceLost))
	assert.True(t, Recoverable(fmt.Errorf("frame: %w", ErrSurfaceOutdated)))
	assert.False(t, Recoverable(errors.New("gpu: finish command encoder")))
	assert.False(t, Recoverable(nil))
}

func TestSurfaceSetSize(t *testing.T) {
	sf := &Surface{size: image.Point{800, 600}}
	assert.False(t, sf.SetSize(image.Point{0, 600}))
	assert.False(t, sf.SetSize(image.Point{800, -1}))
	assert.False(t, sf.SetSize(image.Point{800, 600}))
	assert.Equal(t, image.Point{800, 600}, sf.Size())

	// no window surface: the new size is kept and the error is logged.
	assert.True(t, sf.SetSize(image.Point{1024, 768}))
	assert.Equal(t, image.Point{1024, 768}, sf.Size())
	assert.ErrorIs(t, sf.Reconfigure(), ErrSurfaceLost)
}

func TestRender(t *testing.T) {
	rd := NewRender(color.RGBA{255, 128, 0, 255}, wgpu.TextureFormatBGRA8Unorm)
	assert.False(t, rd.Linear)
	cv := rd.ClearValue()
	assert.Equal(t, 1.0, cv.R)
	assert.InDelta(t, 128.0/255, cv.G, 1e-9)
	assert.Equal(t, 0.0, cv.B)
	assert.Equal(t, 1.0, cv.A)

	rd = NewRender(color.RGBA{255, 128, 0, 255}, wgpu.TextureFormatBGRA8UnormSrgb)
	assert.True(t, rd.Linear)
	cv = rd.ClearValue()
	assert.InDelta(t, 0.2158, cv.G, 1e-3)

	rpd := rd.ClearRenderPass(nil)
	require.Len(t, rpd.ColorAttachments, 1)
	ca := rpd.ColorAttachments[0]
	assert.Equal(t, wgpu.LoadOpClear, ca.LoadOp)
	assert.Equal(t, wgpu.StoreOpStore, ca.StoreOp)
	assert.Equal(t, cv, ca.ClearValue)
}

func TestShaderOpen(t *testing.T) {
	sh := NewShader("triangle")
	require.NoError(t, sh.OpenFile(filepath.Join("testdata", "triangle.wgsl")))
	assert.Contains(t, sh.Code, "fn vs_main")
	assert.Contains(t, sh.Code, "fn fs_main")
	assert.Nil(t, sh.Module())

	assert.Error(t, NewShader("missing").OpenFile(filepath.Join("testdata", "missing.wgsl")))
	assert.Error(t, NewShader("empty").Compile(&Device{}))
}

func TestPipelineDescriptor(t *testing.T) {
	pl := NewGraphicsPipeline("triangle", NewShader("triangle"), meshLayout(), wgpu.TextureFormatBGRA8UnormSrgb)
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, pl.Primitive.Topology)
	assert.Equal(t, wgpu.FrontFaceCCW, pl.Primitive.FrontFace)
	assert.Equal(t, wgpu.CullModeBack, pl.Primitive.CullMode)
	assert.Equal(t, uint32(1), pl.Multisample.Count)

	pd := pl.Descriptor(nil, nil)
	assert.Equal(t, "triangle", pd.Label)
	assert.Equal(t, "vs_main", pd.Vertex.EntryPoint)
	require.Len(t, pd.Vertex.Buffers, 1)
	assert.Equal(t, uint64(mesh.VertexSize), pd.Vertex.Buffers[0].ArrayStride)
	require.NotNil(t, pd.Fragment)
	assert.Equal(t, "fs_main", pd.Fragment.EntryPoint)
	require.Len(t, pd.Fragment.Targets, 1)
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, pd.Fragment.Targets[0].Format)

	pl.SetMultisample(0)
	assert.Equal(t, uint32(1), pl.Multisample.Count)
	assert.Error(t, pl.BindPipeline(nil))
}

func TestVertexBufferErrors(t *testing.T) {
	_, err := NewVertexBuffer(&Device{}, "empty", meshLayout(), []mesh.Vertex{})
	assert.ErrorContains(t, err, "no vertices")

	type vec2 struct{ X, Y float32 }
	_, err = NewVertexBuffer(&Device{}, "short", meshLayout(), []vec2{{0, 1}, {1, 0}, {1, 1}})
	assert.ErrorContains(t, err, "does not match stride 24")
}

func TestPipelineRebuildFailure(t *testing.T) {
	sh := NewShader("triangle")
	require.NoError(t, sh.OpenFile(filepath.Join("testdata", "triangle.wgsl")))
	pl := NewGraphicsPipeline("triangle", sh, meshLayout(), wgpu.TextureFormatBGRA8UnormSrgb)

	err := pl.Rebuild(&Device{}, NewShader("new"))
	assert.ErrorContains(t, err, "not configured")
	assert.Same(t, sh, pl.Shader)

	// a configured pipeline keeps its shader when the new one does not compile.
	pl.layout = &wgpu.PipelineLayout{}
	err = pl.Rebuild(&Device{}, NewShader("empty"))
	assert.ErrorContains(t, err, "has no code")
	assert.Same(t, sh, pl.Shader)
	assert.Contains(t, pl.Shader.Code, "fn vs_main")
}

func TestGPUTriangle(t *testing.T) {
	t.Skip("Need software GPU on CI")
	defer ReleaseInstance()
	gp, err := NewGPU(nil, "high")
	require.NoError(t, err)
	defer gp.Release()
	dev, err := NewDevice(gp)
	require.NoError(t, err)
	defer dev.Release()

	format := wgpu.TextureFormatRGBA8UnormSrgb
	sh := NewShader("triangle")
	require.NoError(t, sh.OpenFile(filepath.Join("testdata", "triangle.wgsl")))
	pl := NewGraphicsPipeline("triangle", sh, meshLayout(), format)
	require.NoError(t, pl.Config(dev))
	defer pl.Release()
	vb, err := NewVertexBuffer(dev, "triangle", meshLayout(), mesh.Triangle)
	require.NoError(t, err)
	defer vb.Release()
	assert.Equal(t, 3, vb.N)

	size := image.Point{64, 64}
	tex, err := dev.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "target",
		Usage:         wgpu.TextureUsageRenderAttachment,
		Dimension:     wgpu.TextureDimension2D,
		Size:          wgpu.Extent3D{Width: uint32(size.X), Height: uint32(size.Y), DepthOrArrayLayers: 1},
		Format:        format,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	require.NoError(t, err)
	defer tex.Release()
	view, err := tex.CreateView(nil)
	require.NoError(t, err)
	defer view.Release()

	rd := NewRender(color.RGBA{0x1a, 0x33, 0x4d, 0xff}, format)
	for i := range 2 {
		cmd, err := dev.Device.CreateCommandEncoder(nil)
		require.NoError(t, err)
		rp := rd.BeginRenderPass(cmd, view)
		require.NoError(t, pl.BindPipeline(rp))
		vb.Draw(rp)
		require.NoError(t, rp.End())
		rp.Release()
		cb, err := cmd.Finish(nil)
		require.NoError(t, err)
		dev.Queue.Submit(cb)
		cb.Release()
		cmd.Release()
		dev.WaitDone()

		if i == 0 {
			// a bad shader keeps the pipeline, a good one replaces it.
			bad := NewShader("bad")
			bad.OpenCode("fn vs_main( {")
			assert.Error(t, pl.Rebuild(dev, bad))
			assert.Same(t, sh, pl.Shader)
			good := NewShader("good")
			require.NoError(t, good.OpenFile(filepath.Join("testdata", "triangle.wgsl")))
			require.NoError(t, pl.Rebuild(dev, good))
			assert.Same(t, good, pl.Shader)
		}
	}
}
