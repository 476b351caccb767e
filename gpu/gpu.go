// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu is a thin layer over WebGPU that takes hellogpu through
// the standard bring-up sequence: instance, surface, adapter, device,
// surface configuration, shader, pipeline, vertex buffer, and then one
// clear-draw-present frame at a time.
package gpu

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// Debug turns on verbose logging from the underlying
// WebGPU implementation. Set it before calling [Instance].
var Debug = false

// theInstance is the process-wide WebGPU instance.
var theInstance *wgpu.Instance

// Instance returns the WebGPU instance, creating it on first use.
func Instance() *wgpu.Instance {
	if theInstance == nil {
		if Debug {
			wgpu.SetLogLevel(wgpu.LogLevelInfo)
		} else {
			wgpu.SetLogLevel(wgpu.LogLevelWarn)
		}
		theInstance = wgpu.CreateInstance(nil)
	}
	return theInstance
}

// ReleaseInstance releases the WebGPU instance, if any.
// Call it after all other GPU objects have been released.
func ReleaseInstance() {
	if theInstance == nil {
		return
	}
	theInstance.Release()
	theInstance = nil
}

// GPU represents the adapter chosen for rendering to a surface.
type GPU struct {
	// Adapter is the physical device.
	Adapter *wgpu.Adapter

	// Properties are the adapter's properties.
	Properties wgpu.AdapterInfo
}

// NewGPU requests an adapter that can present to the given surface,
// with the given power preference ("high" or "low").
func NewGPU(surface *wgpu.Surface, power string) (*GPU, error) {
	pp, err := PowerPreference(power)
	if err != nil {
		return nil, err
	}
	adapter, err := Instance().RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   pp,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: request adapter: %w", err)
	}
	gp := &GPU{Adapter: adapter}
	gp.Properties = adapter.GetInfo()
	slog.Info("gpu: adapter selected", "name", gp.Properties.Name, "backend", gp.Properties.BackendType.String())
	return gp, nil
}

// Release releases the adapter.
func (gp *GPU) Release() {
	if gp.Adapter == nil {
		return
	}
	gp.Adapter.Release()
	gp.Adapter = nil
}

// PowerPreference returns the adapter power preference for
// the given config value.
func PowerPreference(power string) (wgpu.PowerPreference, error) {
	switch power {
	case "", "high":
		return wgpu.PowerPreferenceHighPerformance, nil
	case "low":
		return wgpu.PowerPreferenceLowPower, nil
	}
	return wgpu.PowerPreferenceUndefined, fmt.Errorf("gpu: unknown power preference %q", power)
}
