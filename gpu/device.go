// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Device holds the logical device and its queue.
type Device struct {
	// Device is the logical device.
	Device *wgpu.Device

	// Queue is the queue for the device.
	Queue *wgpu.Queue
}

// NewDevice requests a logical device from the given GPU.
func NewDevice(gp *GPU) (*Device, error) {
	dev, err := gp.Adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "hellogpu",
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: request device: %w", err)
	}
	return &Device{Device: dev, Queue: dev.GetQueue()}, nil
}

// WaitDone waits until the device is done with all submitted work.
func (dv *Device) WaitDone() {
	if dv.Device == nil {
		return
	}
	dv.Device.Poll(true, nil)
}

// Release releases the queue and the device.
func (dv *Device) Release() {
	if dv.Device == nil {
		return
	}
	dv.WaitDone()
	dv.Queue.Release()
	dv.Queue = nil
	dv.Device.Release()
	dv.Device = nil
}
