// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

// Shader manages a single WGSL shader, which can have
// multiple entry points.
type Shader struct {
	// Name is the label of the shader module.
	Name string

	// File is the file the code was read from, if any.
	File string

	// Code is the WGSL source.
	Code string

	module *wgpu.ShaderModule
}

// NewShader returns a new Shader with the given name.
func NewShader(name string) *Shader {
	return &Shader{Name: name}
}

// OpenFile reads the shader code from the given file.
func (sh *Shader) OpenFile(fname string) error {
	b, err := os.ReadFile(fname)
	if err != nil {
		return fmt.Errorf("gpu: read shader %q: %w", sh.Name, err)
	}
	sh.File = fname
	sh.OpenCode(string(b))
	return nil
}

// OpenCode sets the shader code.
func (sh *Shader) OpenCode(code string) {
	sh.Code = code
}

// Compile creates the shader module on the given device,
// releasing any prior module.
func (sh *Shader) Compile(dev *Device) error {
	if sh.Code == "" {
		return fmt.Errorf("gpu: shader %q has no code", sh.Name)
	}
	module, err := dev.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          sh.Name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: sh.Code},
	})
	if err != nil {
		return fmt.Errorf("gpu: compile shader %q: %w", sh.Name, err)
	}
	sh.Release()
	sh.module = module
	return nil
}

// Module returns the compiled shader module, nil before [Shader.Compile].
func (sh *Shader) Module() *wgpu.ShaderModule {
	return sh.module
}

// Release releases the shader module.
func (sh *Shader) Release() {
	if sh.module == nil {
		return
	}
	sh.module.Release()
	sh.module = nil
}
