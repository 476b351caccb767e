// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration struct for hellogpu,
// and the logic for finding and loading its TOML config file.
package config

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"slices"

	"cogentcore.org/hellogpu/base/errors"
	"cogentcore.org/hellogpu/base/tomlx"
	"cogentcore.org/hellogpu/colors"
	"github.com/mitchellh/go-homedir"
)

// FileName is the name of the config file looked for
// in the working directory and the user config directory.
const FileName = "hellogpu.toml"

// PresentModes are the accepted values of [Config.PresentMode].
var PresentModes = []string{"fifo", "fifo-relaxed", "mailbox", "immediate"}

// Powers are the accepted values of [Config.Power].
var Powers = []string{"high", "low"}

// Config is the configuration for hellogpu.
type Config struct {

	// Title is the window title.
	Title string `toml:"title"`

	// Width is the initial window width in screen coordinates.
	Width int `toml:"width"`

	// Height is the initial window height in screen coordinates.
	Height int `toml:"height"`

	// Shader is the path of the WGSL shader file, relative
	// to the working directory.
	Shader string `toml:"shader"`

	// ClearColor is the color the frame is cleared to,
	// as a hex value or a standard color name.
	ClearColor string `toml:"clear_color"`

	// PresentMode is the requested surface present mode;
	// unsupported modes fall back to fifo.
	PresentMode string `toml:"present_mode"`

	// Power is the adapter power preference.
	Power string `toml:"power"`

	// Continuous redraws without waiting for window events.
	Continuous bool `toml:"continuous"`

	// WatchShader rebuilds the pipeline when the shader file changes.
	WatchShader bool `toml:"watch_shader"`

	// Debug turns on verbose GPU logging.
	Debug bool `toml:"debug"`
}

// Defaults sets the default values.
func (c *Config) Defaults() {
	c.Title = "WGPU practice"
	c.Width = 1280
	c.Height = 720
	c.Shader = filepath.Join("shaders", "shader.wgsl")
	c.ClearColor = "#1a334d"
	c.PresentMode = "fifo"
	c.Power = "high"
	c.Continuous = false
	c.WatchShader = false
	c.Debug = false
}

// New returns a new Config with default values.
func New() *Config {
	c := &Config{}
	c.Defaults()
	return c
}

// Size returns the window size.
func (c *Config) Size() image.Point {
	return image.Point{c.Width, c.Height}
}

// Color returns the parsed clear color.
func (c *Config) Color() (color.RGBA, error) {
	return colors.FromString(c.ClearColor)
}

// Validate returns an error describing every invalid field, or nil.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("config: window size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Shader == "" {
		errs = append(errs, errors.New("config: shader path is empty"))
	}
	if _, err := c.Color(); err != nil {
		errs = append(errs, fmt.Errorf("config: clear_color: %w", err))
	}
	if !slices.Contains(PresentModes, c.PresentMode) {
		errs = append(errs, fmt.Errorf("config: present_mode %q is not one of %v", c.PresentMode, PresentModes))
	}
	if !slices.Contains(Powers, c.Power) {
		errs = append(errs, fmt.Errorf("config: power %q is not one of %v", c.Power, Powers))
	}
	return errors.Join(errs...)
}

// SearchPaths returns the config file locations checked, in order,
// when no file is given explicitly: the working directory and then
// the user config directory.
func SearchPaths() []string {
	paths := []string{FileName}
	if home, err := homedir.Dir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "hellogpu", FileName))
	}
	return paths
}

// Open loads the config file into c, on top of its current values.
// If file is non-empty it must exist. Otherwise the first existing
// file in [SearchPaths] is used, and having none is not an error.
// It returns the path that was loaded, if any.
func Open(c *Config, file string) (string, error) {
	if file != "" {
		fn, err := homedir.Expand(file)
		if err != nil {
			return "", err
		}
		return fn, tomlx.Open(c, fn)
	}
	for _, fn := range SearchPaths() {
		if _, err := os.Stat(fn); err != nil {
			continue
		}
		return fn, tomlx.Open(c, fn)
	}
	return "", nil
}
