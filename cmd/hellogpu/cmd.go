// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cogentcore.org/hellogpu/app"
	"cogentcore.org/hellogpu/base/errors"
	"cogentcore.org/hellogpu/base/logx"
	"cogentcore.org/hellogpu/base/tomlx"
	"cogentcore.org/hellogpu/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options are the command line settings that are not part of [config.Config].
type options struct {
	configFile string
	vv, v, q   bool
}

// newRootCmd returns the hellogpu command. Settings are applied in order:
// defaults, then the config file, then any flags given explicitly.
func newRootCmd() *cobra.Command {
	cfg := config.New()
	flagCfg := config.New()
	opts := &options{}

	root := &cobra.Command{
		Use:           "hellogpu",
		Short:         "Open a window and draw a triangle with WebGPU",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logx.UserLevel = logx.LevelFromFlags(opts.vv, opts.v, opts.q)
			logx.SetDefaultLogger()
			return loadConfig(cmd.Flags(), cfg, flagCfg, opts.configFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			err := app.New(cfg).Run(ctx)
			if err != nil {
				slog.Error(err.Error())
			}
			return err
		},
	}
	root.SetContext(context.Background())

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configFile, "config", "c", "", "config file (default "+config.FileName+" in the working directory or ~/.config/hellogpu)")
	pf.BoolVar(&opts.vv, "vv", false, "very verbose: show debug messages")
	pf.BoolVarP(&opts.v, "verbose", "v", false, "verbose: show info messages")
	pf.BoolVarP(&opts.q, "quiet", "q", false, "quiet: only show errors")

	pf.StringVar(&flagCfg.Title, "title", flagCfg.Title, "window title")
	pf.IntVar(&flagCfg.Width, "width", flagCfg.Width, "window width")
	pf.IntVar(&flagCfg.Height, "height", flagCfg.Height, "window height")
	pf.StringVar(&flagCfg.Shader, "shader", flagCfg.Shader, "WGSL shader file")
	pf.StringVar(&flagCfg.ClearColor, "clear-color", flagCfg.ClearColor, "clear color, as hex or a color name")
	pf.StringVar(&flagCfg.PresentMode, "present-mode", flagCfg.PresentMode, "present mode: fifo, fifo-relaxed, mailbox or immediate")
	pf.StringVar(&flagCfg.Power, "power", flagCfg.Power, "adapter power preference: high or low")
	pf.BoolVar(&flagCfg.Continuous, "continuous", flagCfg.Continuous, "redraw continuously instead of waiting for window events")
	pf.BoolVar(&flagCfg.WatchShader, "watch", flagCfg.WatchShader, "rebuild the pipeline when the shader file changes")
	pf.BoolVar(&flagCfg.Debug, "debug", flagCfg.Debug, "verbose GPU logging")
	errors.Must(root.MarkPersistentFlagFilename("config", "toml"))
	errors.Must(root.MarkPersistentFlagFilename("shader", "wgsl"))

	root.AddCommand(newConfigCmd(cfg))
	return root
}

// newConfigCmd returns the command that prints the effective config.
func newConfigCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return tomlx.Write(cfg, cmd.OutOrStdout())
		},
	}
}

// loadConfig loads the config file into cfg and then applies the
// flags that were set on the command line from flagCfg.
func loadConfig(fs *pflag.FlagSet, cfg, flagCfg *config.Config, file string) error {
	used, err := config.Open(cfg, file)
	if err != nil {
		return err
	}
	if used != "" {
		slog.Info("loaded config", "file", used)
	}
	set := map[string]func(){
		"title":        func() { cfg.Title = flagCfg.Title },
		"width":        func() { cfg.Width = flagCfg.Width },
		"height":       func() { cfg.Height = flagCfg.Height },
		"shader":       func() { cfg.Shader = flagCfg.Shader },
		"clear-color":  func() { cfg.ClearColor = flagCfg.ClearColor },
		"present-mode": func() { cfg.PresentMode = flagCfg.PresentMode },
		"power":        func() { cfg.Power = flagCfg.Power },
		"continuous":   func() { cfg.Continuous = flagCfg.Continuous },
		"watch":        func() { cfg.WatchShader = flagCfg.WatchShader },
		"debug":        func() { cfg.Debug = flagCfg.Debug },
	}
	fs.Visit(func(f *pflag.Flag) {
		if apply, ok := set[f.Name]; ok {
			apply()
		}
	})
	return nil
}
