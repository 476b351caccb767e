// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the default colored slog handler and
// user verbosity settings.
package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// Handler is a [slog.Handler] that writes one line per record,
// with the level name colored according to its severity.
type Handler struct {
	out   *termenv.Output
	level slog.Leveler
	mu    *sync.Mutex

	// prefix is the dotted group prefix applied to attribute keys.
	prefix string
	attrs  []slog.Attr
}

// NewHandler returns a new [Handler] writing to w. If level is nil,
// the current [UserLevel] is used for each record.
func NewHandler(w io.Writer, level slog.Leveler, opts ...termenv.OutputOption) *Handler {
	if level == nil {
		level = userLeveler{}
	}
	return &Handler{
		out:   termenv.NewOutput(w, opts...),
		level: level,
		mu:    &sync.Mutex{},
	}
}

// SetDefaultLogger sets the default logger to a [Handler] writing
// to [os.Stderr] at the [UserLevel].
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, nil)))
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(h.levelString(r.Level))
	sb.WriteByte(' ')
	sb.WriteString(r.Message)
	for _, a := range h.attrs {
		writeAttr(&sb, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, h.prefix, a)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.WriteString(sb.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	nh.attrs = append(nh.attrs, h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		nh.attrs = append(nh.attrs, a)
	}
	return &nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	nh.prefix = h.prefix + name + "."
	return &nh
}

// levelString returns the colored name of the given level.
func (h *Handler) levelString(level slog.Level) string {
	var clr string
	switch {
	case level >= slog.LevelError:
		clr = "#ff5555"
	case level >= slog.LevelWarn:
		clr = "#f1fa8c"
	case level >= slog.LevelInfo:
		clr = "#50fa7b"
	default:
		clr = "#8be9fd"
	}
	return h.out.String(level.String()).Foreground(h.out.Color(clr)).Bold().String()
}

func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(sb, prefix+a.Key+".", ga)
		}
		return
	}
	fmt.Fprintf(sb, " %s%s=%v", prefix, a.Key, a.Value.Any())
}
