// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tomlx provides TOML encoding and decoding helpers
// over files and bytes.
package tomlx

import (
	"bytes"
	"io"
	"os"

	"cogentcore.org/hellogpu/base/errors"
	"github.com/pelletier/go-toml/v2"
)

// NewDecoder returns a new [toml.Decoder] reading from r,
// which rejects unknown keys.
func NewDecoder(r io.Reader) *toml.Decoder {
	return toml.NewDecoder(r).DisallowUnknownFields()
}

// Open reads the given object from the given filename using TOML encoding.
func Open(v any, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return Read(v, f)
}

// OpenFiles reads the given object from the given filenames using TOML encoding,
// in order, so later files override values set by earlier ones.
func OpenFiles(v any, filenames ...string) error {
	var errs []error
	for _, fn := range filenames {
		if err := Open(v, fn); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Read reads the given object from the given reader using TOML encoding.
func Read(v any, reader io.Reader) error {
	return NewDecoder(reader).Decode(v)
}

// ReadBytes reads the given object from the given bytes using TOML encoding.
func ReadBytes(v any, data []byte) error {
	return Read(v, bytes.NewReader(data))
}

// Save writes the given object to the given filename using TOML encoding.
func Save(v any, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(v, f)
}

// Write writes the given object using TOML encoding.
func Write(v any, writer io.Writer) error {
	return toml.NewEncoder(writer).Encode(v)
}

// WriteBytes writes the given object, returning bytes of the encoding.
func WriteBytes(v any) ([]byte, error) {
	var b bytes.Buffer
	if err := Write(v, &b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
