// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWakeNotRunning(t *testing.T) {
	// glfw panics on PostEmptyEvent before Init and after Terminate.
	assert.False(t, running)
	assert.NotPanics(t, Wake)
}
