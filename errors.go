// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7735s

import "errors"

var (
	// ErrOutOfRange is returned when a window, shape or blit does not fit in
	// the display surface, or when its corners are reversed.
	ErrOutOfRange = errors.New("out of range")
	// ErrOverrun is returned when more pixels are written than the addressed
	// window holds. Nothing is sent in that case.
	ErrOverrun = errors.New("window overrun")
	// ErrShortWrite is returned when a window is closed, or a new one opened,
	// before all of its pixels were sent.
	ErrShortWrite = errors.New("short write")
	// ErrShortBuffer is returned when an image buffer holds fewer than
	// width*height*2 bytes.
	ErrShortBuffer = errors.New("short image buffer")
)
