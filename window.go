// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7735s

import (
	"fmt"

	"github.com/GermanBionicSystems/st7735s/rgb565"
)

// Window is the pixel stream of an addressed region of the controller RAM.
//
// The controller fills the region row by row, starting at its top left
// corner. Exactly Remaining() pixels must be written before Close. Only one
// Window is open at a time; the value returned by Dev.Window is reused by the
// next call. A bus error closes the window.
type Window struct {
	d    *Dev
	left int // bytes not accepted yet
	n    int // bytes waiting in d.buf
	open bool
}

// Window addresses the inclusive region (x0, y0)-(x1, y1) and returns its
// pixel stream.
//
// The region must lie inside Bounds() with x0 <= x1 and y0 <= y1, otherwise
// ErrOutOfRange is returned and nothing is sent. If the previous window was
// not fully written, ErrShortWrite is returned and the previous window is
// dropped.
func (d *Dev) Window(x0, y0, x1, y1 int) (*Window, error) {
	if err := d.closeWindow(); err != nil {
		return nil, err
	}
	if x0 > x1 || y0 > y1 || x0 < 0 || y0 < 0 || x1 >= d.rect.Max.X || y1 >= d.rect.Max.Y {
		return nil, fmt.Errorf("st7735s: window (%d,%d)-(%d,%d) on %dx%d: %w", x0, y0, x1, y1, d.rect.Dx(), d.rect.Dy(), ErrOutOfRange)
	}
	eh := errorHandler{d: d}
	setWindow(&eh, x0+d.opts.ColOffset, y0+d.opts.RowOffset, x1+d.opts.ColOffset, y1+d.opts.RowOffset)
	if eh.err != nil {
		return nil, eh.err
	}
	d.win = Window{d: d, left: 2 * (x1 - x0 + 1) * (y1 - y0 + 1), open: true}
	return &d.win, nil
}

// FullScreen addresses the whole display.
func (d *Dev) FullScreen() (*Window, error) {
	return d.Window(0, 0, d.rect.Dx()-1, d.rect.Dy()-1)
}

// closeWindow terminates the open window, if any.
func (d *Dev) closeWindow() error {
	if !d.win.open {
		return nil
	}
	if d.win.left > 0 {
		missing := d.win.Remaining()
		d.win.abandon()
		return fmt.Errorf("st7735s: previous window is missing %d pixels: %w", missing, ErrShortWrite)
	}
	return d.win.Close()
}

// Remaining returns the number of pixels still owed to the window.
func (w *Window) Remaining() int {
	return (w.left + 1) / 2
}

// Write sends raw pixel bytes, high byte first.
//
// It implements io.Writer. Writing more bytes than the window holds returns
// ErrOverrun and sends nothing.
func (w *Window) Write(p []byte) (int, error) {
	if len(p) > w.left {
		return 0, fmt.Errorf("st7735s: %d bytes for %d left in window: %w", len(p), w.left, ErrOverrun)
	}
	if err := w.flush(); err != nil {
		return 0, err
	}
	eh := errorHandler{d: w.d}
	eh.sendData(p)
	if eh.err != nil {
		w.abandon()
		return 0, eh.err
	}
	w.left -= len(p)
	return len(p), nil
}

// WriteColor queues one pixel.
func (w *Window) WriteColor(c rgb565.Color) error {
	if w.left < 2 {
		return fmt.Errorf("st7735s: window is full: %w", ErrOverrun)
	}
	return w.put(byte(c>>8), byte(c))
}

// Fill queues n pixels of the same color.
func (w *Window) Fill(c rgb565.Color, n int) error {
	if n < 0 || 2*n > w.left {
		return fmt.Errorf("st7735s: %d pixels for %d left in window: %w", n, w.Remaining(), ErrOverrun)
	}
	hi, lo := byte(c>>8), byte(c)
	for ; n > 0; n-- {
		if err := w.put(hi, lo); err != nil {
			return err
		}
	}
	return nil
}

// Close sends the queued pixels and ends the stream.
//
// It returns ErrShortWrite when pixels are still owed.
func (w *Window) Close() error {
	if !w.open {
		return nil
	}
	err := w.flush()
	left := w.Remaining()
	w.abandon()
	if err != nil {
		return err
	}
	if left > 0 {
		return fmt.Errorf("st7735s: window closed with %d pixels missing: %w", left, ErrShortWrite)
	}
	return nil
}

func (w *Window) put(hi, lo byte) error {
	if w.n == len(w.d.buf) {
		if err := w.flush(); err != nil {
			return err
		}
	}
	w.d.buf[w.n] = hi
	w.d.buf[w.n+1] = lo
	w.n += 2
	w.left -= 2
	return nil
}

func (w *Window) flush() error {
	if w.n == 0 {
		return nil
	}
	eh := errorHandler{d: w.d}
	eh.sendData(w.d.buf[:w.n])
	w.n = 0
	if eh.err != nil {
		// The controller state is unknown; the next window readdresses it.
		w.abandon()
	}
	return eh.err
}

func (w *Window) abandon() {
	w.open = false
	w.left = 0
	w.n = 0
}
