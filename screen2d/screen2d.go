// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen2d implements a 2D display.Drawer that outputs to terminal
// (stdout) using ANSI color codes.
//
// Useful to preview what an st7735stest.Controller received while the panel
// is still on its way.
package screen2d

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	W int
	H int
	// Step keeps one pixel out of Step in each direction so a wide image fits
	// in the terminal. 0 is the same as 1.
	Step    int
	Palette *ansi256.Palette
	// Out defaults to stdout.
	Out io.Writer
	// Home redraws each frame over the previous one.
	Home bool

	_ struct{}
}

// Dev is a display emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	step    int
	home    bool
	palette ansi256.Palette

	pixels *image.NRGBA
	buf    bytes.Buffer
	lines  int
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Out
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	step := opts.Step
	if step < 1 {
		step = 1
	}
	return &Dev{
		w:       w,
		step:    step,
		home:    opts.Home,
		palette: *p,
		pixels:  image.NewNRGBA(image.Rect(0, 0, opts.W, opts.H)),
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("Screen2D{%dx%d}", d.pixels.Rect.Dx(), d.pixels.Rect.Dy())
}

// Halt implements conn.Resource.
//
// It resets the terminal colors.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// Write accepts a stream of raw RGB pixels, row by row, and writes it to the
// console.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != 3*len(d.pixels.Pix)/4 {
		return 0, errors.New("screen2d: invalid RGB stream length")
	}
	for i := 0; i < len(pixels)/3; i++ {
		copy(d.pixels.Pix[4*i:], pixels[3*i:3*i+3])
		d.pixels.Pix[4*i+3] = 255
	}
	if err := d.refresh(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.pixels.Rect
}

// Draw implements display.Drawer.
//
// The whole frame is written again after each call.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(d.pixels, r, src, sp, draw.Src)
	return d.refresh()
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	if d.home && d.lines != 0 {
		_, _ = fmt.Fprintf(&d.buf, "\033[%dA", d.lines)
	}
	d.lines = 0
	r := d.pixels.Rect
	for y := r.Min.Y; y < r.Max.Y; y += d.step {
		_, _ = d.buf.WriteString("\r\033[0m")
		for x := r.Min.X; x < r.Max.X; x += d.step {
			_, _ = io.WriteString(&d.buf, d.palette.Block(d.pixels.NRGBAAt(x, y)))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
		d.lines++
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
