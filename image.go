// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7735s

import (
	"fmt"
	"image"

	"github.com/GermanBionicSystems/st7735s/rgb565"
)

// DrawImage streams a w x h bitmap with its top left corner at x, y.
//
// buf holds 2 bytes per pixel, row by row, low byte first: the layout of
// rgb565.Image.Pix and of raw bitmap assets. Each pair is swapped on the wire.
func (d *Dev) DrawImage(buf []byte, x, y, w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("st7735s: image size %dx%d: %w", w, h, ErrOutOfRange)
	}
	if len(buf) < 2*w*h {
		return fmt.Errorf("st7735s: image %dx%d needs %d bytes, got %d: %w", w, h, 2*w*h, len(buf), ErrShortBuffer)
	}
	win, err := d.Window(x, y, x+w-1, y+h-1)
	if err != nil {
		return err
	}
	for i := 0; i < 2*w*h; i += 2 {
		if err := win.put(buf[i+1], buf[i]); err != nil {
			return err
		}
	}
	return win.Close()
}

// Draw implements display.Drawer.
//
// The area r, clipped to the display and to src, is sent as one window. Colors
// are converted with rgb565.Model.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	orig := r.Min
	r = r.Intersect(d.rect).Intersect(src.Bounds().Add(orig.Sub(sp)))
	if r.Empty() {
		return nil
	}
	sp = sp.Add(r.Min.Sub(orig))

	win, err := d.Window(r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1)
	if err != nil {
		return err
	}
	img, fast := src.(*rgb565.Image)
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			var c rgb565.Color
			if fast {
				c = img.Color565At(sp.X+x, sp.Y+y)
			} else {
				c = rgb565.Model.Convert(src.At(sp.X+x, sp.Y+y)).(rgb565.Color)
			}
			if err := win.WriteColor(c); err != nil {
				return err
			}
		}
	}
	return win.Close()
}
