// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7735s

import (
	"fmt"

	"github.com/GermanBionicSystems/st7735s/rgb565"
)

// Pixel draws one pixel.
//
// A pixel outside the display is silently clipped: it returns false and
// nothing is sent on the bus.
func (d *Dev) Pixel(x, y int, c rgb565.Color) (bool, error) {
	if x >= d.rect.Max.X || y >= d.rect.Max.Y || x < 0 || y < 0 {
		return false, nil
	}
	w, err := d.Window(x, y, x, y)
	if err != nil {
		return false, err
	}
	if err := w.WriteColor(c); err != nil {
		return false, err
	}
	if err := w.Close(); err != nil {
		return false, err
	}
	return true, nil
}

// HLine draws an horizontal line from x0 to x1 inclusive.
func (d *Dev) HLine(x0, x1, y int, c rgb565.Color) error {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	return d.fill(x0, y, x1, y, c)
}

// VLine draws a vertical line from y0 to y1 inclusive.
func (d *Dev) VLine(x, y0, y1 int, c rgb565.Color) error {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return d.fill(x, y0, x, y1, c)
}

// Line draws a line including both end points.
//
// Horizontal and vertical lines are sent as one window. Other lines are
// drawn one pixel at a time; pixels outside the display are clipped.
func (d *Dev) Line(x0, y0, x1, y1 int, c rgb565.Color) error {
	dx := x1 - x0
	dy := y1 - y0
	if dx == 0 {
		return d.VLine(x0, y0, y1, c)
	}
	if dy == 0 {
		return d.HLine(x0, x1, y0, c)
	}

	sx, sy := 1, 1
	if dx < 0 {
		sx, dx = -1, -dx
	}
	if dy < 0 {
		sy, dy = -1, -dy
	}
	dx2, dy2 := 2*dx, 2*dy

	if dx >= dy {
		di := dy2 - dx
		for x0 != x1 {
			if _, err := d.Pixel(x0, y0, c); err != nil {
				return err
			}
			x0 += sx
			if di < 0 {
				di += dy2
			} else {
				di += dy2 - dx2
				y0 += sy
			}
		}
	} else {
		di := dx2 - dy
		for y0 != y1 {
			if _, err := d.Pixel(x0, y0, c); err != nil {
				return err
			}
			y0 += sy
			if di < 0 {
				di += dx2
			} else {
				di += dx2 - dy2
				x0 += sx
			}
		}
	}
	_, err := d.Pixel(x0, y0, c)
	return err
}

// Circle draws the outline of a circle centered on x0, y0.
//
// A radius of 0 draws nothing and a radius of 1 draws the 4 cardinal points.
// Points falling outside the display are clipped.
func (d *Dev) Circle(x0, y0, r int, c rgb565.Color) error {
	if r < 0 {
		return fmt.Errorf("st7735s: circle radius %d: %w", r, ErrOutOfRange)
	}
	if r == 0 {
		return nil
	}
	w, h := d.rect.Max.X, d.rect.Max.Y

	// The 8 octants, starting from the cardinal points.
	var px, py [8]int
	px[0], py[0] = x0, y0+r
	px[1], py[1] = x0, y0+r
	px[2], py[2] = x0, y0-r
	px[3], py[3] = x0, y0-r
	px[4], py[4] = x0+r, y0
	px[6], py[6] = x0+r, y0
	px[5], py[5] = x0-r, y0
	px[7], py[7] = x0-r, y0

	var cardinal [4]bool
	cardinal[0] = py[0] < h
	cardinal[1] = py[2] >= 0
	cardinal[2] = px[4] < w
	cardinal[3] = px[5] >= 0
	for i, ok := range cardinal {
		if !ok {
			continue
		}
		j := [4]int{0, 2, 4, 5}[i]
		if _, err := d.Pixel(px[j], py[j], c); err != nil {
			return err
		}
	}
	if r == 1 {
		return nil
	}

	di := 3 - 2*r
	for xx, yy := 0, r; xx < yy; {
		if di < 0 {
			di += 4*xx + 6
		} else {
			di += 4*(xx-yy) + 10
			yy--
			py[0]--
			py[1]--
			py[2]++
			py[3]++
			px[4]--
			px[5]++
			px[6]--
			px[7]++
		}
		xx++
		px[0]++
		px[1]--
		px[2]++
		px[3]--
		py[4]++
		py[5]++
		py[6]--
		py[7]--

		// Each octant only checks the edges it moves toward.
		visible := [8]bool{
			px[0] <= w && py[0] >= 0,
			px[1] >= 0 && py[1] >= 0,
			px[2] <= w && py[2] <= h,
			px[3] >= 0 && py[3] <= h,
			px[4] <= w && py[4] >= 0,
			px[5] >= 0 && py[5] >= 0,
			px[6] <= w && py[6] <= h,
			px[7] >= 0 && py[7] <= h,
		}
		for i, ok := range visible {
			if !ok {
				continue
			}
			if _, err := d.Pixel(px[i], py[i], c); err != nil {
				return err
			}
		}
	}
	return nil
}

// FillCircle draws a filled circle as concentric outlines of radius 0 to r.
//
// Small radii may leave unlit pixels near the diagonals.
func (d *Dev) FillCircle(x0, y0, r int, c rgb565.Color) error {
	if r < 0 {
		return fmt.Errorf("st7735s: circle radius %d: %w", r, ErrOutOfRange)
	}
	for i := 0; i <= r; i++ {
		if err := d.Circle(x0, y0, i, c); err != nil {
			return err
		}
	}
	return nil
}

// Rect draws the outline of the rectangle with corners (x0, y0) and (x1, y1)
// inclusive: top, left, bottom then right side.
func (d *Dev) Rect(x0, y0, x1, y1 int, c rgb565.Color) error {
	if err := d.HLine(x0, x1, y0, c); err != nil {
		return err
	}
	if err := d.VLine(x0, y0, y1, c); err != nil {
		return err
	}
	if err := d.HLine(x0, x1, y1, c); err != nil {
		return err
	}
	return d.VLine(x1, y0, y1, c)
}

// FillRect fills the rectangle with corners (x0, y0) and (x1, y1) inclusive
// in a single window.
func (d *Dev) FillRect(x0, y0, x1, y1 int, c rgb565.Color) error {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return d.fill(x0, y0, x1, y1, c)
}

// Clear fills the whole display with c.
func (d *Dev) Clear(c rgb565.Color) error {
	return d.fill(0, 0, d.rect.Dx()-1, d.rect.Dy()-1, c)
}

func (d *Dev) fill(x0, y0, x1, y1 int, c rgb565.Color) error {
	w, err := d.Window(x0, y0, x1, y1)
	if err != nil {
		return err
	}
	if err := w.Fill(c, w.Remaining()); err != nil {
		return err
	}
	return w.Close()
}
