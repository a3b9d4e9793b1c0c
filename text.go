// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7735s

import (
	"github.com/GermanBionicSystems/st7735s/bitfont"
	"github.com/GermanBionicSystems/st7735s/rgb565"
)

// Style is the pair of colors used to draw text.
type Style struct {
	Foreground rgb565.Color
	Background rgb565.Color
}

// DefaultStyle is white on black.
var DefaultStyle = Style{Foreground: rgb565.White, Background: rgb565.Black}

// DrawGlyph draws the cell of character code c with its top left corner at
// x, y and returns the advance to the next character.
//
// The whole cell is drawn, background included. Codes without a glyph are
// ignored and return 0.
func (d *Dev) DrawGlyph(f *bitfont.Font, x, y int, c byte, s Style) (int, error) {
	g, ok := f.Glyph(c)
	if !ok {
		return 0, nil
	}
	fw, fh := f.Width(), f.Height()
	w, err := d.Window(x, y, x+fw-1, y+fh-1)
	if err != nil {
		return 0, err
	}
	for row := 0; row < fh; row++ {
		for col := 0; col < fw; col++ {
			cl := s.Background
			if g.Bit(col, row) {
				cl = s.Foreground
			}
			if err := w.WriteColor(cl); err != nil {
				return 0, err
			}
		}
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return g.Advance(), nil
}
