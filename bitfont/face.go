// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bitfont

import (
	"fmt"
	"image"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FromFace renders the printable ASCII range of face into a font table.
//
// The cell width is the widest advance and the cell height is the ascent plus
// the descent. Pixels with a coverage of at least 50% are set.
func FromFace(face font.Face) (*Font, error) {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	h := ascent + m.Descent.Ceil()
	w := 0
	widths := make([]int, NumGlyphs)
	for c := First; c <= Last; c++ {
		a, ok := face.GlyphAdvance(rune(c))
		if !ok {
			continue
		}
		widths[c-First] = a.Ceil()
		if widths[c-First] > w {
			w = widths[c-First]
		}
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("bitfont: face has an empty cell %dx%d", w, h)
	}
	bpc := (h + 7) / 8
	rec := 1 + w*bpc
	if rec > 255 || w > 255 || h > 255 {
		return nil, fmt.Errorf("bitfont: cell %dx%d is too large for a table", w, h)
	}

	b := make([]byte, headerSize+NumGlyphs*rec)
	b[0], b[1], b[2], b[3] = byte(rec), byte(w), byte(h), byte(bpc)
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	dr := font.Drawer{Dst: img, Src: image.Opaque, Face: face}
	for c := First; c <= Last; c++ {
		o := headerSize + (c-First)*rec
		b[o] = byte(widths[c-First])
		if widths[c-First] == 0 {
			// Missing from the face; left blank.
			continue
		}
		clear(img.Pix)
		dr.Dot = fixed.P(0, ascent)
		dr.DrawString(string(rune(c)))
		for col := 0; col < w; col++ {
			for row := 0; row < h; row++ {
				if img.AlphaAt(col, row).A >= 0x80 {
					b[o+1+bpc*col+row>>3] |= 1 << uint(row&7)
				}
			}
		}
	}
	return Parse(b)
}

// FromTrueType renders a TrueType font at size points (72 DPI, so 1 point is
// 1 pixel).
func FromTrueType(ttf []byte, size float64) (*Font, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("bitfont: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()
	return FromFace(face)
}

// Basic returns the 7x13 fixed font of golang.org/x/image/font/basicfont.
func Basic() *Font {
	basicOnce.Do(func() {
		f, err := FromFace(basicfont.Face7x13)
		if err != nil {
			panic(err)
		}
		basic = f
	})
	return basic
}

var (
	basicOnce sync.Once
	basic     *Font
)
