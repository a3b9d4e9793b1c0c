// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bitfont implements the bitmap font tables drawn by the st7735s
// text renderer.
//
// A table starts with a 4 bytes header:
//
//	[bytes per glyph, cell width, cell height, bytes per column]
//
// followed by one record of "bytes per glyph" bytes for each character code
// from 32 to 127 inclusive. A record is the declared width of the glyph
// followed by its bitmap, stored column by column. Within a column, the bit
// for row r is bit r&7 of byte r>>3.
//
// This is the layout produced by the common "GLCD font creator" tools so
// existing tables can be used as-is.
package bitfont

import (
	"errors"
	"fmt"
)

const (
	// First is the first character code of a table.
	First = 32
	// Last is the last character code of a table.
	Last = 127
	// NumGlyphs is the number of records in a table.
	NumGlyphs = Last - First + 1

	headerSize = 4
)

// Font is a parsed font table. It is immutable.
type Font struct {
	b []byte
}

// Parse validates a font table. The slice is not copied.
func Parse(b []byte) (*Font, error) {
	if len(b) < headerSize {
		return nil, errors.New("bitfont: table is shorter than its header")
	}
	rec, w, h, bpc := int(b[0]), int(b[1]), int(b[2]), int(b[3])
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("bitfont: invalid cell size %dx%d", w, h)
	}
	if bpc*8 < h {
		return nil, fmt.Errorf("bitfont: %d bytes per column cannot hold %d rows", bpc, h)
	}
	if rec < 1+w*bpc {
		return nil, fmt.Errorf("bitfont: %d bytes per glyph cannot hold %d columns of %d bytes", rec, w, bpc)
	}
	if want := headerSize + NumGlyphs*rec; len(b) < want {
		return nil, fmt.Errorf("bitfont: table is %d bytes, want %d", len(b), want)
	}
	return &Font{b: b}, nil
}

// MustParse is like Parse but panics on an invalid table.
//
// It is meant for tables compiled into the program.
func MustParse(b []byte) *Font {
	f, err := Parse(b)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Font) String() string {
	return fmt.Sprintf("bitfont.Font{%dx%d}", f.Width(), f.Height())
}

// Width is the cell width in pixels.
func (f *Font) Width() int {
	return int(f.b[1])
}

// Height is the cell height in pixels.
func (f *Font) Height() int {
	return int(f.b[2])
}

// BytesPerGlyph is the size of one record, declared width included.
func (f *Font) BytesPerGlyph() int {
	return int(f.b[0])
}

// BytesPerColumn is the number of bytes holding one column of a glyph.
func (f *Font) BytesPerColumn() int {
	return int(f.b[3])
}

// Bytes returns the raw table.
func (f *Font) Bytes() []byte {
	return f.b
}

// Glyph returns the glyph of character code c. It returns false when c is
// outside First..Last.
func (f *Font) Glyph(c byte) (Glyph, bool) {
	if c < First || c > Last {
		return Glyph{}, false
	}
	n := f.BytesPerGlyph()
	o := headerSize + int(c-First)*n
	return Glyph{f: f, rec: f.b[o : o+n]}, true
}

// Glyph is one record of a Font.
type Glyph struct {
	f   *Font
	rec []byte
}

// Width is the declared width of the glyph, usually narrower than the cell.
func (g Glyph) Width() int {
	return int(g.rec[0])
}

// Bit reports whether the pixel at col, row of the cell is set.
func (g Glyph) Bit(col, row int) bool {
	if col < 0 || row < 0 || col >= g.f.Width() || row >= g.f.Height() {
		return false
	}
	z := g.rec[1+g.f.BytesPerColumn()*col+row>>3]
	return z&(1<<uint(row&7)) != 0
}

// Advance is the horizontal distance to the next character: the declared
// width plus 2 pixels of spacing, capped at the cell width.
func (g Glyph) Advance() int {
	if a := g.Width() + 2; a < g.f.Width() {
		return a
	}
	return g.f.Width()
}
