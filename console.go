// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7735s

import (
	"io"

	"github.com/GermanBionicSystems/st7735s/bitfont"
	"github.com/GermanBionicSystems/st7735s/rgb565"
)

// Console is a text output on a Dev.
//
// It keeps a cursor, the active font and a Style. Text wraps at the right
// edge and the cursor goes back to the top once the next line would not fit.
type Console struct {
	d    *Dev
	f    *bitfont.Font
	s    Style
	x, y int
}

// NewConsole returns a Console drawing white on black at the top left corner.
//
// f may be nil to use bitfont.Basic().
func NewConsole(d *Dev, f *bitfont.Font) *Console {
	if f == nil {
		f = bitfont.Basic()
	}
	return &Console{d: d, f: f, s: DefaultStyle}
}

// SetForeground sets the color of the glyphs drawn from now on.
func (c *Console) SetForeground(cl rgb565.Color) {
	c.s.Foreground = cl
}

// SetBackground sets the color of the cells drawn and cleared from now on.
func (c *Console) SetBackground(cl rgb565.Color) {
	c.s.Background = cl
}

// SetStyle sets both colors.
func (c *Console) SetStyle(s Style) {
	c.s = s
}

// Style returns the current colors.
func (c *Console) Style() Style {
	return c.s
}

// SetFont selects the font of the next characters.
//
// Columns and Rows change accordingly. nil selects bitfont.Basic().
func (c *Console) SetFont(f *bitfont.Font) {
	if f == nil {
		f = bitfont.Basic()
	}
	c.f = f
}

// Font returns the active font.
func (c *Console) Font() *bitfont.Font {
	return c.f
}

// SetCursor moves the cursor to pixel x, y.
func (c *Console) SetCursor(x, y int) {
	c.x, c.y = x, y
}

// Cursor returns the cursor position in pixels.
func (c *Console) Cursor() (x, y int) {
	return c.x, c.y
}

// Columns returns the number of cells that fit on a line.
func (c *Console) Columns() int {
	return c.d.rect.Dx() / c.f.Width()
}

// Rows returns the number of cells that fit vertically.
func (c *Console) Rows() int {
	return c.d.rect.Dy() / c.f.Height()
}

// Clear fills the display with the background color. The cursor is not moved.
func (c *Console) Clear() error {
	return c.d.Clear(c.s.Background)
}

// PutChar writes one character at the cursor.
//
// '\n' starts a new line. Other codes outside 32..127 are ignored.
func (c *Console) PutChar(ch byte) error {
	if ch == '\n' {
		c.newline()
		return nil
	}
	return c.draw(ch)
}

// DrawChar moves the cursor to x, y and draws one character.
func (c *Console) DrawChar(x, y int, ch byte) error {
	c.SetCursor(x, y)
	return c.draw(ch)
}

// Write implements io.Writer so a Console can be used with fmt.Fprintf.
func (c *Console) Write(p []byte) (int, error) {
	for i, ch := range p {
		if err := c.PutChar(ch); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// WriteString implements io.StringWriter.
func (c *Console) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if err := c.PutChar(s[i]); err != nil {
			return i, err
		}
	}
	return len(s), nil
}

func (c *Console) draw(ch byte) error {
	if ch < bitfont.First || ch > bitfont.Last {
		return nil
	}
	if c.x+c.f.Width() > c.d.rect.Dx() {
		c.newline()
	}
	adv, err := c.d.DrawGlyph(c.f, c.x, c.y, ch, c.s)
	if err != nil {
		return err
	}
	c.x += adv
	return nil
}

func (c *Console) newline() {
	c.x = 0
	c.y += c.f.Height()
	if c.y >= c.d.rect.Dy()-c.f.Height() {
		c.y = 0
	}
}

var _ io.Writer = &Console{}
var _ io.StringWriter = &Console{}
