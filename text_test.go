// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7735s

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/st7735s/bitfont"
	"github.com/GermanBionicSystems/st7735s/rgb565"
	"github.com/GermanBionicSystems/st7735s/st7735stest"
)

// testFont is a 5x8 font where 'A' is declared 3 pixels wide with the top
// left and the bottom of the second column set. Other glyphs are empty.
func testFont() *bitfont.Font {
	const rec = 1 + 5
	b := make([]byte, 4+bitfont.NumGlyphs*rec)
	b[0], b[1], b[2], b[3] = rec, 5, 8, 1
	o := 4 + ('A'-bitfont.First)*rec
	b[o] = 3
	b[o+1] = 0x01
	b[o+2] = 0x80
	return bitfont.MustParse(b)
}

func TestDrawGlyph(t *testing.T) {
	c := st7735stest.New()
	d := newTestDev(t, c, nil)
	s := Style{Foreground: rgb565.Red, Background: rgb565.Blue}
	adv, err := d.DrawGlyph(testFont(), 2, 3, 'A', s)
	if err != nil {
		t.Fatal(err)
	}
	if adv != 5 {
		t.Fatalf("advance = %d, want 5", adv)
	}
	var px []byte
	for row := 0; row < 8; row++ {
		for col := 0; col < 5; col++ {
			if (row == 0 && col == 0) || (row == 7 && col == 1) {
				px = append(px, 0xF8, 0x00)
			} else {
				px = append(px, 0x00, 0x1F)
			}
		}
	}
	checkLog(t, c, window(3, 29, 7, 36, px...))
}

func TestDrawGlyph_ignored(t *testing.T) {
	c := st7735stest.New()
	d := newTestDev(t, c, nil)
	for _, ch := range []byte{0, '\n', 31, 128, 255} {
		adv, err := d.DrawGlyph(testFont(), 0, 0, ch, DefaultStyle)
		if adv != 0 || err != nil {
			t.Errorf("DrawGlyph(%d) = %d, %v", ch, adv, err)
		}
	}
	checkLog(t, c, nil)
	if _, err := d.DrawGlyph(testFont(), 156, 0, 'A', DefaultStyle); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("DrawGlyph() = %v, want ErrOutOfRange", err)
	}
}

func TestConsole_defaults(t *testing.T) {
	c := st7735stest.New()
	d := newTestDev(t, c, nil)
	con := NewConsole(d, nil)
	if con.Font() != bitfont.Basic() {
		t.Fatal("default font is not bitfont.Basic()")
	}
	if con.Columns() != 22 || con.Rows() != 6 {
		t.Fatalf("Columns() = %d, Rows() = %d", con.Columns(), con.Rows())
	}
	if con.Style() != DefaultStyle {
		t.Fatalf("Style() = %+v", con.Style())
	}
	con.SetFont(testFont())
	if con.Columns() != 32 || con.Rows() != 10 {
		t.Fatalf("Columns() = %d, Rows() = %d", con.Columns(), con.Rows())
	}
	con.SetForeground(rgb565.Yellow)
	con.SetBackground(rgb565.Navy)
	if want := (Style{rgb565.Yellow, rgb565.Navy}); con.Style() != want {
		t.Fatalf("Style() = %+v", con.Style())
	}
	con.SetStyle(DefaultStyle)
	if con.Style() != DefaultStyle {
		t.Fatalf("Style() = %+v", con.Style())
	}
}

func TestConsole_setFontNil(t *testing.T) {
	c := st7735stest.New()
	d := newTestDev(t, c, nil)
	con := NewConsole(d, testFont())
	con.SetFont(nil)
	if con.Font() != bitfont.Basic() {
		t.Fatal("SetFont(nil) did not select bitfont.Basic()")
	}
	if con.Columns() != 22 || con.Rows() != 6 {
		t.Fatalf("Columns() = %d, Rows() = %d", con.Columns(), con.Rows())
	}
	if err := con.PutChar('A'); err != nil {
		t.Fatal(err)
	}
	if x, y := con.Cursor(); x == 0 || y != 0 {
		t.Fatalf("Cursor() = %d, %d", x, y)
	}
}

func TestConsole_wrap(t *testing.T) {
	c := st7735stest.New()
	d := newTestDev(t, c, nil)
	con := NewConsole(d, testFont())
	line := strings.Repeat("A", con.Columns())
	if _, err := con.WriteString(line); err != nil {
		t.Fatal(err)
	}
	if x, y := con.Cursor(); x != 160 || y != 0 {
		t.Fatalf("Cursor() = %d, %d", x, y)
	}
	// One more glyph does not fit: same as a newline.
	if err := con.PutChar('A'); err != nil {
		t.Fatal(err)
	}
	if x, y := con.Cursor(); x != 5 || y != 8 {
		t.Fatalf("Cursor() = %d, %d", x, y)
	}
	if c.At(0, 8) != rgb565.White || c.At(1, 15) != rgb565.White {
		t.Fatal("wrapped glyph not drawn at the start of the next line")
	}

	con.SetCursor(0, 0)
	if _, err := con.WriteString(line + "\nA"); err != nil {
		t.Fatal(err)
	}
	if x, y := con.Cursor(); x != 5 || y != 8 {
		t.Fatalf("Cursor() = %d, %d", x, y)
	}
}

func TestConsole_newline(t *testing.T) {
	c := st7735stest.New()
	d := newTestDev(t, c, nil)
	con := NewConsole(d, testFont())
	for _, tc := range []struct {
		y, want int
	}{
		{0, 8},
		{56, 64},
		{63, 71},
		{64, 0},
		{70, 0},
	} {
		con.SetCursor(33, tc.y)
		if err := con.PutChar('\n'); err != nil {
			t.Fatal(err)
		}
		if x, y := con.Cursor(); x != 0 || y != tc.want {
			t.Errorf("from y=%d: Cursor() = %d, %d, want 0, %d", tc.y, x, y, tc.want)
		}
	}
	checkLog(t, c, nil)
}

func TestConsole_dropped(t *testing.T) {
	c := st7735stest.New()
	d := newTestDev(t, c, nil)
	con := NewConsole(d, testFont())
	con.SetCursor(10, 10)
	if n, err := con.Write([]byte{0, 7, '\r', 31, 128, 200, 255}); n != 7 || err != nil {
		t.Fatalf("Write() = %d, %v", n, err)
	}
	if x, y := con.Cursor(); x != 10 || y != 10 {
		t.Fatalf("Cursor() = %d, %d", x, y)
	}
	checkLog(t, c, nil)
}

func TestConsole_printf(t *testing.T) {
	c := st7735stest.New()
	d := newTestDev(t, c, nil)
	con := NewConsole(d, testFont())
	n, err := fmt.Fprintf(con, "A=%3d", 7)
	if n != 5 || err != nil {
		t.Fatalf("Fprintf() = %d, %v", n, err)
	}
	// 'A' advances by 5, the empty glyphs by 2.
	if x, y := con.Cursor(); x != 13 || y != 0 {
		t.Fatalf("Cursor() = %d, %d", x, y)
	}
	if n := len(c.Commands()); n != 5*3 {
		t.Fatalf("%d commands, want 5 windows", n)
	}
}

func TestConsole_drawChar(t *testing.T) {
	c := st7735stest.New()
	d := newTestDev(t, c, nil)
	con := NewConsole(d, testFont())
	con.SetStyle(Style{Foreground: rgb565.Green, Background: rgb565.Black})
	if err := con.DrawChar(10, 20, 'A'); err != nil {
		t.Fatal(err)
	}
	if x, y := con.Cursor(); x != 15 || y != 20 {
		t.Fatalf("Cursor() = %d, %d", x, y)
	}
	want := map[image.Point]rgb565.Color{{10, 20}: rgb565.Green, {11, 27}: rgb565.Green}
	got := lit(c)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for p, cl := range want {
		if got[p] != cl {
			t.Fatalf("%v = %s, want %s", p, got[p], cl)
		}
	}
}

func TestConsole_clear(t *testing.T) {
	c := st7735stest.New()
	d := newTestDev(t, c, nil)
	con := NewConsole(d, testFont())
	con.SetCursor(20, 30)
	con.SetBackground(rgb565.Navy)
	if err := con.Clear(); err != nil {
		t.Fatal(err)
	}
	if x, y := con.Cursor(); x != 20 || y != 30 {
		t.Fatalf("Cursor() = %d, %d", x, y)
	}
	if n := len(lit(c)); n != 160*80 {
		t.Fatalf("%d pixels cleared", n)
	}
	if c.At(159, 79) != rgb565.Navy {
		t.Fatal("not cleared with the background color")
	}
}

func TestConsole_error(t *testing.T) {
	c := st7735stest.New()
	d := newTestDev(t, c, nil)
	con := NewConsole(d, testFont())
	con.SetCursor(0, 75)
	if n, err := con.WriteString("xA"); n != 0 || !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("WriteString() = %d, %v", n, err)
	}
	if n, err := con.Write([]byte("A")); n != 0 || !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Write() = %d, %v", n, err)
	}
}
