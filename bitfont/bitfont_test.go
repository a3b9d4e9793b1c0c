// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bitfont

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
)

// tiny returns a 3x9 table where 'A' has its first column full and a single
// pixel at column 2 row 8.
func tiny() []byte {
	const rec = 1 + 3*2
	b := make([]byte, headerSize+NumGlyphs*rec)
	b[0], b[1], b[2], b[3] = rec, 3, 9, 2
	o := headerSize + ('A'-First)*rec
	b[o] = 2
	b[o+1], b[o+2] = 0xFF, 0x01
	b[o+6] = 0x01
	return b
}

func TestParse(t *testing.T) {
	f, err := Parse(tiny())
	if err != nil {
		t.Fatal(err)
	}
	if f.Width() != 3 || f.Height() != 9 || f.BytesPerGlyph() != 7 || f.BytesPerColumn() != 2 {
		t.Fatalf("unexpected header %s %d %d", f, f.BytesPerGlyph(), f.BytesPerColumn())
	}
	if s := f.String(); s != "bitfont.Font{3x9}" {
		t.Fatalf("String() = %q", s)
	}
}

func TestParse_error(t *testing.T) {
	for _, tc := range []struct {
		name string
		b    []byte
		want string
	}{
		{"short", []byte{1, 2}, "header"},
		{"empty cell", []byte{7, 0, 9, 2}, "cell size"},
		{"column", []byte{7, 3, 9, 1}, "rows"},
		{"record", []byte{6, 3, 9, 2}, "columns"},
		{"truncated", tiny()[:100], "want"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.b)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Parse() = %v, want error containing %q", err, tc.want)
			}
		})
	}
}

func TestMustParse_panic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustParse(nil)
}

func TestGlyph(t *testing.T) {
	f := MustParse(tiny())
	g, ok := f.Glyph('A')
	if !ok {
		t.Fatal("'A' not found")
	}
	var got []string
	for row := 0; row < f.Height(); row++ {
		line := ""
		for col := 0; col < f.Width(); col++ {
			if g.Bit(col, row) {
				line += "#"
			} else {
				line += "."
			}
		}
		got = append(got, line)
	}
	want := []string{"#..", "#..", "#..", "#..", "#..", "#..", "#..", "#..", "#.#"}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Fatalf("glyph difference (-got +want):\n%s", diff)
	}
	if g.Bit(3, 0) || g.Bit(0, 9) || g.Bit(-1, 0) {
		t.Fatal("Bit() outside the cell must be false")
	}
	if g.Width() != 2 || g.Advance() != 3 {
		t.Fatalf("Width() = %d, Advance() = %d", g.Width(), g.Advance())
	}
	for _, c := range []byte{0, '\n', 31, 128, 255} {
		if _, ok := f.Glyph(c); ok {
			t.Errorf("Glyph(%d) should not exist", c)
		}
	}
	for _, c := range []byte{First, Last} {
		if _, ok := f.Glyph(c); !ok {
			t.Errorf("Glyph(%d) should exist", c)
		}
	}
}

func TestGlyph_advance(t *testing.T) {
	b := make([]byte, headerSize+NumGlyphs*13)
	b[0], b[1], b[2], b[3] = 13, 12, 8, 1
	b[headerSize+('i'-First)*13] = 4
	b[headerSize+('W'-First)*13] = 11
	f := MustParse(b)
	for _, tc := range []struct {
		c    byte
		want int
	}{
		{'i', 6},
		{'W', 12},
		{' ', 2},
	} {
		g, _ := f.Glyph(tc.c)
		if got := g.Advance(); got != tc.want {
			t.Errorf("Glyph(%q).Advance() = %d, want %d", tc.c, got, tc.want)
		}
	}
}

func TestBasic(t *testing.T) {
	f := Basic()
	if f != Basic() {
		t.Fatal("Basic() must be cached")
	}
	if diff := cmp.Diff(f.Bytes()[:headerSize], []byte{15, 7, 13, 2}); diff != "" {
		t.Fatalf("header difference (-got +want):\n%s", diff)
	}
	if n := lit(f, ' '); n != 0 {
		t.Errorf("space has %d pixels set", n)
	}
	if n := lit(f, 'I'); n == 0 {
		t.Error("'I' is empty")
	}
	if n := lit(f, Last); n != 0 {
		t.Errorf("DEL has %d pixels set", n)
	}
	// '|' is a vertical bar.
	if n := lit(f, '|'); n < 8 {
		t.Errorf("'|' has %d pixels set", n)
	}
}

func TestFromTrueType(t *testing.T) {
	f, err := FromTrueType(goregular.TTF, 12)
	if err != nil {
		t.Fatal(err)
	}
	if f.Height() < 12 || f.Width() < 6 {
		t.Fatalf("unexpected cell %dx%d", f.Width(), f.Height())
	}
	if g, _ := f.Glyph('i'); g.Width() >= f.Width() {
		t.Errorf("'i' should be narrower than the cell: %d", g.Width())
	}
	if lit(f, 'M') == 0 {
		t.Error("'M' is empty")
	}
}

func TestFromTrueType_error(t *testing.T) {
	if _, err := FromTrueType([]byte("not a font"), 12); err == nil {
		t.Fatal("expected error")
	}
}

func lit(f *Font, c byte) int {
	g, _ := f.Glyph(c)
	n := 0
	for col := 0; col < f.Width(); col++ {
		for row := 0; row < f.Height(); row++ {
			if g.Bit(col, row) {
				n++
			}
		}
	}
	return n
}
