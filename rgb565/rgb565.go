// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package rgb565 implements the 16 bits packed color format used by TFT
// controllers like the ST7735S: 5 bits red, 6 bits green, 5 bits blue.
//
// Color is the value sent on the wire, high byte first. Image stores pixels
// low byte first, which is the layout of raw bitmap assets generated by the
// usual LCD image converters; the driver swaps each pair on the way out.
package rgb565

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Color is a packed RGB565 color. It implements color.Color.
type Color uint16

// RGB packs 8 bits components into a Color, dropping the low bits.
func RGB(r, g, b uint8) Color {
	return Color(uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3)
}

// Named colors.
const (
	Black       Color = 0x0000 //   0,   0,   0
	Navy        Color = 0x000F //   0,   0, 128
	DarkGreen   Color = 0x03E0 //   0, 128,   0
	DarkCyan    Color = 0x03EF //   0, 128, 128
	Maroon      Color = 0x7800 // 128,   0,   0
	Purple      Color = 0x780F // 128,   0, 128
	Olive       Color = 0x7BE0 // 128, 128,   0
	LightGrey   Color = 0xC618 // 192, 192, 192
	DarkGrey    Color = 0x7BEF // 128, 128, 128
	Blue        Color = 0x001F //   0,   0, 255
	Green       Color = 0x07E0 //   0, 255,   0
	Cyan        Color = 0x07FF //   0, 255, 255
	Red         Color = 0xF800 // 255,   0,   0
	Magenta     Color = 0xF81F // 255,   0, 255
	Yellow      Color = 0xFFE0 // 255, 255,   0
	White       Color = 0xFFFF // 255, 255, 255
	Orange      Color = 0xFD20 // 255, 165,   0
	GreenYellow Color = 0xAFE5 // 173, 255,  47
)

// Palette lists the named colors, Black first.
var Palette = []Color{
	Black, Navy, DarkGreen, DarkCyan, Maroon, Purple, Olive, LightGrey,
	DarkGrey, Blue, Green, Cyan, Red, Magenta, Yellow, White, Orange,
	GreenYellow,
}

// Components returns the 5 bits red, 6 bits green and 5 bits blue fields.
func (c Color) Components() (r, g, b uint8) {
	return uint8(c >> 11), uint8(c>>5) & 0x3F, uint8(c) & 0x1F
}

// RGBA implements color.Color.
//
// The 5 and 6 bits fields are expanded by replicating their high bits so that
// White maps to 0xFFFF on every channel.
func (c Color) RGBA() (r, g, b, a uint32) {
	r5, g6, b5 := c.Components()
	r8 := uint32(r5<<3 | r5>>2)
	g8 := uint32(g6<<2 | g6>>4)
	b8 := uint32(b5<<3 | b5>>2)
	return r8 | r8<<8, g8 | g8<<8, b8 | b8<<8, 0xFFFF
}

// Bytes returns the wire encoding, high byte first.
func (c Color) Bytes() [2]byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(c))
	return b
}

func (c Color) String() string {
	return fmt.Sprintf("rgb565(0x%04X)", uint16(c))
}

// Model converts any color.Color to a Color.
var Model = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	if v, ok := c.(Color); ok {
		return v
	}
	// Alpha is ignored: the panel has no transparency.
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Image is an in-memory image of Color values stored low byte first.
//
// Its Pix slice is directly usable as an image buffer for the driver's
// DrawImage.
type Image struct {
	// Pix holds 2 bytes per pixel, low byte first.
	Pix []byte
	// Stride is the distance in bytes between two vertically adjacent pixels.
	Stride int
	Rect   image.Rectangle
}

// NewImage returns an Image of the given bounds, all Black.
func NewImage(r image.Rectangle) *Image {
	return &Image{
		Pix:    make([]byte, 2*r.Dx()*r.Dy()),
		Stride: 2 * r.Dx(),
		Rect:   r,
	}
}

// FromImage converts src into an Image with the same bounds.
func FromImage(src image.Image) *Image {
	if img, ok := src.(*Image); ok {
		return img
	}
	dst := NewImage(src.Bounds())
	draw.Draw(dst, dst.Rect, src, src.Bounds().Min, draw.Src)
	return dst
}

// ColorModel implements image.Image.
func (i *Image) ColorModel() color.Model {
	return Model
}

// Bounds implements image.Image.
func (i *Image) Bounds() image.Rectangle {
	return i.Rect
}

// At implements image.Image.
func (i *Image) At(x, y int) color.Color {
	return i.Color565At(x, y)
}

// Color565At returns the pixel at x, y; Black outside the bounds.
func (i *Image) Color565At(x, y int) Color {
	if !(image.Point{x, y}.In(i.Rect)) {
		return Black
	}
	o := i.PixOffset(x, y)
	return Color(binary.LittleEndian.Uint16(i.Pix[o:]))
}

// Set implements draw.Image.
func (i *Image) Set(x, y int, c color.Color) {
	i.SetColor565(x, y, convert(c).(Color))
}

// SetColor565 sets the pixel at x, y. It is ignored outside the bounds.
func (i *Image) SetColor565(x, y int, c Color) {
	if !(image.Point{x, y}.In(i.Rect)) {
		return
	}
	o := i.PixOffset(x, y)
	binary.LittleEndian.PutUint16(i.Pix[o:], uint16(c))
}

// PixOffset returns the index of the first byte of the pixel at x, y.
func (i *Image) PixOffset(x, y int) int {
	return (y-i.Rect.Min.Y)*i.Stride + (x-i.Rect.Min.X)*2
}

var _ draw.Image = &Image{}
