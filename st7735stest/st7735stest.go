// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package st7735stest implements a fake ST7735S controller.
//
// Controller is a spi.PortCloser with fake D/C, CS and RST pins. It decodes
// the byte stream the way the chip does and keeps the content of the display
// RAM, so drivers can be tested on what ends up on the panel rather than on
// the exact bytes sent.
package st7735stest

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/GermanBionicSystems/st7735s/rgb565"
)

// RAM size of the controller in landscape orientation.
const (
	RAMWidth  = 162
	RAMHeight = 132
)

// Commands decoded by the controller.
const (
	SWRESET = 0x01
	SLPIN   = 0x10
	SLPOUT  = 0x11
	INVOFF  = 0x20
	INVON   = 0x21
	DISPOFF = 0x28
	DISPON  = 0x29
	CASET   = 0x2A
	RASET   = 0x2B
	RAMWR   = 0x2C
	MADCTL  = 0x36
	COLMOD  = 0x3A
)

// Command is one command byte and the data bytes that followed it.
type Command struct {
	Cmd  byte
	Data []byte
}

func (c Command) String() string {
	return fmt.Sprintf("{0x%02X %d bytes}", c.Cmd, len(c.Data))
}

// Window is an inclusive RAM region as set by CASET and RASET.
type Window struct {
	X0, Y0, X1, Y1 int
}

// Controller implements spi.PortCloser and spi.Conn.
//
// Grab the Mutex before reading the state members while a driver is using
// it concurrently.
type Controller struct {
	// DC, CS and RST are the pins to hand to the driver.
	DC  *gpiotest.Pin
	CS  *gpiotest.Pin
	RST *gpiotest.Pin
	// PortCS means the SPI port drives chip select so CS is not checked.
	PortCS bool
	// MaxTx, when not 0, is returned by MaxTxSize and larger Tx fail.
	MaxTx int
	// Visible is the part of the RAM shown by the panel.
	Visible image.Rectangle

	sync.Mutex
	// Connection parameters received by Connect.
	Initialized bool
	Speed       physic.Frequency
	Mode        spi.Mode
	Bits        int
	Closed      bool
	// Log has every command received, in order.
	Log []Command
	// FramingErrors counts transfers received with CS deasserted, RST
	// asserted or data without a command.
	FramingErrors int
	// Controller state.
	Sleeping     bool
	DisplayOn    bool
	Inverted     bool
	PixelFormat  byte
	MemoryAccess byte
	Window       Window

	ram     *rgb565.Image
	cmd     byte
	has     bool
	args    []byte
	x, y    int
	hi      byte
	pending bool
}

// New returns a Controller in its power on state with the visible area of
// the 0.96" 160x80 panel.
func New() *Controller {
	c := &Controller{
		DC:      &gpiotest.Pin{N: "DC", Num: 25},
		CS:      &gpiotest.Pin{N: "CS", Num: 8, L: gpio.High},
		RST:     &gpiotest.Pin{N: "RST", Num: 27, L: gpio.High},
		Visible: image.Rect(1, 26, 161, 106),
		ram:     rgb565.NewImage(image.Rect(0, 0, RAMWidth, RAMHeight)),
	}
	c.reset()
	return c
}

func (c *Controller) String() string {
	return "st7735stest"
}

// Close implements spi.PortCloser.
func (c *Controller) Close() error {
	c.Lock()
	defer c.Unlock()
	c.Closed = true
	return nil
}

// LimitSpeed implements spi.PortCloser.
func (c *Controller) LimitSpeed(f physic.Frequency) error {
	c.Lock()
	defer c.Unlock()
	if f <= 0 {
		return errors.New("st7735stest: invalid speed")
	}
	if c.Speed == 0 || f < c.Speed {
		c.Speed = f
	}
	return nil
}

// Connect implements spi.Port. It returns the Controller itself.
func (c *Controller) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	c.Lock()
	defer c.Unlock()
	if c.Initialized {
		return nil, errors.New("st7735stest: Connect cannot be called twice")
	}
	if bits != 8 {
		return nil, fmt.Errorf("st7735stest: %d bits per word is not supported", bits)
	}
	c.Initialized = true
	c.Speed = f
	c.Mode = mode
	c.Bits = bits
	return c, nil
}

// Duplex implements conn.Conn.
func (c *Controller) Duplex() conn.Duplex {
	return conn.Half
}

// MaxTxSize implements conn.Limits.
func (c *Controller) MaxTxSize() int {
	return c.MaxTx
}

// Tx implements conn.Conn.
//
// The bytes are commands or data depending on the DC pin.
func (c *Controller) Tx(w, r []byte) error {
	if len(r) != 0 {
		return errors.New("st7735stest: read is not supported")
	}
	if c.MaxTx > 0 && len(w) > c.MaxTx {
		return fmt.Errorf("st7735stest: %d bytes is over the %d bytes limit", len(w), c.MaxTx)
	}
	data := c.DC.Read() == gpio.High
	selected := c.PortCS || c.CS.Read() == gpio.Low
	inReset := c.RST.Read() == gpio.Low
	c.Lock()
	defer c.Unlock()
	if c.Closed {
		return errors.New("st7735stest: port is closed")
	}
	if !selected || inReset {
		c.FramingErrors++
		return nil
	}
	if data {
		c.data(w)
		return nil
	}
	for _, b := range w {
		c.command(b)
	}
	return nil
}

// TxPackets implements spi.Conn.
func (c *Controller) TxPackets(p []spi.Packet) error {
	for i := range p {
		if err := c.Tx(p[i].W, p[i].R); err != nil {
			return err
		}
	}
	return nil
}

// Commands returns the command bytes of the log.
func (c *Controller) Commands() []byte {
	c.Lock()
	defer c.Unlock()
	out := make([]byte, 0, len(c.Log))
	for _, l := range c.Log {
		out = append(out, l.Cmd)
	}
	return out
}

// ClearLog empties the log and the framing error count.
func (c *Controller) ClearLog() {
	c.Lock()
	defer c.Unlock()
	c.Log = nil
	c.FramingErrors = 0
}

// RAM returns the content of the whole controller RAM.
//
// The image is shared with the Controller.
func (c *Controller) RAM() *rgb565.Image {
	return c.ram
}

// Frame returns a copy of the visible area, translated to start at 0, 0.
func (c *Controller) Frame() *rgb565.Image {
	c.Lock()
	defer c.Unlock()
	v := c.Visible.Intersect(c.ram.Rect)
	img := rgb565.NewImage(image.Rect(0, 0, v.Dx(), v.Dy()))
	for y := 0; y < v.Dy(); y++ {
		o := c.ram.PixOffset(v.Min.X, v.Min.Y+y)
		copy(img.Pix[y*img.Stride:(y+1)*img.Stride], c.ram.Pix[o:])
	}
	return img
}

// At returns the pixel shown at x, y of the visible area.
func (c *Controller) At(x, y int) rgb565.Color {
	c.Lock()
	defer c.Unlock()
	return c.ram.Color565At(c.Visible.Min.X+x, c.Visible.Min.Y+y)
}

// Present draws the visible area on a display.Drawer.
func (c *Controller) Present(d display.Drawer) error {
	f := c.Frame()
	return d.Draw(d.Bounds(), f, image.Point{})
}

func (c *Controller) reset() {
	c.Sleeping = true
	c.DisplayOn = false
	c.Inverted = false
	c.PixelFormat = 0x06
	c.MemoryAccess = 0
	c.Window = Window{X1: RAMWidth - 1, Y1: RAMHeight - 1}
}

func (c *Controller) command(b byte) {
	c.cmd = b
	c.has = true
	c.args = c.args[:0]
	c.pending = false
	c.Log = append(c.Log, Command{Cmd: b})
	switch b {
	case SWRESET:
		c.reset()
	case SLPIN:
		c.Sleeping = true
	case SLPOUT:
		c.Sleeping = false
	case INVOFF:
		c.Inverted = false
	case INVON:
		c.Inverted = true
	case DISPOFF:
		c.DisplayOn = false
	case DISPON:
		c.DisplayOn = true
	case RAMWR:
		c.x, c.y = c.Window.X0, c.Window.Y0
	}
}

func (c *Controller) data(w []byte) {
	if !c.has {
		c.FramingErrors++
		return
	}
	last := &c.Log[len(c.Log)-1]
	last.Data = append(last.Data, w...)
	switch c.cmd {
	case CASET, RASET:
		c.args = append(c.args, w...)
		if len(c.args) < 4 {
			return
		}
		s := int(binary.BigEndian.Uint16(c.args[0:]))
		e := int(binary.BigEndian.Uint16(c.args[2:]))
		if c.cmd == CASET {
			c.Window.X0, c.Window.X1 = s, e
		} else {
			c.Window.Y0, c.Window.Y1 = s, e
		}
		c.args = c.args[:0]
	case COLMOD:
		c.PixelFormat = w[len(w)-1]
	case MADCTL:
		c.MemoryAccess = w[len(w)-1]
	case RAMWR:
		for _, b := range w {
			if !c.pending {
				c.hi = b
				c.pending = true
				continue
			}
			c.pending = false
			c.pixel(rgb565.Color(c.hi)<<8 | rgb565.Color(b))
		}
	}
}

// pixel stores one pixel at the RAM pointer and moves it within the window,
// wrapping back to the top left corner after the last pixel.
func (c *Controller) pixel(p rgb565.Color) {
	c.ram.SetColor565(c.x, c.y, p)
	c.x++
	if c.x > c.Window.X1 {
		c.x = c.Window.X0
		c.y++
		if c.y > c.Window.Y1 {
			c.y = c.Window.Y0
		}
	}
}

var _ spi.PortCloser = &Controller{}
var _ spi.Conn = &Controller{}
var _ conn.Limits = &Controller{}
