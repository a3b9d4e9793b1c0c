// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7735s

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/host/v3/rpi"

	"github.com/GermanBionicSystems/st7735s/rgb565"
)

// bufSize is the size of the chunk buffer used to stream pixels.
const bufSize = 4096

// DefaultOpts is the configuration of the 0.96" 160x80 IPS module.
var DefaultOpts = Opts{
	W:         160,
	H:         80,
	ColOffset: 1,
	RowOffset: 26,
	Speed:     20 * physic.MegaHertz,
	Mode:      spi.Mode3,
	Init:      ST7735S80x160,
}

// Opts defines the options for the device.
type Opts struct {
	// W and H are the visible panel size in pixels.
	W int
	H int
	// ColOffset and RowOffset locate the visible panel inside the controller
	// RAM. They are added to every window address.
	ColOffset int
	RowOffset int
	// Speed is the SPI clock. 0 uses DefaultOpts.Speed.
	Speed physic.Frequency
	// Mode is the SPI mode.
	Mode spi.Mode
	// Init is the register sequence sent after reset. nil uses
	// ST7735S80x160.
	Init InitSequence
}

// Dev is an open handle to the display controller.
//
// Dev is not safe for concurrent use: a window address and its pixel stream
// span several bus transactions.
type Dev struct {
	// Communication
	c     conn.Conn
	dc    gpio.PinOut
	cs    gpio.PinOut
	rst   gpio.PinOut
	maxTx int

	opts Opts
	rect image.Rectangle

	// Scratch space reused by every transaction.
	cmd [1]byte
	buf []byte
	win Window

	sleep func(time.Duration)
}

// NewSPI returns a Dev object that communicates over SPI to a ST7735S display
// controller.
//
// dc is required. cs may be nil when the SPI port drives chip select and rst
// may be nil when the reset line is not wired. The panel is reset and
// initialized before NewSPI returns.
func NewSPI(p spi.Port, dc, cs, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("st7735s: dc pin is required")
	}
	if cs == gpio.INVALID {
		return nil, errors.New("st7735s: use nil for cs to let the SPI port drive it, do not use gpio.INVALID")
	}
	if rst == gpio.INVALID {
		rst = nil
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	speed := opts.Speed
	if speed == 0 {
		speed = DefaultOpts.Speed
	}
	c, err := p.Connect(speed, opts.Mode, 8)
	if err != nil {
		return nil, fmt.Errorf("st7735s: %w", err)
	}
	d, err := newDev(c, dc, cs, rst, opts)
	if err != nil {
		return nil, err
	}
	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewRPi returns a Dev wired like the Waveshare 0.96inch LCD module on a
// Raspberry Pi header: DC on GPIO25, RST on GPIO27, backlight on GPIO18 and
// chip select driven by the SPI port (CE0).
//
// The backlight is turned on.
func NewRPi(p spi.Port, opts *Opts) (*Dev, error) {
	if err := rpi.P1_12.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("st7735s: backlight: %w", err)
	}
	return NewSPI(p, rpi.P1_22, nil, rpi.P1_13, opts)
}

// newDev is the initialization code that does not touch the bus.
func newDev(c conn.Conn, dc, cs, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts.W <= 0 || opts.H <= 0 {
		return nil, fmt.Errorf("st7735s: invalid size %dx%d", opts.W, opts.H)
	}
	d := &Dev{
		c:     c,
		dc:    dc,
		cs:    cs,
		rst:   rst,
		opts:  *opts,
		rect:  image.Rect(0, 0, opts.W, opts.H),
		sleep: time.Sleep,
	}
	if d.opts.Init == nil {
		d.opts.Init = ST7735S80x160
	}
	n := bufSize
	if l, ok := c.(conn.Limits); ok {
		if m := l.MaxTxSize(); m > 0 {
			d.maxTx = m
			if m < n {
				n = m
			}
		}
	}
	// Pixels are 2 bytes and must never straddle two chunks.
	d.buf = make([]byte, n&^1)
	if len(d.buf) == 0 {
		return nil, fmt.Errorf("st7735s: connection transfer size %d is too small", n)
	}
	d.win.d = d
	return d, nil
}

// init resets the controller, sends the register sequence and addresses the
// whole screen.
func (d *Dev) init() error {
	eh := errorHandler{d: d}
	eh.dcOut(gpio.High)
	eh.csOut(gpio.High)

	// Hardware reset.
	eh.rstOut(gpio.High)
	eh.delay(resetPulse)
	eh.rstOut(gpio.Low)
	eh.delay(resetPulse)
	eh.rstOut(gpio.High)
	eh.delay(resetSettle)

	applyInit(&eh, d.opts.Init)
	if eh.err != nil {
		return fmt.Errorf("st7735s: init: %w", eh.err)
	}
	w, err := d.FullScreen()
	if err != nil {
		return err
	}
	// Nothing is streamed; the controller keeps the window addressed.
	w.abandon()
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("st7735s.Dev{%s, %s, %dx%d}", d.c, d.dc, d.rect.Dx(), d.rect.Dy())
}

// ColorModel implements display.Drawer.
//
// It is the 16 bits RGB565 model.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Halt implements conn.Resource.
//
// It turns the panel off. The RAM content is kept and DisplayOn() shows it
// again.
func (d *Dev) Halt() error {
	return d.command(dispOff)
}

// DisplayOn turns the panel back on after Halt.
func (d *Dev) DisplayOn() error {
	return d.command(dispOn)
}

// Invert turns display inversion on or off.
//
// The IPS panel of ST7735S80x160 needs inversion on to show true colors.
func (d *Dev) Invert(on bool) error {
	if on {
		return d.command(invOn)
	}
	return d.command(invOff)
}

// Sleep puts the controller in sleep mode. Drawing is still accepted and
// shows up after Wake.
func (d *Dev) Sleep() error {
	return d.command(slpIn)
}

// Wake leaves sleep mode and waits for the power supply to settle.
func (d *Dev) Wake() error {
	if err := d.closeWindow(); err != nil {
		return err
	}
	eh := errorHandler{d: d}
	eh.sendCommand(slpOut)
	eh.delay(sleepOutWait)
	return eh.err
}

func (d *Dev) command(cmd byte) error {
	if err := d.closeWindow(); err != nil {
		return err
	}
	eh := errorHandler{d: d}
	eh.sendCommand(cmd)
	return eh.err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
