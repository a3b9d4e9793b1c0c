// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7735s

import (
	"encoding/binary"
	"time"
)

// System function commands.
const (
	swReset byte = 0x01
	slpIn   byte = 0x10
	slpOut  byte = 0x11
	invOff  byte = 0x20
	invOn   byte = 0x21
	dispOff byte = 0x28
	dispOn  byte = 0x29
	caSet   byte = 0x2A
	raSet   byte = 0x2B
	ramWr   byte = 0x2C
	madCtl  byte = 0x36
	colMod  byte = 0x3A
)

// Panel function commands.
const (
	frmCtr1 byte = 0xB1
	frmCtr2 byte = 0xB2
	frmCtr3 byte = 0xB3
	invCtr  byte = 0xB4
	pwCtr1  byte = 0xC0
	pwCtr2  byte = 0xC1
	pwCtr3  byte = 0xC2
	pwCtr4  byte = 0xC3
	pwCtr5  byte = 0xC4
	vmCtr1  byte = 0xC5
	gmCtrP1 byte = 0xE0
	gmCtrN1 byte = 0xE1
)

// Settle times from the datasheet.
const (
	resetPulse   = 10 * time.Millisecond
	resetSettle  = 120 * time.Millisecond
	swResetWait  = 150 * time.Millisecond
	sleepOutWait = 120 * time.Millisecond
)

type controller interface {
	sendCommand(byte)
	sendData([]byte)
	delay(time.Duration)
}

// Step is one register write of an initialization sequence.
type Step struct {
	// Cmd is the command byte.
	Cmd byte
	// Data holds the parameter bytes, if any.
	Data []byte
	// Delay is how long to wait once the parameters are sent.
	Delay time.Duration
}

// InitSequence is an ordered list of register writes sent after the hardware
// reset pulse.
type InitSequence []Step

// ST7735S80x160 is the initialization sequence of the 0.96" 160x80 IPS panel:
// inverted colors, 16 bits per pixel, landscape orientation with BGR order.
var ST7735S80x160 = InitSequence{
	{Cmd: swReset, Delay: swResetWait},
	{Cmd: slpOut, Delay: sleepOutWait},
	{Cmd: invOn},
	// Frame rate: normal mode, idle mode, partial mode (dot and line inversion).
	{Cmd: frmCtr1, Data: []byte{0x05, 0x3A, 0x3A}},
	{Cmd: frmCtr2, Data: []byte{0x05, 0x3A, 0x3A}},
	{Cmd: frmCtr3, Data: []byte{0x05, 0x3A, 0x3A, 0x05, 0x3A, 0x3A}},
	{Cmd: invCtr, Data: []byte{0x03}},
	{Cmd: pwCtr1, Data: []byte{0x62, 0x02, 0x04}},
	{Cmd: pwCtr2, Data: []byte{0xC0}},
	{Cmd: pwCtr3, Data: []byte{0x0D, 0x00}},
	{Cmd: pwCtr4, Data: []byte{0x8D, 0x6A}},
	{Cmd: pwCtr5, Data: []byte{0x8D, 0xEE}},
	{Cmd: vmCtr1, Data: []byte{0x0E}},
	{Cmd: gmCtrP1, Data: []byte{
		0x10, 0x0E, 0x02, 0x03, 0x0E, 0x07, 0x02, 0x07,
		0x0A, 0x12, 0x27, 0x37, 0x00, 0x0D, 0x0E, 0x10,
	}},
	{Cmd: gmCtrN1, Data: []byte{
		0x10, 0x0E, 0x03, 0x03, 0x0F, 0x06, 0x02, 0x08,
		0x0A, 0x13, 0x26, 0x36, 0x00, 0x0D, 0x0E, 0x10,
	}},
	// 16 bits per pixel.
	{Cmd: colMod, Data: []byte{0x05}},
	// MY | MV | BGR.
	{Cmd: madCtl, Data: []byte{0xA8}},
	{Cmd: dispOn},
}

func applyInit(ctrl controller, seq InitSequence) {
	for _, s := range seq {
		ctrl.sendCommand(s.Cmd)
		ctrl.sendData(s.Data)
		if s.Delay > 0 {
			ctrl.delay(s.Delay)
		}
	}
}

// setWindow addresses the inclusive RAM region (x0, y0)-(x1, y1), already
// offset, and leaves the controller waiting for pixel data.
func setWindow(ctrl controller, x0, y0, x1, y1 int) {
	var b [4]byte
	binary.BigEndian.PutUint16(b[0:], uint16(x0))
	binary.BigEndian.PutUint16(b[2:], uint16(x1))
	ctrl.sendCommand(caSet)
	ctrl.sendData(b[:])

	binary.BigEndian.PutUint16(b[0:], uint16(y0))
	binary.BigEndian.PutUint16(b[2:], uint16(y1))
	ctrl.sendCommand(raSet)
	ctrl.sendData(b[:])

	ctrl.sendCommand(ramWr)
}
