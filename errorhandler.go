// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7735s

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// errorHandler is a wrapper for error management.
//
// The first failure is kept and every following call is a no-op, so a
// register write sequence can be expressed without checking each step.
type errorHandler struct {
	d   *Dev
	err error
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil || eh.d.rst == nil {
		return
	}
	eh.err = eh.d.rst.Out(l)
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.dc.Out(l)
}

func (eh *errorHandler) csOut(l gpio.Level) {
	if eh.err != nil || eh.d.cs == nil {
		return
	}
	eh.err = eh.d.cs.Out(l)
}

func (eh *errorHandler) cTx(w []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.c.Tx(w, nil)
}

func (eh *errorHandler) delay(t time.Duration) {
	if eh.err != nil {
		return
	}
	eh.d.sleep(t)
}

func (eh *errorHandler) sendCommand(cmd byte) {
	if eh.err != nil {
		return
	}
	eh.d.cmd[0] = cmd
	eh.dcOut(gpio.Low)
	eh.csOut(gpio.Low)
	eh.cTx(eh.d.cmd[:])
	eh.csOut(gpio.High)
}

func (eh *errorHandler) sendData(data []byte) {
	if eh.err != nil || len(data) == 0 {
		return
	}
	eh.dcOut(gpio.High)
	eh.csOut(gpio.Low)
	for len(data) != 0 {
		n := len(data)
		if eh.d.maxTx > 0 && n > eh.d.maxTx {
			n = eh.d.maxTx
		}
		eh.cTx(data[:n])
		data = data[n:]
	}
	eh.csOut(gpio.High)
}
