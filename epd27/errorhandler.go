// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd27

import (
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/epdkit/epaper/epd"
)

// errorHandler is a wrapper for error management: after the first failure
// every call is a no-op and the error sticks. op names the operation for
// timeout reporting.
type errorHandler struct {
	d   *Dev
	op  string
	err error
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.rst.Out(l)
}

func (eh *errorHandler) pwrOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.pwr.Out(l)
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.dc.Out(l)
}

func (eh *errorHandler) csOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.cs.Out(l)
}

func (eh *errorHandler) cTx(w, r []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.c.Tx(w, r)
}

func (eh *errorHandler) sendCommand(cmd byte) {
	if eh.err != nil {
		return
	}
	eh.dcOut(gpio.Low)
	eh.csOut(gpio.Low)
	eh.cTx([]byte{cmd}, nil)
	eh.csOut(gpio.High)
}

func (eh *errorHandler) sendData(data []byte) {
	if eh.err != nil {
		return
	}
	eh.dcOut(gpio.High)
	eh.csOut(gpio.Low)
	eh.cTx(data, nil)
	eh.csOut(gpio.High)
}

func (eh *errorHandler) delay(t time.Duration) {
	if eh.err != nil {
		return
	}
	eh.d.sleep(t)
}

// reset pulses the RST line. The panel needs 200ms on each side of the
// 2ms low pulse before it accepts SPI traffic.
func (eh *errorHandler) reset() {
	eh.rstOut(gpio.High)
	eh.delay(resetDelay)
	eh.rstOut(gpio.Low)
	eh.delay(resetPulse)
	eh.rstOut(gpio.High)
	eh.delay(resetDelay)
}

// waitUntilIdle polls the controller status until the BUSY line reads
// idle, then waits out the housekeeping delay. BUSY is active low; the
// line only answers a GET_STATUS command.
func (eh *errorHandler) waitUntilIdle() {
	if eh.err != nil {
		return
	}
	for i := 0; ; i++ {
		if i >= busyTimeoutPolls {
			eh.err = &epd.TimeoutError{Op: eh.op}
			return
		}
		eh.sendCommand(getStatus)
		if eh.err != nil {
			return
		}
		if eh.d.busy.Read() == gpio.High {
			break
		}
		eh.d.sleep(busyPollDelay)
	}
	eh.d.sleep(busySettle)
}

// waitUntilIdlePin watches the BUSY line without sending status polls,
// for power transitions during which the controller ignores commands.
// The line first drops low when the command is accepted, then rises when
// the transition is done. Both waits are bounded; a panel that never
// acknowledges is treated as already settled.
func (eh *errorHandler) waitUntilIdlePin() {
	if eh.err != nil {
		return
	}
	for i := 0; i < powerTimeoutPolls && eh.d.busy.Read() == gpio.High; i++ {
		eh.d.sleep(busyPollDelay)
	}
	for i := 0; i < busyTimeoutPolls && eh.d.busy.Read() == gpio.Low; i++ {
		eh.d.sleep(busyPollDelay)
	}
}
