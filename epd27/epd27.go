// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd27

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/host/v3/rpi"

	"github.com/epdkit/epaper/epd"
)

// Native panel dimensions in pixels.
const (
	Width  = 176
	Height = 264
)

// Commands
const (
	panelSetting           byte = 0x00
	powerSetting           byte = 0x01
	powerOff               byte = 0x02
	powerOn                byte = 0x04
	boosterSoftStart       byte = 0x06
	deepSleep              byte = 0x07
	dataStartTransmission1 byte = 0x10
	displayRefresh         byte = 0x12
	dataStartTransmission2 byte = 0x13
	partialDisplayRefresh  byte = 0x16
	lutVCOMRegister        byte = 0x20
	lutWhiteToWhite        byte = 0x21
	lutBlackToWhite        byte = 0x22
	lutWhiteToBlack        byte = 0x23
	lutBlackToBlack        byte = 0x24
	lutWhiteToWhite2       byte = 0x25
	pllControl             byte = 0x30
	vcomDataInterval       byte = 0x50
	resolutionSetting      byte = 0x61
	getStatus              byte = 0x71
	vcmDCSetting           byte = 0x82
	powerOptimization      byte = 0xF8
)

// Register values.
const (
	panelSettingBW    byte = 0xAF
	panelSettingGray  byte = 0xBF
	pllBW             byte = 0x3A
	pllGray           byte = 0x90
	vcmDCValue        byte = 0x12
	vcomIntervalGray  byte = 0x97
	vcomIntervalSleep byte = 0xF7
	deepSleepCheck    byte = 0xA5
	partialRefreshOff byte = 0x00
	clearFill         byte = 0xFF
)

// 2-bit grayscale pixel codes at the top of a byte.
const (
	grayPixelMask byte = 0xC0
	grayWhiteBits byte = 0xC0
	grayLightBits byte = 0x80
	grayDarkBits  byte = 0x40
)

// Buffer geometry.
const (
	bwBytesPerRow   = (Width + 7) / 8
	grayBytesPerRow = (Width + 3) / 4
	bwFrameLen      = bwBytesPerRow * Height
	grayFrameLen    = grayBytesPerRow * Height
)

// Timing.
const (
	resetDelay    = 200 * time.Millisecond
	resetPulse    = 2 * time.Millisecond
	refreshDelay  = 200 * time.Millisecond
	busySettle    = 200 * time.Millisecond
	busyPollDelay = 10 * time.Millisecond

	// The status poll gives up after roughly ten seconds; a full
	// grayscale refresh takes several.
	busyTimeoutPolls = 1000
	// Power transitions settle within a second.
	powerTimeoutPolls = 100
)

// Opts holds the configuration of the display.
type Opts struct {
	// PWR drives the power rail of HATs that expose one. Leave nil when
	// the rail is hardwired.
	PWR gpio.PinOut

	// Speed is the SPI bus speed. Defaults to 5MHz.
	Speed physic.Frequency
}

// Dev is a handle to a Waveshare 2.7 inch e-paper display.
type Dev struct {
	c conn.Conn

	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIO
	pwr  gpio.PinOut

	// sleep is swapped out in tests.
	sleep func(time.Duration)

	mode        epd.DisplayMode
	initialized bool
	asleep      bool
}

// New opens a handle to the display. No hardware is touched until Init.
func New(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIO, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	speed := opts.Speed
	if speed == 0 {
		speed = 5 * physic.MegaHertz
	}
	c, err := p.Connect(speed, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	return &Dev{
		c:     c,
		dc:    dc,
		cs:    cs,
		rst:   rst,
		busy:  busy,
		pwr:   opts.PWR,
		sleep: time.Sleep,
	}, nil
}

// NewHat opens a handle to the display wired to the standard Waveshare
// HAT pins: RST on BCM17, DC on BCM25, CS on CE0, BUSY on BCM24 and the
// power rail on BCM18.
func NewHat(p spi.Port) (*Dev, error) {
	return New(p, rpi.P1_22, rpi.P1_24, rpi.P1_11, rpi.P1_18, &Opts{PWR: rpi.P1_12})
}

func (d *Dev) String() string {
	return fmt.Sprintf("epd27.Dev{%s, %s, Width: %d, Height: %d}", d.c, d.dc, Width, Height)
}

// Caps returns the static capability record of the panel.
func (d *Dev) Caps() epd.Capabilities {
	return epd.Capabilities{
		Width:  Width,
		Height: Height,
		Modes:  []epd.DisplayMode{epd.BlackWhite, epd.Grayscale4},
		// Deep sleep is only reversible through reset plus re-init.
		PowerControl: true,
	}
}

// Init resets the panel and programs it for the given mode. It must be
// called before any other operation and may be called again to switch
// modes or to leave deep sleep.
func (d *Dev) Init(mode epd.DisplayMode) error {
	caps := d.Caps()
	if !caps.SupportsMode(mode) {
		return &epd.InvalidModeError{Mode: mode}
	}

	eh := &errorHandler{d: d, op: "init"}
	if d.pwr != nil {
		eh.pwrOut(gpio.High)
	}
	eh.reset()

	switch mode {
	case epd.BlackWhite:
		initBlackWhite(eh)
	default:
		initGrayscale(eh)
	}
	if eh.err != nil {
		return &epd.InitError{Err: eh.err}
	}

	d.mode = mode
	d.initialized = true
	d.asleep = false
	return nil
}

// Display streams a full framebuffer to the panel and refreshes. The
// buffer must be packed for the current mode: 1 bit per pixel in
// black/white, 2 bits per pixel in grayscale. An asleep panel is woken by
// re-initialization first.
func (d *Dev) Display(buf []byte) error {
	if err := d.ready(); err != nil {
		return err
	}
	want := bwFrameLen
	if d.mode == epd.Grayscale4 {
		want = grayFrameLen
	}
	if len(buf) != want {
		return &epd.RefreshError{Err: fmt.Errorf("epd27: buffer is %d bytes, want %d", len(buf), want)}
	}

	eh := &errorHandler{d: d, op: "display"}
	if d.mode == epd.Grayscale4 {
		displayGrayscale(eh, buf)
	} else {
		displayBlackWhite(eh, buf)
	}
	if eh.err != nil {
		return &epd.RefreshError{Err: eh.err}
	}
	return nil
}

// DisplayPlanes streams two prepared 1-bit passes as old and new data and
// refreshes. Most callers want Display; this is the raw two-pass entry
// point.
func (d *Dev) DisplayPlanes(planes [][]byte) error {
	if err := d.ready(); err != nil {
		return err
	}
	if len(planes) != 2 {
		return &epd.RefreshError{Err: fmt.Errorf("epd27: got %d planes, want 2", len(planes))}
	}
	for i, p := range planes {
		if len(p) != bwFrameLen {
			return &epd.RefreshError{Err: fmt.Errorf("epd27: plane %d is %d bytes, want %d", i, len(p), bwFrameLen)}
		}
	}

	eh := &errorHandler{d: d, op: "display"}
	displayPlanes(eh, planes[0], planes[1])
	if eh.err != nil {
		return &epd.RefreshError{Err: eh.err}
	}
	return nil
}

// Clear refreshes the panel to all white.
func (d *Dev) Clear() error {
	if err := d.ready(); err != nil {
		return err
	}
	eh := &errorHandler{d: d, op: "clear"}
	clearDisplay(eh)
	if eh.err != nil {
		return &epd.RefreshError{Err: eh.err}
	}
	return nil
}

// Sleep puts the panel into deep sleep. The panel stops responding to
// commands until the next Init or Wake.
func (d *Dev) Sleep() error {
	if !d.initialized {
		return &epd.NotInitializedError{}
	}
	if d.asleep {
		return nil
	}
	eh := &errorHandler{d: d, op: "sleep"}
	sleepDisplay(eh)
	if eh.err != nil {
		return eh.err
	}
	d.asleep = true
	return nil
}

// Wake brings the panel back from deep sleep. The controller cannot wake
// without a full re-initialization, so Wake re-runs Init with the current
// mode and then reports ErrWakeNotSupported; callers that expect this
// treat it as success since the panel is ready afterwards.
func (d *Dev) Wake() error {
	if !d.initialized {
		return &epd.NotInitializedError{}
	}
	if !d.asleep {
		return nil
	}
	if err := d.Init(d.mode); err != nil {
		return err
	}
	return epd.ErrWakeNotSupported
}

// PowerOff turns the panel's charge pumps off without entering deep
// sleep. Commands other than PowerOn are ignored by the hardware until
// power is restored.
func (d *Dev) PowerOff() error {
	if !d.initialized {
		return &epd.NotInitializedError{}
	}
	eh := &errorHandler{d: d, op: "power off"}
	eh.sendCommand(powerOff)
	// The controller does not answer status polls while the pumps wind
	// down; watch the BUSY line directly.
	eh.waitUntilIdlePin()
	return eh.err
}

// PowerOn turns the panel's charge pumps back on.
func (d *Dev) PowerOn() error {
	if !d.initialized {
		return &epd.NotInitializedError{}
	}
	eh := &errorHandler{d: d, op: "power on"}
	eh.sendCommand(powerOn)
	eh.waitUntilIdlePin()
	return eh.err
}

// ready verifies the panel is initialized and wakes it when asleep.
func (d *Dev) ready() error {
	if !d.initialized {
		return &epd.NotInitializedError{}
	}
	if d.asleep {
		return d.Init(d.mode)
	}
	return nil
}

var _ epd.Driver = &Dev{}
