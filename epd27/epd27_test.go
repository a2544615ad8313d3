// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd27

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi/spitest"

	"github.com/epdkit/epaper/epd"
)

// newTestDev builds a Dev over a recording SPI port and fake pins. The
// BUSY line is pinned to the given level and all delays are elided.
func newTestDev(t *testing.T, busy gpio.Level) (*Dev, *spitest.Record) {
	t.Helper()
	rec := &spitest.Record{}
	dev, err := New(rec,
		&gpiotest.Pin{N: "DC"},
		&gpiotest.Pin{N: "CS"},
		&gpiotest.Pin{N: "RST"},
		&gpiotest.Pin{N: "BUSY", L: busy},
		nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	dev.sleep = func(time.Duration) {}
	return dev, rec
}

// commandBytes extracts the first byte of every recorded write. Commands
// and data frames interleave; the init sequences are recognizable from
// the leading bytes alone.
func commandBytes(ops []conntest.IO) []byte {
	var out []byte
	for _, op := range ops {
		if len(op.W) > 0 {
			out = append(out, op.W[0])
		}
	}
	return out
}

func TestInitWire(t *testing.T) {
	dev, rec := newTestDev(t, gpio.High)

	if err := dev.Init(epd.BlackWhite); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if len(rec.Ops) == 0 {
		t.Fatal("no SPI traffic recorded")
	}
	if got := rec.Ops[0].W; !bytes.Equal(got, []byte{powerSetting}) {
		t.Errorf("first write = %#v, want the power setting command", got)
	}
	if got := rec.Ops[1].W; !bytes.Equal(got, []byte{0x03, 0x00, 0x2B, 0x2B, 0x09}) {
		t.Errorf("power configuration = %#v", got)
	}

	// Exactly one status poll: BUSY reads idle on the first try.
	polls := 0
	for _, b := range commandBytes(rec.Ops) {
		if b == getStatus {
			polls++
		}
	}
	if polls != 1 {
		t.Errorf("recorded %d status polls, want 1", polls)
	}
}

func TestInitInvalidMode(t *testing.T) {
	dev, _ := newTestDev(t, gpio.High)

	var wantErr *epd.InvalidModeError
	if err := dev.Init(epd.BWR); !errors.As(err, &wantErr) {
		t.Errorf("Init(BWR) = %v, want InvalidModeError", err)
	}
}

func TestNotInitialized(t *testing.T) {
	dev, _ := newTestDev(t, gpio.High)

	var wantErr *epd.NotInitializedError
	if err := dev.Display(make([]byte, bwFrameLen)); !errors.As(err, &wantErr) {
		t.Errorf("Display() = %v, want NotInitializedError", err)
	}
	if err := dev.Sleep(); !errors.As(err, &wantErr) {
		t.Errorf("Sleep() = %v, want NotInitializedError", err)
	}
	if err := dev.Wake(); !errors.As(err, &wantErr) {
		t.Errorf("Wake() = %v, want NotInitializedError", err)
	}
}

func TestDisplayWrongLength(t *testing.T) {
	dev, _ := newTestDev(t, gpio.High)
	if err := dev.Init(epd.BlackWhite); err != nil {
		t.Fatal(err)
	}

	var wantErr *epd.RefreshError
	if err := dev.Display(make([]byte, 10)); !errors.As(err, &wantErr) {
		t.Errorf("Display(short) = %v, want RefreshError", err)
	}
	if err := dev.DisplayPlanes([][]byte{make([]byte, bwFrameLen)}); !errors.As(err, &wantErr) {
		t.Errorf("DisplayPlanes(1 plane) = %v, want RefreshError", err)
	}
}

func TestDisplay(t *testing.T) {
	dev, rec := newTestDev(t, gpio.High)
	if err := dev.Init(epd.Grayscale4); err != nil {
		t.Fatal(err)
	}
	rec.Ops = nil

	if err := dev.Display(bytes.Repeat([]byte{0xFF}, grayFrameLen)); err != nil {
		t.Fatalf("Display() failed: %v", err)
	}
	refreshes := 0
	for _, b := range commandBytes(rec.Ops) {
		if b == displayRefresh {
			refreshes++
		}
	}
	if refreshes != 1 {
		t.Errorf("recorded %d refresh commands, want 1", refreshes)
	}
}

func TestSleepWake(t *testing.T) {
	dev, rec := newTestDev(t, gpio.High)
	if err := dev.Init(epd.BlackWhite); err != nil {
		t.Fatal(err)
	}

	rec.Ops = nil
	if err := dev.Sleep(); err != nil {
		t.Fatalf("Sleep() failed: %v", err)
	}
	want := []byte{vcomDataInterval, 0xF7, powerOff, deepSleep, 0xA5}
	var got []byte
	for _, op := range rec.Ops {
		got = append(got, op.W...)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("sleep traffic = %#v, want %#v", got, want)
	}

	// Sleeping twice is a no-op.
	rec.Ops = nil
	if err := dev.Sleep(); err != nil {
		t.Fatalf("second Sleep() failed: %v", err)
	}
	if len(rec.Ops) != 0 {
		t.Errorf("second Sleep() produced %d writes", len(rec.Ops))
	}

	// Wake re-initializes and reports the reinit through the sentinel.
	if err := dev.Wake(); !errors.Is(err, epd.ErrWakeNotSupported) {
		t.Errorf("Wake() = %v, want ErrWakeNotSupported", err)
	}
	if len(rec.Ops) == 0 {
		t.Error("Wake() did not re-initialize the panel")
	}

	// Waking an awake panel is a no-op.
	if err := dev.Wake(); err != nil {
		t.Errorf("second Wake() = %v, want nil", err)
	}
}

// Display on a sleeping panel transparently re-initializes first.
func TestDisplayAutoWake(t *testing.T) {
	dev, rec := newTestDev(t, gpio.High)
	if err := dev.Init(epd.BlackWhite); err != nil {
		t.Fatal(err)
	}
	if err := dev.Sleep(); err != nil {
		t.Fatal(err)
	}

	rec.Ops = nil
	if err := dev.Display(bytes.Repeat([]byte{0xFF}, bwFrameLen)); err != nil {
		t.Fatalf("Display() after Sleep() failed: %v", err)
	}
	cmds := commandBytes(rec.Ops)
	if len(cmds) == 0 || cmds[0] != powerSetting {
		t.Error("Display() after Sleep() did not start with re-initialization")
	}
}

// A BUSY line that never releases must surface a timeout instead of
// hanging.
func TestBusyTimeout(t *testing.T) {
	dev, _ := newTestDev(t, gpio.Low)

	err := dev.Init(epd.BlackWhite)
	var wantErr *epd.TimeoutError
	if !errors.As(err, &wantErr) {
		t.Errorf("Init() = %v, want a wrapped TimeoutError", err)
	}
	var initErr *epd.InitError
	if !errors.As(err, &initErr) {
		t.Errorf("Init() = %v, want InitError", err)
	}
}

func TestPower(t *testing.T) {
	dev, rec := newTestDev(t, gpio.High)
	if err := dev.Init(epd.BlackWhite); err != nil {
		t.Fatal(err)
	}

	rec.Ops = nil
	if err := dev.PowerOff(); err != nil {
		t.Fatalf("PowerOff() failed: %v", err)
	}
	if got := commandBytes(rec.Ops); len(got) != 1 || got[0] != powerOff {
		t.Errorf("PowerOff() traffic = %#v, want a bare power-off command", got)
	}

	rec.Ops = nil
	if err := dev.PowerOn(); err != nil {
		t.Fatalf("PowerOn() failed: %v", err)
	}
	if got := commandBytes(rec.Ops); len(got) != 1 || got[0] != powerOn {
		t.Errorf("PowerOn() traffic = %#v, want a bare power-on command", got)
	}
}

func TestCaps(t *testing.T) {
	dev, _ := newTestDev(t, gpio.High)
	caps := dev.Caps()

	if caps.Width != 176 || caps.Height != 264 {
		t.Errorf("dimensions = %dx%d, want 176x264", caps.Width, caps.Height)
	}
	if !caps.SupportsMode(epd.BlackWhite) || !caps.SupportsMode(epd.Grayscale4) {
		t.Error("black/white and grayscale must be supported")
	}
	if caps.SupportsMode(epd.BWR) || caps.SupportsMode(epd.Spectra6) {
		t.Error("color modes must not be supported")
	}
	if caps.WakeFromSleep {
		t.Error("the panel cannot wake without re-initialization")
	}
	if !caps.PowerControl {
		t.Error("the panel controls its own power")
	}
}

func TestString(t *testing.T) {
	dev, _ := newTestDev(t, gpio.High)
	if s := dev.String(); !strings.Contains(s, "epd27.Dev") {
		t.Errorf("String() = %q", s)
	}
}
