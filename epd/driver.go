// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

import "errors"

// ErrWakeNotSupported is returned by Wake on panels whose controller can
// only leave deep sleep through a hardware reset and full re-init. Callers
// that re-initialize on wake treat this as success.
var ErrWakeNotSupported = errors.New("epd: wake from sleep not supported")

// Capabilities is the static capability record of a panel driver. It is
// fixed per concrete driver type and consulted before any hardware access.
type Capabilities struct {
	// Native panel dimensions in Portrait0.
	Width  int
	Height int
	// Modes the driver can be initialized with.
	Modes []DisplayMode
	// PartialRefresh reports whether the panel supports partial updates.
	PartialRefresh bool
	// PowerControl reports whether PowerOn/PowerOff reach the hardware.
	PowerControl bool
	// WakeFromSleep reports whether the panel leaves deep sleep without a
	// full re-init.
	WakeFromSleep bool
}

// SupportsMode reports whether the driver can run in mode m.
func (c *Capabilities) SupportsMode(m DisplayMode) bool {
	for _, mode := range c.Modes {
		if mode == m {
			return true
		}
	}
	return false
}

// Driver is the contract between a panel driver and the screen facade.
//
// A driver owns its HAL resources exclusively for its lifetime; sharing
// them between two drivers or goroutines is undefined. Construction must
// not touch the hardware; Init performs the reset and LUT upload.
type Driver interface {
	// Init resets the panel and programs it for the given mode.
	Init(mode DisplayMode) error
	// Display streams a single-plane framebuffer and triggers a refresh.
	Display(buf []byte) error
	// DisplayPlanes streams a multi-plane framebuffer and triggers a
	// refresh.
	DisplayPlanes(planes [][]byte) error
	// Sleep puts the panel into deep sleep.
	Sleep() error
	// Wake leaves deep sleep, or returns ErrWakeNotSupported after
	// re-initializing on panels without wake support.
	Wake() error
	// PowerOff cuts panel power.
	PowerOff() error
	// PowerOn restores panel power.
	PowerOn() error
	// Caps returns the driver's static capability record.
	Caps() Capabilities
}
