// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package framebuf implements the in-memory pixel buffers of the e-paper
// panels. It is the one place where pixel bit layout is known.
//
// Two encoders cover the supported panel families: Mono packs single-plane
// modes (1, 2 or 3 bits per pixel) and TwoPlane carries the dual-plane
// black/white + accent modes. Both satisfy the Framebuffer interface, and
// both are standard draw.Image implementations so the image and x/image
// packages can render into them directly.
//
// Buffers always hold the panel's native Portrait0 layout; orientation is
// applied per pixel access and never baked into the bytes.
package framebuf

import (
	"image"

	"github.com/epdkit/epaper/epd"
)

// Framebuffer is the uniform contract of the pixel buffer encoders.
type Framebuffer interface {
	image.Image

	// Mode returns the pixel encoding of the buffer.
	Mode() epd.DisplayMode
	// Width returns the native panel width.
	Width() int
	// Height returns the native panel height.
	Height() int
	// SetPixel writes one logical pixel. Colors outside the mode's set
	// quantize to the nearest admissible color. Out of range coordinates
	// are ignored.
	SetPixel(x, y int, c epd.Color, o epd.Orientation)
	// PixelAt reads one logical pixel. Out of range coordinates read as
	// White.
	PixelAt(x, y int, o epd.Orientation) epd.Color
	// Clear fills the whole buffer with one color.
	Clear(c epd.Color)
	// Data returns the first (or only) plane's backing bytes.
	Data() []byte
	// Planes returns every plane's backing bytes.
	Planes() [][]byte
}

// New returns the framebuffer encoder matching the mode: TwoPlane for the
// accent modes, Mono for everything else.
func New(mode epd.DisplayMode, w, h int) (Framebuffer, error) {
	if mode.Planes() == 2 {
		return NewTwoPlane(mode, w, h)
	}
	return NewMono(mode, w, h)
}
