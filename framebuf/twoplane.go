// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package framebuf

import (
	"image"
	"image/color"

	"github.com/epdkit/epaper/epd"
)

// TwoPlane is the dual-plane framebuffer of the black/white + accent
// panels. Plane 0 carries black/white (1 = white, 0 = black), plane 1
// carries the accent and is active-low (0 = accent ink present). The
// accent dominates plane 0: a pixel whose accent bit is 0 shows the accent
// regardless of its black/white bit.
type TwoPlane struct {
	mode   epd.DisplayMode
	w, h   int
	stride int
	planes [2][]byte
	accent epd.Color
}

// NewTwoPlane returns a w×h dual-plane framebuffer cleared to white.
func NewTwoPlane(mode epd.DisplayMode, w, h int) (*TwoPlane, error) {
	if !TwoPlaneSupports(mode) {
		return nil, &epd.InvalidModeError{Mode: mode}
	}
	f := &TwoPlane{
		mode:   mode,
		w:      w,
		h:      h,
		stride: (w + byteBits - 1) / byteBits,
		accent: epd.Red,
	}
	if mode == epd.BWY {
		f.accent = epd.Yellow
	}
	for i := range f.planes {
		f.planes[i] = make([]byte, f.stride*h)
	}
	f.Clear(epd.White)
	return f, nil
}

// TwoPlaneSupports reports whether mode is a dual-plane encoding.
func TwoPlaneSupports(mode epd.DisplayMode) bool {
	return mode == epd.BWR || mode == epd.BWY
}

// Mode returns the pixel encoding.
func (f *TwoPlane) Mode() epd.DisplayMode { return f.mode }

// Width returns the native panel width.
func (f *TwoPlane) Width() int { return f.w }

// Height returns the native panel height.
func (f *TwoPlane) Height() int { return f.h }

// Data returns the black/white plane's backing bytes.
func (f *TwoPlane) Data() []byte { return f.planes[0] }

// Planes returns the black/white plane followed by the accent plane.
func (f *TwoPlane) Planes() [][]byte { return [][]byte{f.planes[0], f.planes[1]} }

// Accent returns the mode's accent color.
func (f *TwoPlane) Accent() epd.Color { return f.accent }

// SetPixel writes one logical pixel after orientation transform.
func (f *TwoPlane) SetPixel(x, y int, c epd.Color, o epd.Orientation) {
	px, py := epd.Transform(x, y, f.w, f.h, o)
	if px < 0 || px >= f.w || py < 0 || py >= f.h {
		return
	}
	bwBit, accentBit := f.bits(epd.Quantize(f.mode, c))

	index := py*f.stride + px/byteBits
	bit := byte(1 << (byteBits - 1 - px%byteBits))
	if bwBit {
		f.planes[0][index] |= bit
	} else {
		f.planes[0][index] &^= bit
	}
	if accentBit {
		f.planes[1][index] |= bit
	} else {
		f.planes[1][index] &^= bit
	}
}

// PixelAt reads one logical pixel after orientation transform.
func (f *TwoPlane) PixelAt(x, y int, o epd.Orientation) epd.Color {
	px, py := epd.Transform(x, y, f.w, f.h, o)
	if px < 0 || px >= f.w || py < 0 || py >= f.h {
		return epd.White
	}

	index := py*f.stride + px/byteBits
	bit := byte(1 << (byteBits - 1 - px%byteBits))
	if f.planes[1][index]&bit == 0 {
		return f.accent
	}
	if f.planes[0][index]&bit != 0 {
		return epd.White
	}
	return epd.Black
}

// Clear fills both planes with the bytes tiling the color.
func (f *TwoPlane) Clear(c epd.Color) {
	bwBit, accentBit := f.bits(epd.Quantize(f.mode, c))
	bwByte, accentByte := byte(0x00), byte(0x00)
	if bwBit {
		bwByte = 0xFF
	}
	if accentBit {
		accentByte = 0xFF
	}
	fillBytes(f.planes[0], bwByte)
	fillBytes(f.planes[1], accentByte)
}

// bits maps an admissible color to its (black/white, accent) plane bits.
// Legal codings: (1,1) white, (0,1) black, (1,0) accent.
func (f *TwoPlane) bits(c epd.Color) (bwBit, accentBit bool) {
	switch c {
	case f.accent:
		return true, false
	case epd.Black:
		return false, true
	default:
		return true, true
	}
}

// ColorModel implements image.Image.
func (f *TwoPlane) ColorModel() color.Model {
	return quantizeModel(f.mode)
}

// Bounds implements image.Image.
func (f *TwoPlane) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.w, f.h)
}

// At implements image.Image in the native Portrait0 frame.
func (f *TwoPlane) At(x, y int) color.Color {
	return f.PixelAt(x, y, epd.Portrait0)
}

// Set implements draw.Image in the native Portrait0 frame.
func (f *TwoPlane) Set(x, y int, c color.Color) {
	f.SetPixel(x, y, epd.Quantize(f.mode, c), epd.Portrait0)
}

var _ Framebuffer = &TwoPlane{}
