// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epd contains the shared vocabulary of the e-paper packages:
// logical colors, display modes, orientations, drawing styles, the driver
// contract and its capability record, and the color conversion routines
// that map between logical colors and per-mode device encodings.
package epd

import (
	"fmt"
	"image/color"
)

// Color is a logical display color. Not every color is available in every
// DisplayMode; see AvailableColors. Colors are converted to device bit
// patterns by the framebuffer encoders, never stored as-is.
type Color uint8

// Valid Color values.
const (
	Black Color = iota
	White
	Gray1 // light gray, Grayscale4 only
	Gray2 // dark gray, Grayscale4 only
	Red
	Yellow
	Blue
	Green
)

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	case Gray1:
		return "Gray1"
	case Gray2:
		return "Gray2"
	case Red:
		return "Red"
	case Yellow:
		return "Yellow"
	case Blue:
		return "Blue"
	case Green:
		return "Green"
	default:
		return "Unknown"
	}
}

// Set sets the Color value. Set implements the flag.Value interface.
func (c *Color) Set(s string) error {
	switch s {
	case "black", "Black":
		*c = Black
	case "white", "White":
		*c = White
	case "gray1", "Gray1":
		*c = Gray1
	case "gray2", "Gray2":
		*c = Gray2
	case "red", "Red":
		*c = Red
	case "yellow", "Yellow":
		*c = Yellow
	case "blue", "Blue":
		*c = Blue
	case "green", "Green":
		*c = Green
	default:
		return fmt.Errorf("epd: unknown color %q", s)
	}
	return nil
}

// RGBA implements color.Color using the fixed logical-color palette
// (Gray1 is 170/170/170, Gray2 is 85/85/85).
func (c Color) RGBA() (r, g, b, a uint32) {
	cr, cg, cb := c.RGB8()
	return uint32(cr) * 0x101, uint32(cg) * 0x101, uint32(cb) * 0x101, 0xffff
}

// RGB8 returns the 24-bit export mapping of the color.
func (c Color) RGB8() (r, g, b uint8) {
	switch c {
	case Black:
		return 0, 0, 0
	case White:
		return 255, 255, 255
	case Gray1:
		return 170, 170, 170
	case Gray2:
		return 85, 85, 85
	case Red:
		return 255, 0, 0
	case Yellow:
		return 255, 255, 0
	case Blue:
		return 0, 0, 255
	case Green:
		return 0, 255, 0
	default:
		return 255, 255, 255
	}
}

var _ color.Color = Black

// DisplayMode selects the pixel encoding of a panel.
type DisplayMode uint8

// Valid DisplayMode values.
const (
	// BlackWhite is 1 bit per pixel, one plane.
	BlackWhite DisplayMode = iota
	// Grayscale4 is 2 bits per pixel, one plane, four gray levels.
	Grayscale4
	// BWR is two 1 bit planes, black/white plus a red accent plane.
	BWR
	// BWY is two 1 bit planes, black/white plus a yellow accent plane.
	BWY
	// Spectra6 is 3 bits per pixel, tightly packed, six colors.
	Spectra6
)

func (m DisplayMode) String() string {
	switch m {
	case BlackWhite:
		return "BlackWhite"
	case Grayscale4:
		return "Grayscale4"
	case BWR:
		return "BWR"
	case BWY:
		return "BWY"
	case Spectra6:
		return "Spectra6"
	default:
		return "Unknown"
	}
}

// Set sets the DisplayMode value. Set implements the flag.Value interface.
func (m *DisplayMode) Set(s string) error {
	switch s {
	case "bw", "BlackWhite":
		*m = BlackWhite
	case "gray4", "Grayscale4":
		*m = Grayscale4
	case "bwr", "BWR":
		*m = BWR
	case "bwy", "BWY":
		*m = BWY
	case "spectra6", "Spectra6":
		*m = Spectra6
	default:
		return fmt.Errorf("epd: unknown display mode %q", s)
	}
	return nil
}

// Planes returns the number of framebuffer planes the mode uses.
func (m DisplayMode) Planes() int {
	if m == BWR || m == BWY {
		return 2
	}
	return 1
}

// AvailableColors returns the admissible logical colors of a mode, in the
// order used for tie-breaking during quantization.
func AvailableColors(m DisplayMode) []Color {
	switch m {
	case BlackWhite:
		return []Color{Black, White}
	case Grayscale4:
		return []Color{Black, Gray2, Gray1, White}
	case BWR:
		return []Color{Black, White, Red}
	case BWY:
		return []Color{Black, White, Yellow}
	case Spectra6:
		return []Color{Black, White, Red, Yellow, Blue, Green}
	default:
		return nil
	}
}

// PaletteFor returns the mode's admissible colors as a color.Palette for
// interoperability with the image packages.
func PaletteFor(m DisplayMode) color.Palette {
	avail := AvailableColors(m)
	p := make(color.Palette, len(avail))
	for i, c := range avail {
		p[i] = c
	}
	return p
}

// Orientation rotates the logical coordinate frame of a display. The panel
// itself is always addressed in native Portrait0.
type Orientation uint8

// Valid Orientation values.
const (
	Portrait0    Orientation = iota // no rotation
	Landscape90                     // 90° clockwise
	Portrait180                     // 180°
	Landscape270                    // 90° counter-clockwise
)

func (o Orientation) String() string {
	switch o {
	case Portrait0:
		return "Portrait0"
	case Landscape90:
		return "Landscape90"
	case Portrait180:
		return "Portrait180"
	case Landscape270:
		return "Landscape270"
	default:
		return "Unknown"
	}
}

// Set sets the Orientation value. Set implements the flag.Value interface.
func (o *Orientation) Set(s string) error {
	switch s {
	case "0", "Portrait0":
		*o = Portrait0
	case "90", "Landscape90":
		*o = Landscape90
	case "180", "Portrait180":
		*o = Portrait180
	case "270", "Landscape270":
		*o = Landscape270
	default:
		return fmt.Errorf("epd: unknown orientation %q", s)
	}
	return nil
}

// Swaps reports whether the orientation swaps the logical width and height.
func (o Orientation) Swaps() bool {
	return o == Landscape90 || o == Landscape270
}

// Transform maps a logical coordinate to the physical panel coordinate for
// a native w×h panel. Out of range logical coordinates map outside the
// native rectangle; the framebuffers treat those as no-ops.
func Transform(x, y, w, h int, o Orientation) (px, py int) {
	switch o {
	case Landscape90:
		return w - 1 - y, x
	case Portrait180:
		return w - 1 - x, h - 1 - y
	case Landscape270:
		return y, h - 1 - x
	default:
		return x, y
	}
}

// DotPixel is the pen size of the drawing primitives: an N×N pixel block
// stamped at every step.
type DotPixel int

// Valid DotPixel values.
const (
	Pixel1x1 DotPixel = 1 + iota
	Pixel2x2
	Pixel3x3
	Pixel4x4
	Pixel5x5
	Pixel6x6
	Pixel7x7
	Pixel8x8
)

// LineStyle selects solid or dotted strokes.
type LineStyle uint8

// Valid LineStyle values.
const (
	Solid LineStyle = iota
	Dotted // draw on even steps only
)

// Fill selects outline or filled shapes.
type Fill uint8

// Valid Fill values.
const (
	Empty Fill = iota
	Full
)
