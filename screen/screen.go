// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen combines a panel driver, a framebuffer and the drawing
// primitives into one surface.
//
// All drawing happens in logical coordinates: the configured orientation
// is applied on every pixel write, so a Landscape90 screen on a portrait
// panel simply is 264 wide and 176 tall from the caller's point of view.
// Nothing reaches the hardware until Refresh.
package screen

import (
	"errors"
	"image"

	"github.com/epdkit/epaper/epd"
	"github.com/epdkit/epaper/framebuf"
	"github.com/epdkit/epaper/graphics"
)

// Screen is a drawing surface bound to one panel driver.
//
// With auto-sleep enabled (the default for battery friendliness), every
// Refresh wakes the panel, pushes the framebuffer and puts the panel
// back into deep sleep.
type Screen struct {
	drv         epd.Driver
	fb          framebuf.Framebuffer
	orientation epd.Orientation
	autoSleep   bool
}

// New builds a screen over an already initialized driver. The mode must
// match what the driver was initialized with; it is validated against the
// driver's capabilities and the framebuffer encodings. The framebuffer
// starts out all white.
func New(drv epd.Driver, mode epd.DisplayMode, orientation epd.Orientation, autoSleep bool) (*Screen, error) {
	caps := drv.Caps()
	if !caps.SupportsMode(mode) {
		return nil, &epd.InvalidModeError{Mode: mode}
	}
	fb, err := framebuf.New(mode, caps.Width, caps.Height)
	if err != nil {
		return nil, err
	}
	return &Screen{
		drv:         drv,
		fb:          fb,
		orientation: orientation,
		autoSleep:   autoSleep,
	}, nil
}

// Width returns the logical width after orientation.
func (s *Screen) Width() int {
	if s.orientation.Swaps() {
		return s.fb.Height()
	}
	return s.fb.Width()
}

// Height returns the logical height after orientation.
func (s *Screen) Height() int {
	if s.orientation.Swaps() {
		return s.fb.Width()
	}
	return s.fb.Height()
}

// Mode returns the pixel encoding of the screen.
func (s *Screen) Mode() epd.DisplayMode { return s.fb.Mode() }

// Orientation returns the configured orientation.
func (s *Screen) Orientation() epd.Orientation { return s.orientation }

// AvailableColors returns the palette of the screen's mode.
func (s *Screen) AvailableColors() []epd.Color {
	return epd.AvailableColors(s.fb.Mode())
}

// AutoSleep reports whether Refresh sleeps the panel afterwards.
func (s *Screen) AutoSleep() bool { return s.autoSleep }

// SetAutoSleep enables or disables sleeping the panel around Refresh.
func (s *Screen) SetAutoSleep(enabled bool) { s.autoSleep = enabled }

// Framebuffer exposes the backing framebuffer.
func (s *Screen) Framebuffer() framebuf.Framebuffer { return s.fb }

// SetPixel writes one logical pixel. Out of range coordinates are
// ignored. Screen implements graphics.Canvas with it.
func (s *Screen) SetPixel(x, y int, c epd.Color) {
	s.fb.SetPixel(x, y, c, s.orientation)
}

// PixelAt reads one logical pixel. Out of range reads return White.
func (s *Screen) PixelAt(x, y int) epd.Color {
	return s.fb.PixelAt(x, y, s.orientation)
}

// Clear fills the whole screen with one color.
func (s *Screen) Clear(c epd.Color) {
	s.fb.Clear(c)
}

// ClearRegion fills the half-open logical rectangle [x0,x1)×[y0,y1).
func (s *Screen) ClearRegion(x0, y0, x1, y1 int, c epd.Color) {
	x1 = min(x1, s.Width())
	y1 = min(y1, s.Height())
	for y := max(y0, 0); y < y1; y++ {
		for x := max(x0, 0); x < x1; x++ {
			s.SetPixel(x, y, c)
		}
	}
}

// Line draws a line between two points inclusive.
func (s *Screen) Line(x0, y0, x1, y1 int, c epd.Color, width epd.DotPixel, style epd.LineStyle) {
	graphics.Line(s, x0, y0, x1, y1, c, width, style)
}

// HLine draws a horizontal line from (x0, y) to (x1, y) inclusive.
func (s *Screen) HLine(x0, x1, y int, c epd.Color, width epd.DotPixel) {
	graphics.HLine(s, x0, x1, y, c, width)
}

// VLine draws a vertical line from (x, y0) to (x, y1) inclusive.
func (s *Screen) VLine(x, y0, y1 int, c epd.Color, width epd.DotPixel) {
	graphics.VLine(s, x, y0, y1, c, width)
}

// Rectangle draws an axis-aligned rectangle, filled or outlined.
func (s *Screen) Rectangle(x0, y0, x1, y1 int, c epd.Color, width epd.DotPixel, fill epd.Fill) {
	graphics.Rectangle(s, x0, y0, x1, y1, c, width, fill)
}

// Circle draws a circle around a center point, filled or outlined.
func (s *Screen) Circle(cx, cy, r int, c epd.Color, width epd.DotPixel, fill epd.Fill) {
	graphics.Circle(s, cx, cy, r, c, width, fill)
}

// Point stamps a pen-sized block on one logical pixel.
func (s *Screen) Point(x, y int, c epd.Color, size epd.DotPixel) {
	graphics.Point(s, x, y, c, size)
}

// Char draws a single glyph.
func (s *Screen) Char(x, y int, ch byte, f *graphics.Font, fg, bg epd.Color) {
	graphics.Char(s, x, y, ch, f, fg, bg)
}

// Text draws a string; '\n' and '\r' move the cursor.
func (s *Screen) Text(x, y int, text string, f *graphics.Font, fg, bg epd.Color) {
	graphics.Text(s, x, y, text, f, fg, bg)
}

// Number draws a base-10 integer.
func (s *Screen) Number(x, y int, n int, f *graphics.Font, fg, bg epd.Color) {
	graphics.Number(s, x, y, n, f, fg, bg)
}

// Decimal draws a fixed-point decimal with truncated fractional digits.
func (s *Screen) Decimal(x, y int, v float64, places int, f *graphics.Font, fg, bg epd.Color) {
	graphics.Decimal(s, x, y, v, places, f, fg, bg)
}

// Bitmap blits a color grid with nearest-neighbor scaling.
func (s *Screen) Bitmap(x, y int, pixels []epd.Color, srcW, srcH, dstW, dstH int) {
	graphics.Bitmap(s, x, y, pixels, srcW, srcH, dstW, dstH)
}

// DrawImage quantizes an image into the screen's palette and writes it
// with its top-left corner at (x, y) in logical coordinates.
func (s *Screen) DrawImage(img image.Image, x, y int) {
	b := img.Bounds()
	mode := s.fb.Mode()
	for dy := 0; dy < b.Dy(); dy++ {
		for dx := 0; dx < b.Dx(); dx++ {
			c := epd.Quantize(mode, img.At(b.Min.X+dx, b.Min.Y+dy))
			s.SetPixel(x+dx, y+dy, c)
		}
	}
}

// Image materializes the logical view as an RGB image, mainly for
// previews and diagnostic export.
func (s *Screen) Image() *image.NRGBA {
	w, h := s.Width(), s.Height()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := s.PixelAt(x, y).RGB8()
			i := out.PixOffset(x, y)
			out.Pix[i] = r
			out.Pix[i+1] = g
			out.Pix[i+2] = b
			out.Pix[i+3] = 0xFF
		}
	}
	return out
}

// Refresh pushes the framebuffer to the panel. With auto-sleep enabled
// the panel is woken first and put back to sleep afterwards; a driver
// that can only wake through re-initialization is tolerated. Every
// refresh sends the full framebuffer.
func (s *Screen) Refresh() error {
	if s.autoSleep {
		if err := s.drv.Wake(); err != nil && !errors.Is(err, epd.ErrWakeNotSupported) {
			return err
		}
	}

	var err error
	if planes := s.fb.Planes(); len(planes) > 1 {
		err = s.drv.DisplayPlanes(planes)
	} else {
		err = s.drv.Display(s.fb.Data())
	}
	if err != nil {
		return err
	}

	if s.autoSleep {
		return s.drv.Sleep()
	}
	return nil
}

// Sleep puts the panel into deep sleep.
func (s *Screen) Sleep() error { return s.drv.Sleep() }

// Wake brings the panel back; see epd.Driver.Wake for the semantics.
func (s *Screen) Wake() error { return s.drv.Wake() }

// PowerOff cuts panel power on drivers that control it.
func (s *Screen) PowerOff() error { return s.drv.PowerOff() }

// PowerOn restores panel power on drivers that control it.
func (s *Screen) PowerOn() error { return s.drv.PowerOn() }

var _ graphics.Canvas = &Screen{}
