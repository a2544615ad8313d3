// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package graphics implements the integer-only rasterizers of the e-paper
// stack: lines, rectangles, circles, points, bitmap fonts, numbers and
// nearest-neighbor bitmap blits.
//
// Every primitive is a stateless function writing through the Canvas
// interface, one pixel at a time. Orientation, bounds checking and pixel
// encoding are the canvas' concern; the rasterizers never see them. No
// primitive allocates on the draw path.
package graphics

import (
	"strconv"

	"github.com/epdkit/epaper/epd"
)

// Canvas is the drawing surface of the primitives. Implementations must
// treat out of range coordinates as silent no-ops.
type Canvas interface {
	SetPixel(x, y int, c epd.Color)
}

// Point stamps an N×N pen block for the logical pixel (x, y). Odd sizes
// center the block on the pixel; even sizes place the extra row and column
// to the right and below.
func Point(cv Canvas, x, y int, c epd.Color, size epd.DotPixel) {
	n := int(size)
	if n < 1 {
		n = 1
	}
	x -= (n - 1) / 2
	y -= (n - 1) / 2
	for dy := 0; dy < n; dy++ {
		for dx := 0; dx < n; dx++ {
			cv.SetPixel(x+dx, y+dy, c)
		}
	}
}

// HLine draws a horizontal line from (x0, y) to (x1, y) inclusive.
func HLine(cv Canvas, x0, x1, y int, c epd.Color, width epd.DotPixel) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	w := int(width)
	for x := x0; x <= x1; x++ {
		for k := 0; k < w; k++ {
			cv.SetPixel(x, y+k, c)
		}
	}
}

// VLine draws a vertical line from (x, y0) to (x, y1) inclusive.
func VLine(cv Canvas, x, y0, y1 int, c epd.Color, width epd.DotPixel) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	w := int(width)
	for y := y0; y <= y1; y++ {
		for k := 0; k < w; k++ {
			cv.SetPixel(x+k, y, c)
		}
	}
}

// Line draws a line from (x0, y0) to (x1, y1) inclusive using Bresenham's
// integer algorithm. Dotted style draws only the even steps.
func Line(cv Canvas, x0, y0, x1, y1 int, c epd.Color, width epd.DotPixel, style epd.LineStyle) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}
	xInc := 1
	if x0 > x1 {
		xInc = -1
	}
	yInc := 1
	if y0 > y1 {
		yInc = -1
	}

	esp := dx - dy
	x, y := x0, y0
	for step := 0; ; step++ {
		if style == epd.Solid || step%2 == 0 {
			Point(cv, x, y, c, width)
		}
		if x == x1 && y == y1 {
			return
		}
		esp2 := 2 * esp
		if esp2 >= -dy {
			esp -= dy
			x += xInc
		}
		if esp2 <= dx {
			esp += dx
			y += yInc
		}
	}
}

// Rectangle draws the axis-aligned rectangle with corners (x0, y0) and
// (x1, y1) inclusive. Full fills the interior; Empty draws the four border
// lines with the pen width.
func Rectangle(cv Canvas, x0, y0, x1, y1 int, c epd.Color, width epd.DotPixel, fill epd.Fill) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}

	if fill == epd.Full {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				cv.SetPixel(x, y, c)
			}
		}
		return
	}
	HLine(cv, x0, x1, y0, c, width)
	HLine(cv, x0, x1, y1, c, width)
	VLine(cv, x0, y0, y1, c, width)
	VLine(cv, x1, y0, y1, c, width)
}

// Circle draws a circle centered on (cx, cy) using the midpoint algorithm
// with 8-way symmetry. Full fills with horizontal spans between symmetric
// points. Radius 0 draws the center pixel.
func Circle(cv Canvas, cx, cy, r int, c epd.Color, width epd.DotPixel, fill epd.Fill) {
	if r < 0 {
		return
	}
	if r == 0 {
		Point(cv, cx, cy, c, width)
		return
	}

	x, y := 0, r
	d := 3 - 2*r
	for x <= y {
		if fill == epd.Full {
			HLine(cv, cx-x, cx+x, cy+y, c, width)
			HLine(cv, cx-x, cx+x, cy-y, c, width)
			HLine(cv, cx-y, cx+y, cy+x, c, width)
			HLine(cv, cx-y, cx+y, cy-x, c, width)
		} else {
			Point(cv, cx+x, cy+y, c, width)
			Point(cv, cx-x, cy+y, c, width)
			Point(cv, cx+x, cy-y, c, width)
			Point(cv, cx-x, cy-y, c, width)
			Point(cv, cx+y, cy+x, c, width)
			Point(cv, cx-y, cy+x, c, width)
			Point(cv, cx+y, cy-x, c, width)
			Point(cv, cx-y, cy-x, c, width)
		}
		if d < 0 {
			d += 4*x + 6
		} else {
			d += 4*(x-y) + 10
			y--
		}
		x++
	}
}

// Char draws one glyph with its top-left corner at (x, y). Foreground bits
// paint fg, zero bits paint bg; there is no transparency. Characters
// outside the printable ASCII range draw nothing.
func Char(cv Canvas, x, y int, ch byte, f *Font, fg, bg epd.Color) {
	glyph := f.glyph(ch)
	if glyph == nil {
		return
	}
	for row := 0; row < f.height; row++ {
		for col := 0; col < f.width; col++ {
			b := glyph[row*f.bytesPerRow+col/8]
			c := bg
			if b&(0x80>>uint(col%8)) != 0 {
				c = fg
			}
			cv.SetPixel(x+col, y+row, c)
		}
	}
}

// Text draws a string starting at (x, y). '\n' returns to the start column
// and advances one font height; '\r' returns to the start column.
// Unsupported characters draw nothing but advance a full glyph width so
// fixed-width layouts keep their columns.
func Text(cv Canvas, x, y int, s string, f *Font, fg, bg epd.Color) {
	cx, cy := x, y
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '\n':
			cx = x
			cy += f.height
		case '\r':
			cx = x
		default:
			Char(cv, cx, cy, ch, f, fg, bg)
			cx += f.width
		}
	}
}

// Number draws a base-10 integer.
func Number(cv Canvas, x, y int, n int, f *Font, fg, bg epd.Color) {
	Text(cv, x, y, strconv.Itoa(n), f, fg, bg)
}

// Decimal draws a fixed-point decimal with the given number of fractional
// digits. The fraction is truncated, not rounded, and zero padded.
func Decimal(cv Canvas, x, y int, v float64, places int, f *Font, fg, bg epd.Color) {
	Text(cv, x, y, FormatDecimal(v, places), f, fg, bg)
}

// FormatDecimal renders v with a fixed number of truncated, zero padded
// fractional digits.
func FormatDecimal(v float64, places int) string {
	neg := v < 0
	if neg {
		v = -v
	}
	ip := int64(v)
	frac := v - float64(ip)

	s := strconv.FormatInt(ip, 10)
	if neg {
		s = "-" + s
	}
	if places <= 0 {
		return s
	}

	mult := 1.0
	for i := 0; i < places; i++ {
		mult *= 10
	}
	fs := strconv.FormatInt(int64(frac*mult), 10)
	for len(fs) < places {
		fs = "0" + fs
	}
	return s + "." + fs
}

// Bitmap blits a source pixel grid to a dstW×dstH rectangle with its
// top-left corner at (x, y), scaling by nearest-neighbor sampling. A zero
// destination dimension means "no scaling" on that axis. The source must
// hold srcW*srcH colors.
func Bitmap(cv Canvas, x, y int, pixels []epd.Color, srcW, srcH, dstW, dstH int) {
	if srcW <= 0 || srcH <= 0 || len(pixels) < srcW*srcH {
		return
	}
	if dstW == 0 {
		dstW = srcW
	}
	if dstH == 0 {
		dstH = srcH
	}
	for dy := 0; dy < dstH; dy++ {
		sy := dy * srcH / dstH
		for dx := 0; dx < dstW; dx++ {
			sx := dx * srcW / dstW
			cv.SetPixel(x+dx, y+dy, pixels[sy*srcW+sx])
		}
	}
}
