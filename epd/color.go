// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

import "image/color"

// Quantization thresholds for the four gray levels, in luminance space.
// Level boundaries sit at 64, 128 and 192 so level = luminance >> 6.
const (
	bwThreshold = 128
)

// luminance computes Y = 0.299R + 0.587G + 0.114B in integer math.
func luminance(r, g, b uint8) int {
	return (299*int(r) + 587*int(g) + 114*int(b)) / 1000
}

func distanceSq(r1, g1, b1, r2, g2, b2 uint8) int {
	dr := int(r1) - int(r2)
	dg := int(g1) - int(g2)
	db := int(b1) - int(b2)
	return dr*dr + dg*dg + db*db
}

// QuantizeRGB maps a 24-bit color to the nearest admissible logical color
// of the mode.
//
// BlackWhite thresholds on luminance at 128. Grayscale4 maps luminance to
// four levels with boundaries at 64, 128 and 192. The accent modes use
// squared euclidean distance in RGB space; the accent wins only on a
// strictly smaller distance, so ties resolve toward black then white.
func QuantizeRGB(m DisplayMode, r, g, b uint8) Color {
	switch m {
	case BlackWhite:
		if luminance(r, g, b) >= bwThreshold {
			return White
		}
		return Black
	case Grayscale4:
		switch luminance(r, g, b) >> 6 {
		case 0:
			return Black
		case 1:
			return Gray2
		case 2:
			return Gray1
		default:
			return White
		}
	case BWR:
		return quantizeAccent(r, g, b, Red)
	case BWY:
		return quantizeAccent(r, g, b, Yellow)
	case Spectra6:
		return quantizeSpectra6(r, g, b)
	default:
		return White
	}
}

func quantizeAccent(r, g, b uint8, accent Color) Color {
	ar, ag, ab := accent.RGB8()
	dBlack := distanceSq(r, g, b, 0, 0, 0)
	dWhite := distanceSq(r, g, b, 255, 255, 255)
	dAccent := distanceSq(r, g, b, ar, ag, ab)
	if dAccent < dBlack && dAccent < dWhite {
		return accent
	}
	if dBlack < dWhite {
		return Black
	}
	return White
}

func quantizeSpectra6(r, g, b uint8) Color {
	best := Black
	bestD := distanceSq(r, g, b, 0, 0, 0)
	// Later candidates replace earlier ones only on a strictly smaller
	// distance, fixing the tie-break order.
	for _, c := range []Color{White, Red, Green, Blue, Yellow} {
		cr, cg, cb := c.RGB8()
		if d := distanceSq(r, g, b, cr, cg, cb); d < bestD {
			bestD = d
			best = c
		}
	}
	return best
}

// Quantize maps any color.Color to the nearest admissible logical color of
// the mode. Translucent colors are blended against an opaque white
// background before quantization.
func Quantize(m DisplayMode, c color.Color) Color {
	if lc, ok := c.(Color); ok {
		// Already logical; re-quantize through RGB so colors outside
		// the mode's set land on an admissible one.
		r, g, b := lc.RGB8()
		return QuantizeRGB(m, r, g, b)
	}
	r, g, b := blendOverWhite(c)
	return QuantizeRGB(m, r, g, b)
}

// blendOverWhite composites a premultiplied color over an opaque white
// background and returns 8-bit channels.
func blendOverWhite(c color.Color) (uint8, uint8, uint8) {
	r, g, b, a := c.RGBA()
	inv := 0xffff - a
	return clamp16(r + inv), clamp16(g + inv), clamp16(b + inv)
}

func clamp16(v uint32) uint8 {
	if v > 0xffff {
		v = 0xffff
	}
	return uint8(v >> 8)
}

// Dither converts a packed RGB image (3 bytes per pixel, row-major) to the
// mode's palette using Floyd-Steinberg error diffusion and delivers each
// quantized pixel through set. The buffer must hold at least w*h*3 bytes.
//
// Error weights are the classic 7/16 (right), 3/16 (below left), 5/16
// (below) and 1/16 (below right).
func Dither(m DisplayMode, rgb []uint8, w, h int, set func(x, y int, c Color)) {
	if w <= 0 || h <= 0 || len(rgb) < w*h*3 {
		return
	}

	type rgbErr struct {
		r, g, b int
	}
	px := make([]rgbErr, w*h)
	for i := range px {
		px[i] = rgbErr{int(rgb[i*3]), int(rgb[i*3+1]), int(rgb[i*3+2])}
	}

	clamp := func(v int) uint8 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	spread := func(i, er, eg, eb, num int) {
		px[i].r += er * num / 16
		px[i].g += eg * num / 16
		px[i].b += eb * num / 16
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			r, g, b := clamp(px[i].r), clamp(px[i].g), clamp(px[i].b)
			c := QuantizeRGB(m, r, g, b)
			set(x, y, c)

			qr, qg, qb := c.RGB8()
			er := int(r) - int(qr)
			eg := int(g) - int(qg)
			eb := int(b) - int(qb)

			if x+1 < w {
				spread(i+1, er, eg, eb, 7)
			}
			if y+1 < h {
				if x > 0 {
					spread(i+w-1, er, eg, eb, 3)
				}
				spread(i+w, er, eg, eb, 5)
				if x+1 < w {
					spread(i+w+1, er, eg, eb, 1)
				}
			}
		}
	}
}
