// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package graphics

import (
	"errors"
	"image"

	"golang.org/x/image/font/basicfont"
)

// Printable ASCII range covered by bitmap fonts.
const (
	fontFirstChar = 0x20
	fontLastChar  = 0x7E
	fontGlyphs    = fontLastChar - fontFirstChar + 1
)

// Font is a fixed-width bitmap font. Glyph rows are packed MSB-first into
// ceil(width/8) bytes each; glyphs are stored sequentially for the
// printable ASCII range 0x20..0x7E. The table is opaque byte data.
type Font struct {
	width, height int
	bytesPerRow   int
	table         []byte
}

// NewFont wraps a raw glyph table. The table must hold 95 glyphs of
// ceil(width/8)×height bytes each.
func NewFont(table []byte, width, height int) (*Font, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("graphics: font dimensions must be positive")
	}
	bpr := (width + 7) / 8
	if len(table) < fontGlyphs*bpr*height {
		return nil, errors.New("graphics: font table too short")
	}
	return &Font{width: width, height: height, bytesPerRow: bpr, table: table}, nil
}

// Width returns the fixed glyph advance in pixels.
func (f *Font) Width() int { return f.width }

// Height returns the glyph height in pixels.
func (f *Font) Height() int { return f.height }

// glyph returns the packed rows of ch, or nil outside the printable range.
func (f *Font) glyph(ch byte) []byte {
	if ch < fontFirstChar || ch > fontLastChar {
		return nil
	}
	n := f.bytesPerRow * f.height
	off := int(ch-fontFirstChar) * n
	return f.table[off : off+n]
}

// NewBasicFont converts a basicfont face (such as basicfont.Face7x13) into
// a packed bitmap Font, so the library ships usable fonts without carrying
// its own glyph tables.
func NewBasicFont(face *basicfont.Face) (*Font, error) {
	mask, ok := face.Mask.(*image.Alpha)
	if !ok {
		return nil, errors.New("graphics: unsupported basicfont mask")
	}

	w := face.Advance
	h := face.Ascent + face.Descent
	bpr := (w + 7) / 8
	table := make([]byte, fontGlyphs*bpr*h)

	for ch := fontFirstChar; ch <= fontLastChar; ch++ {
		idx := basicGlyphIndex(face, rune(ch))
		if idx < 0 {
			continue
		}
		base := (ch - fontFirstChar) * bpr * h
		for row := 0; row < h; row++ {
			for col := 0; col < w && col < mask.Rect.Dx(); col++ {
				if mask.AlphaAt(col, idx*h+row).A >= 0x80 {
					table[base+row*bpr+col/8] |= 0x80 >> uint(col%8)
				}
			}
		}
	}
	return &Font{width: w, height: h, bytesPerRow: bpr, table: table}, nil
}

func basicGlyphIndex(face *basicfont.Face, r rune) int {
	for _, rng := range face.Ranges {
		if r >= rng.Low && r < rng.High {
			return rng.Offset + int(r-rng.Low)
		}
	}
	return -1
}

// Face7x13 returns the basicfont 7×13 face as a packed bitmap Font.
func Face7x13() *Font {
	f, err := NewBasicFont(basicfont.Face7x13)
	if err != nil {
		// basicfont.Face7x13 always carries an alpha mask.
		panic(err)
	}
	return f
}
