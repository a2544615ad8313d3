// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package framebuf

import (
	"image"
	"image/color"

	"github.com/epdkit/epaper/epd"
)

// Bit packing constants shared by the single-plane encodings.
const (
	byteBits     = 8
	grayBits     = 2 // bits per Grayscale4 pixel
	grayPerByte  = byteBits / grayBits
	spectraBits  = 3 // bits per Spectra6 pixel
	spectraWhite = 1 // Spectra6 device code for white
)

// Grayscale4 2-bit device codes, leftmost pixel in bits 7..6.
const (
	grayCodeBlack = 0x00
	grayCodeGray2 = 0x01
	grayCodeGray1 = 0x02
	grayCodeWhite = 0x03
)

// spectraWhitePattern tiles eight consecutive code-1 pixels across three
// bytes.
var spectraWhitePattern = [3]byte{0x24, 0x92, 0x49}

// Mono is a single-plane framebuffer. It packs BlackWhite at 1 bit per
// pixel MSB-first, Grayscale4 at 2 bits per pixel and Spectra6 at 3 bits
// per pixel tightly across byte boundaries.
type Mono struct {
	mode   epd.DisplayMode
	w, h   int
	stride int // bytes per row; 0 for the tightly packed Spectra6
	buf    []byte
}

// NewMono returns a w×h single-plane framebuffer cleared to white.
func NewMono(mode epd.DisplayMode, w, h int) (*Mono, error) {
	if !MonoSupports(mode) {
		return nil, &epd.InvalidModeError{Mode: mode}
	}
	f := &Mono{mode: mode, w: w, h: h}
	switch mode {
	case epd.BlackWhite:
		f.stride = (w + byteBits - 1) / byteBits
		f.buf = make([]byte, f.stride*h)
	case epd.Grayscale4:
		f.stride = (w + grayPerByte - 1) / grayPerByte
		f.buf = make([]byte, f.stride*h)
	case epd.Spectra6:
		f.buf = make([]byte, (w*h*spectraBits+byteBits-1)/byteBits)
	}
	f.Clear(epd.White)
	return f, nil
}

// MonoSupports reports whether mode is a single-plane encoding.
func MonoSupports(mode epd.DisplayMode) bool {
	switch mode {
	case epd.BlackWhite, epd.Grayscale4, epd.Spectra6:
		return true
	default:
		return false
	}
}

// Mode returns the pixel encoding.
func (f *Mono) Mode() epd.DisplayMode { return f.mode }

// Width returns the native panel width.
func (f *Mono) Width() int { return f.w }

// Height returns the native panel height.
func (f *Mono) Height() int { return f.h }

// Data returns the backing bytes.
func (f *Mono) Data() []byte { return f.buf }

// Planes returns the single plane.
func (f *Mono) Planes() [][]byte { return [][]byte{f.buf} }

// SetPixel writes one logical pixel after orientation transform.
func (f *Mono) SetPixel(x, y int, c epd.Color, o epd.Orientation) {
	px, py := epd.Transform(x, y, f.w, f.h, o)
	if px < 0 || px >= f.w || py < 0 || py >= f.h {
		return
	}
	c = epd.Quantize(f.mode, c)

	switch f.mode {
	case epd.BlackWhite:
		index := py*f.stride + px/byteBits
		bit := byte(1 << (byteBits - 1 - px%byteBits))
		if c == epd.White {
			f.buf[index] |= bit
		} else {
			f.buf[index] &^= bit
		}
	case epd.Grayscale4:
		index := py*f.stride + px/grayPerByte
		shift := uint((grayPerByte - 1 - px%grayPerByte) * grayBits)
		f.buf[index] = f.buf[index]&^(0x03<<shift) | grayCode(c)<<shift
	case epd.Spectra6:
		f.setSpectra(py*f.w+px, spectraCode(c))
	}
}

// PixelAt reads one logical pixel after orientation transform.
func (f *Mono) PixelAt(x, y int, o epd.Orientation) epd.Color {
	px, py := epd.Transform(x, y, f.w, f.h, o)
	if px < 0 || px >= f.w || py < 0 || py >= f.h {
		return epd.White
	}

	switch f.mode {
	case epd.BlackWhite:
		index := py*f.stride + px/byteBits
		bit := byte(1 << (byteBits - 1 - px%byteBits))
		if f.buf[index]&bit != 0 {
			return epd.White
		}
		return epd.Black
	case epd.Grayscale4:
		index := py*f.stride + px/grayPerByte
		shift := uint((grayPerByte - 1 - px%grayPerByte) * grayBits)
		return grayColor(f.buf[index] >> shift & 0x03)
	case epd.Spectra6:
		return spectraColor(f.getSpectra(py*f.w + px))
	}
	return epd.White
}

// Clear fills the buffer with one color.
func (f *Mono) Clear(c epd.Color) {
	c = epd.Quantize(f.mode, c)
	switch f.mode {
	case epd.BlackWhite:
		fill := byte(0xFF)
		if c == epd.Black {
			fill = 0x00
		}
		fillBytes(f.buf, fill)
	case epd.Grayscale4:
		// Replicate the 2-bit code four times across the byte.
		code := grayCode(c)
		fillBytes(f.buf, code<<6|code<<4|code<<2|code)
	case epd.Spectra6:
		switch c {
		case epd.White:
			for i := range f.buf {
				f.buf[i] = spectraWhitePattern[i%len(spectraWhitePattern)]
			}
		case epd.Black:
			fillBytes(f.buf, 0x00)
		default:
			for y := 0; y < f.h; y++ {
				for x := 0; x < f.w; x++ {
					f.SetPixel(x, y, c, epd.Portrait0)
				}
			}
		}
	}
}

// setSpectra writes the 3-bit code of pixel i, read-modify-writing both
// bytes when the code spans a boundary.
func (f *Mono) setSpectra(i int, code byte) {
	index := i * spectraBits / byteBits
	offset := i * spectraBits % byteBits

	if offset <= byteBits-spectraBits {
		shift := uint(byteBits - spectraBits - offset)
		f.buf[index] = f.buf[index]&^(0x07<<shift) | code<<shift
		return
	}

	highBits := byteBits - offset
	lowBits := spectraBits - highBits
	highMask := byte(1<<highBits - 1)
	f.buf[index] = f.buf[index]&^highMask | code>>lowBits&highMask
	if index+1 < len(f.buf) {
		lowMask := byte(1<<lowBits-1) << (byteBits - lowBits)
		f.buf[index+1] = f.buf[index+1]&^lowMask | code&(1<<lowBits-1)<<(byteBits-lowBits)
	}
}

// getSpectra reads the 3-bit code of pixel i.
func (f *Mono) getSpectra(i int) byte {
	index := i * spectraBits / byteBits
	offset := i * spectraBits % byteBits

	if offset <= byteBits-spectraBits {
		shift := uint(byteBits - spectraBits - offset)
		return f.buf[index] >> shift & 0x07
	}

	highBits := byteBits - offset
	lowBits := spectraBits - highBits
	high := f.buf[index] & (1<<highBits - 1)
	var low byte
	if index+1 < len(f.buf) {
		low = f.buf[index+1] >> (byteBits - lowBits) & (1<<lowBits - 1)
	}
	return high<<lowBits | low
}

// ColorModel implements image.Image.
func (f *Mono) ColorModel() color.Model {
	return quantizeModel(f.mode)
}

// Bounds implements image.Image.
func (f *Mono) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.w, f.h)
}

// At implements image.Image in the native Portrait0 frame.
func (f *Mono) At(x, y int) color.Color {
	return f.PixelAt(x, y, epd.Portrait0)
}

// Set implements draw.Image in the native Portrait0 frame.
func (f *Mono) Set(x, y int, c color.Color) {
	f.SetPixel(x, y, epd.Quantize(f.mode, c), epd.Portrait0)
}

func grayCode(c epd.Color) byte {
	switch c {
	case epd.Black:
		return grayCodeBlack
	case epd.Gray2:
		return grayCodeGray2
	case epd.Gray1:
		return grayCodeGray1
	default:
		return grayCodeWhite
	}
}

func grayColor(code byte) epd.Color {
	switch code {
	case grayCodeBlack:
		return epd.Black
	case grayCodeGray2:
		return epd.Gray2
	case grayCodeGray1:
		return epd.Gray1
	default:
		return epd.White
	}
}

// Spectra6 device codes 0..5; 6 and 7 are reserved.
func spectraCode(c epd.Color) byte {
	switch c {
	case epd.Black:
		return 0
	case epd.White:
		return 1
	case epd.Red:
		return 2
	case epd.Yellow:
		return 3
	case epd.Blue:
		return 4
	case epd.Green:
		return 5
	default:
		return 0
	}
}

func spectraColor(code byte) epd.Color {
	switch code {
	case 0:
		return epd.Black
	case 1:
		return epd.White
	case 2:
		return epd.Red
	case 3:
		return epd.Yellow
	case 4:
		return epd.Blue
	case 5:
		return epd.Green
	default:
		return epd.Black
	}
}

func fillBytes(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}

func quantizeModel(mode epd.DisplayMode) color.Model {
	return color.ModelFunc(func(c color.Color) color.Color {
		return epd.Quantize(mode, c)
	})
}

var _ Framebuffer = &Mono{}
