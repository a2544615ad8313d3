// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epdterm renders e-paper frames to the terminal (stdout) using
// ANSI color codes.
//
// Dev implements epd.Driver, so a screen.Screen works against it
// unchanged. Useful to iterate on layouts without flashing a real panel,
// or while you are waiting for your e-paper HAT to come by mail.
package epdterm

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"github.com/epdkit/epaper/epd"
	"github.com/epdkit/epaper/framebuf"
)

// Opts represents the options available for the terminal output.
type Opts struct {
	// Writer overrides the output; nil means a colorable stdout.
	Writer io.Writer
	// Palette maps RGB to terminal colors. Defaults to ansi256.Default.
	Palette *ansi256.Palette
	// Scale divides both dimensions by sampling every Scale-th pixel,
	// since a 176x264 panel does not fit most terminals. 0 means 4.
	Scale int
	// Width and Height set the emulated panel size. 0 means 176x264.
	Width  int
	Height int
}

// Dev is an e-paper emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	scale   int
	width   int
	height  int

	mode        epd.DisplayMode
	initialized bool

	buf bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Writer
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 4
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = 176, 264
	}
	return &Dev{
		w:       w,
		palette: *p,
		scale:   scale,
		width:   width,
		height:  height,
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("EPDTerm{%dx%d}", d.width, d.height)
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the shell is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// Draw renders an image to the terminal, one colored block per sampled
// pixel, one terminal line per sampled row.
func (d *Dev) Draw(img image.Image) error {
	// This code is designed to minimize the amount of memory allocated
	// per call.
	d.buf.Reset()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += d.scale {
		_, _ = d.buf.WriteString("\033[0m")
		for x := b.Min.X; x < b.Max.X; x += d.scale {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			c := color.NRGBA{byte(r16 >> 8), byte(g16 >> 8), byte(b16 >> 8), 255}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

// Caps implements epd.Driver. The emulator accepts every encoding.
func (d *Dev) Caps() epd.Capabilities {
	return epd.Capabilities{
		Width:  d.width,
		Height: d.height,
		Modes: []epd.DisplayMode{
			epd.BlackWhite, epd.Grayscale4, epd.BWR, epd.BWY, epd.Spectra6,
		},
		WakeFromSleep: true,
	}
}

// Init implements epd.Driver.
func (d *Dev) Init(mode epd.DisplayMode) error {
	caps := d.Caps()
	if !caps.SupportsMode(mode) {
		return &epd.InvalidModeError{Mode: mode}
	}
	d.mode = mode
	d.initialized = true
	return nil
}

// Display decodes a packed single-plane framebuffer for the current mode
// and renders it.
func (d *Dev) Display(buf []byte) error {
	fb, err := d.decode()
	if err != nil {
		return err
	}
	if len(buf) != len(fb.Data()) {
		return &epd.RefreshError{Err: fmt.Errorf("epdterm: buffer is %d bytes, want %d", len(buf), len(fb.Data()))}
	}
	copy(fb.Data(), buf)
	return d.Draw(fb)
}

// DisplayPlanes decodes a dual-plane framebuffer and renders it.
func (d *Dev) DisplayPlanes(planes [][]byte) error {
	fb, err := d.decode()
	if err != nil {
		return err
	}
	dst := fb.Planes()
	if len(planes) != len(dst) {
		return &epd.RefreshError{Err: fmt.Errorf("epdterm: got %d planes, want %d", len(planes), len(dst))}
	}
	for i := range dst {
		if len(planes[i]) != len(dst[i]) {
			return &epd.RefreshError{Err: fmt.Errorf("epdterm: plane %d is %d bytes, want %d", i, len(planes[i]), len(dst[i]))}
		}
		copy(dst[i], planes[i])
	}
	return d.Draw(fb)
}

// Sleep implements epd.Driver as a no-op.
func (d *Dev) Sleep() error { return nil }

// Wake implements epd.Driver as a no-op.
func (d *Dev) Wake() error { return nil }

// PowerOff implements epd.Driver as a no-op.
func (d *Dev) PowerOff() error { return nil }

// PowerOn implements epd.Driver as a no-op.
func (d *Dev) PowerOn() error { return nil }

// decode builds an empty framebuffer for the current mode; copying raw
// panel bytes into it turns it back into an image.
func (d *Dev) decode() (framebuf.Framebuffer, error) {
	if !d.initialized {
		return nil, &epd.NotInitializedError{}
	}
	return framebuf.New(d.mode, d.width, d.height)
}

var _ epd.Driver = &Dev{}
var _ fmt.Stringer = &Dev{}
