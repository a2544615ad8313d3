// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package framebuf

import (
	"bytes"
	"image"
	"image/draw"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/epdkit/epaper/epd"
)

var allOrientations = []epd.Orientation{
	epd.Portrait0, epd.Landscape90, epd.Portrait180, epd.Landscape270,
}

func TestNew(t *testing.T) {
	for _, tc := range []struct {
		mode       epd.DisplayMode
		wantPlanes int
		wantLen    int
	}{
		{mode: epd.BlackWhite, wantPlanes: 1, wantLen: 22 * 264},
		{mode: epd.Grayscale4, wantPlanes: 1, wantLen: 44 * 264},
		{mode: epd.Spectra6, wantPlanes: 1, wantLen: (176*264*3 + 7) / 8},
		{mode: epd.BWR, wantPlanes: 2, wantLen: 22 * 264},
		{mode: epd.BWY, wantPlanes: 2, wantLen: 22 * 264},
	} {
		t.Run(tc.mode.String(), func(t *testing.T) {
			f, err := New(tc.mode, 176, 264)
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			planes := f.Planes()
			if len(planes) != tc.wantPlanes {
				t.Errorf("planes = %d, want %d", len(planes), tc.wantPlanes)
			}
			for i, p := range planes {
				if len(p) != tc.wantLen {
					t.Errorf("plane %d length = %d, want %d", i, len(p), tc.wantLen)
				}
			}
			if f.Width() != 176 || f.Height() != 264 {
				t.Errorf("dimensions = %d×%d, want 176×264", f.Width(), f.Height())
			}
		})
	}
}

func TestNewRejectsWrongShape(t *testing.T) {
	if _, err := NewMono(epd.BWR, 8, 8); err == nil {
		t.Error("NewMono(BWR) did not fail")
	}
	if _, err := NewTwoPlane(epd.BlackWhite, 8, 8); err == nil {
		t.Error("NewTwoPlane(BlackWhite) did not fail")
	}
}

// Every admissible color must survive a set/get round trip in every
// orientation, and out of range accesses must be no-ops reading White.
func TestRoundTrip(t *testing.T) {
	for _, mode := range []epd.DisplayMode{
		epd.BlackWhite, epd.Grayscale4, epd.Spectra6, epd.BWR, epd.BWY,
	} {
		t.Run(mode.String(), func(t *testing.T) {
			for _, o := range allOrientations {
				f, err := New(mode, 16, 24)
				if err != nil {
					t.Fatal(err)
				}
				w, h := 16, 24
				if o.Swaps() {
					w, h = h, w
				}
				for _, c := range epd.AvailableColors(mode) {
					for _, pt := range []image.Point{
						{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}, {3, 5},
					} {
						f.SetPixel(pt.X, pt.Y, c, o)
						if got := f.PixelAt(pt.X, pt.Y, o); got != c {
							t.Errorf("%s %s (%d,%d): got %s, want %s", mode, o, pt.X, pt.Y, got, c)
						}
					}
				}

				before := append([]byte(nil), f.Data()...)
				f.SetPixel(w, h, epd.Black, o)
				f.SetPixel(-1, -1, epd.Black, o)
				if !bytes.Equal(before, f.Data()) {
					t.Errorf("%s %s: out of range set mutated the buffer", mode, o)
				}
				if got := f.PixelAt(w, h, o); got != epd.White {
					t.Errorf("%s %s: out of range get = %s, want White", mode, o, got)
				}
			}
		})
	}
}

func TestClearBitPatterns(t *testing.T) {
	for _, tc := range []struct {
		name string
		mode epd.DisplayMode
		c    epd.Color
		fill byte
	}{
		{name: "bw white", mode: epd.BlackWhite, c: epd.White, fill: 0xFF},
		{name: "bw black", mode: epd.BlackWhite, c: epd.Black, fill: 0x00},
		{name: "gray white", mode: epd.Grayscale4, c: epd.White, fill: 0xFF},
		{name: "gray gray1", mode: epd.Grayscale4, c: epd.Gray1, fill: 0xAA},
		{name: "gray gray2", mode: epd.Grayscale4, c: epd.Gray2, fill: 0x55},
		{name: "gray black", mode: epd.Grayscale4, c: epd.Black, fill: 0x00},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewMono(tc.mode, 16, 8)
			if err != nil {
				t.Fatal(err)
			}
			f.Clear(tc.c)
			for i, b := range f.Data() {
				if b != tc.fill {
					t.Fatalf("byte %d = %#02x, want %#02x", i, b, tc.fill)
				}
			}
		})
	}
}

func TestClearIdempotent(t *testing.T) {
	for _, mode := range []epd.DisplayMode{epd.Grayscale4, epd.Spectra6, epd.BWR} {
		f, err := New(mode, 16, 8)
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range epd.AvailableColors(mode) {
			f.Clear(c)
			once := append([]byte(nil), f.Data()...)
			f.Clear(c)
			if !bytes.Equal(once, f.Data()) {
				t.Errorf("%s clear(%s) not idempotent", mode, c)
			}
		}
	}
}

func TestSpectra6ClearWhitePattern(t *testing.T) {
	f, err := NewMono(epd.Spectra6, 176, 264)
	if err != nil {
		t.Fatal(err)
	}
	f.Clear(epd.White)
	for i, b := range f.buf {
		want := spectraWhitePattern[i%3]
		if b != want {
			t.Fatalf("byte %d = %#02x, want %#02x", i, b, want)
		}
	}
}

// A freshly cleared-black 8×1 Spectra6 buffer with a red pixel at x=2 must
// place the code's high bits at the end of byte 0 and its low bit at the
// top of byte 1, leaving every neighbor zero.
func TestSpectra6CrossBytePacking(t *testing.T) {
	f, err := NewMono(epd.Spectra6, 8, 1)
	if err != nil {
		t.Fatal(err)
	}
	f.Clear(epd.Black)
	f.SetPixel(2, 0, epd.Red, epd.Portrait0)

	if diff := cmp.Diff(f.Data(), []byte{0x01, 0x00, 0x00}); diff != "" {
		t.Errorf("buffer difference (-got +want):\n%s", diff)
	}
	if got := f.PixelAt(2, 0, epd.Portrait0); got != epd.Red {
		t.Errorf("PixelAt(2,0) = %s, want Red", got)
	}
	for _, x := range []int{0, 1, 3, 4, 5, 6, 7} {
		if got := f.PixelAt(x, 0, epd.Portrait0); got != epd.Black {
			t.Errorf("PixelAt(%d,0) = %s, want Black", x, got)
		}
	}
}

// A row of all four gray levels must pack into 0b00_01_10_11.
func TestGrayscale4RowPacking(t *testing.T) {
	f, err := NewMono(epd.Grayscale4, 176, 264)
	if err != nil {
		t.Fatal(err)
	}
	f.Clear(epd.White)
	f.SetPixel(0, 0, epd.Black, epd.Portrait0)
	f.SetPixel(1, 0, epd.Gray2, epd.Portrait0)
	f.SetPixel(2, 0, epd.Gray1, epd.Portrait0)
	f.SetPixel(3, 0, epd.White, epd.Portrait0)

	if got := f.Data()[0]; got != 0x1B {
		t.Errorf("byte 0 = %#02x, want 0x1b", got)
	}
}

func TestBlackWhiteFirstPixel(t *testing.T) {
	f, err := NewMono(epd.BlackWhite, 176, 264)
	if err != nil {
		t.Fatal(err)
	}
	f.Clear(epd.White)
	f.SetPixel(0, 0, epd.Black, epd.Portrait0)
	if got := f.Data()[0]; got != 0x7F {
		t.Errorf("byte 0 = %#02x, want 0x7f", got)
	}
	for i, b := range f.Data()[1:] {
		if b != 0xFF {
			t.Fatalf("byte %d = %#02x, want 0xff", i+1, b)
		}
	}
}

// clear(Red) must tile the black/white plane with 0xFF (no ink) and the
// accent plane with 0x00 (accent everywhere, active-low).
func TestBWRClearRed(t *testing.T) {
	f, err := NewTwoPlane(epd.BWR, 176, 264)
	if err != nil {
		t.Fatal(err)
	}
	f.Clear(epd.Red)
	planes := f.Planes()
	for i, b := range planes[0] {
		if b != 0xFF {
			t.Fatalf("bw plane byte %d = %#02x, want 0xff", i, b)
		}
	}
	for i, b := range planes[1] {
		if b != 0x00 {
			t.Fatalf("accent plane byte %d = %#02x, want 0x00", i, b)
		}
	}
	if got := f.PixelAt(10, 10, epd.Portrait0); got != epd.Red {
		t.Errorf("PixelAt(10,10) = %s, want Red", got)
	}
}

// The accent dominates plane 0: writing the accent then black must remove
// the accent bit before the black/white bit takes effect again.
func TestTwoPlaneAccentDominates(t *testing.T) {
	for _, tc := range []struct {
		mode   epd.DisplayMode
		accent epd.Color
	}{
		{mode: epd.BWR, accent: epd.Red},
		{mode: epd.BWY, accent: epd.Yellow},
	} {
		f, err := NewTwoPlane(tc.mode, 8, 8)
		if err != nil {
			t.Fatal(err)
		}
		f.SetPixel(1, 1, tc.accent, epd.Portrait0)
		if got := f.PixelAt(1, 1, epd.Portrait0); got != tc.accent {
			t.Errorf("%s: got %s, want %s", tc.mode, got, tc.accent)
		}
		f.SetPixel(1, 1, epd.Black, epd.Portrait0)
		if got := f.PixelAt(1, 1, epd.Portrait0); got != epd.Black {
			t.Errorf("%s after overwrite: got %s, want Black", tc.mode, got)
		}
	}
}

// Landscape90 (0,0) must land on the same physical cell as Portrait0
// (175,0) on a 176×264 panel.
func TestLandscape90CornerMapping(t *testing.T) {
	rotated, err := NewMono(epd.BlackWhite, 176, 264)
	if err != nil {
		t.Fatal(err)
	}
	native, err := NewMono(epd.BlackWhite, 176, 264)
	if err != nil {
		t.Fatal(err)
	}
	rotated.SetPixel(0, 0, epd.Black, epd.Landscape90)
	native.SetPixel(175, 0, epd.Black, epd.Portrait0)

	if diff := cmp.Diff(rotated.Data(), native.Data()); diff != "" {
		t.Errorf("buffer difference (-rotated +native):\n%s", diff)
	}
}

// Both encoders are draw.Image implementations; a uniform draw must behave
// like a clear.
func TestDrawImageInterop(t *testing.T) {
	f, err := New(epd.BWR, 16, 8)
	if err != nil {
		t.Fatal(err)
	}
	draw.Draw(f.(draw.Image), f.Bounds(), &image.Uniform{epd.Red}, image.Point{}, draw.Src)

	want, err := New(epd.BWR, 16, 8)
	if err != nil {
		t.Fatal(err)
	}
	want.Clear(epd.Red)
	for i := range f.Planes() {
		if diff := cmp.Diff(f.Planes()[i], want.Planes()[i]); diff != "" {
			t.Errorf("plane %d difference (-draw +clear):\n%s", i, diff)
		}
	}
}
