// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epdterm

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/epdkit/epaper/epd"
	"github.com/epdkit/epaper/screen"
)

func TestDraw(t *testing.T) {
	var out bytes.Buffer
	d := New(&Opts{Writer: &out, Scale: 2})

	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.NRGBA{A: 255})
		}
	}
	if err := d.Draw(img); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}

	s := out.String()
	if s == "" {
		t.Fatal("no terminal output")
	}
	// 4 rows at scale 2 make 2 terminal lines.
	if got := strings.Count(s, "\n"); got != 2 {
		t.Errorf("wrote %d lines, want 2", got)
	}
	if !strings.Contains(s, "\033[") {
		t.Error("output carries no ANSI escapes")
	}
	// Colors must be reset at the end of every line.
	if !strings.HasSuffix(s, "\033[0m\n") {
		t.Error("output does not reset the terminal colors")
	}
}

func TestHalt(t *testing.T) {
	var out bytes.Buffer
	d := New(&Opts{Writer: &out})
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\033[0m") {
		t.Error("Halt() did not reset the terminal colors")
	}
}

// The emulator is a drop-in driver: a screen refresh against it must
// render to the terminal.
func TestDriver(t *testing.T) {
	var out bytes.Buffer
	d := New(&Opts{Writer: &out, Scale: 8, Width: 16, Height: 16})

	if err := d.Display(make([]byte, 32)); err == nil {
		t.Error("Display() before Init() did not fail")
	}
	if err := d.Init(epd.BlackWhite); err != nil {
		t.Fatal(err)
	}

	s, err := screen.New(d, epd.BlackWhite, epd.Portrait0, true)
	if err != nil {
		t.Fatal(err)
	}
	s.Clear(epd.Black)
	if err := s.Refresh(); err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}
	if out.Len() == 0 {
		t.Error("refresh produced no terminal output")
	}
}

func TestDisplayWrongLength(t *testing.T) {
	d := New(&Opts{Writer: &bytes.Buffer{}, Width: 16, Height: 16})
	if err := d.Init(epd.BlackWhite); err != nil {
		t.Fatal(err)
	}
	var wantErr *epd.RefreshError
	if err := d.Display(make([]byte, 3)); !errors.As(err, &wantErr) {
		t.Errorf("Display(short) = %v, want RefreshError", err)
	}
}

func TestDisplayPlanes(t *testing.T) {
	var out bytes.Buffer
	d := New(&Opts{Writer: &out, Scale: 4, Width: 16, Height: 8})
	if err := d.Init(epd.BWR); err != nil {
		t.Fatal(err)
	}
	// All-red frame: no black/white ink, accent everywhere (active low).
	p0 := bytes.Repeat([]byte{0xFF}, 16)
	p1 := bytes.Repeat([]byte{0x00}, 16)
	if err := d.DisplayPlanes([][]byte{p0, p1}); err != nil {
		t.Fatalf("DisplayPlanes() failed: %v", err)
	}
	if out.Len() == 0 {
		t.Error("no terminal output")
	}
}
