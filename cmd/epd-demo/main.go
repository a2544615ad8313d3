// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Binary epd-demo draws a test layout on a Waveshare 2.7 inch e-paper
// HAT, or on the terminal with -term.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/epdkit/epaper/epd"
	"github.com/epdkit/epaper/epd27"
	"github.com/epdkit/epaper/epdterm"
	"github.com/epdkit/epaper/graphics"
	"github.com/epdkit/epaper/imageio"
	"github.com/epdkit/epaper/screen"
)

func mainImpl() error {
	mode := epd.BlackWhite
	orientation := epd.Portrait0
	flag.Var(&mode, "mode", "display mode (bw, gray4)")
	flag.Var(&orientation, "orientation", "orientation (0, 90, 180, 270)")
	term := flag.Bool("term", false, "render to the terminal instead of the panel")
	png := flag.String("png", "", "also export the framebuffer to a PNG file")
	noSleep := flag.Bool("no-sleep", false, "leave the panel awake after the refresh")
	flag.Parse()
	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Arg(0))
	}

	var drv epd.Driver
	if *term {
		drv = epdterm.New(nil)
	} else {
		if _, err := host.Init(); err != nil {
			return err
		}
		p, err := spireg.Open("")
		if err != nil {
			return err
		}
		defer p.Close()
		dev, err := epd27.NewHat(p)
		if err != nil {
			return err
		}
		drv = dev
	}
	if err := drv.Init(mode); err != nil {
		return err
	}

	s, err := screen.New(drv, mode, orientation, !*noSleep)
	if err != nil {
		return err
	}
	if err := draw(s); err != nil {
		return err
	}
	if err := s.Refresh(); err != nil {
		return err
	}
	if *png != "" {
		return imageio.SaveScreenPNG(s, *png)
	}
	return nil
}

func draw(s *screen.Screen) error {
	w, h := s.Width(), s.Height()

	s.Rectangle(2, 2, w-3, h-3, epd.Black, epd.Pixel1x1, epd.Empty)
	s.Line(2, 2, w-3, h-3, epd.Black, epd.Pixel1x1, epd.Dotted)
	s.Line(w-3, 2, 2, h-3, epd.Black, epd.Pixel1x1, epd.Dotted)
	s.Circle(w/2, h/2, w/4, epd.Black, epd.Pixel2x2, epd.Empty)
	s.Circle(w/2, h/2, w/8, epd.Black, epd.Pixel1x1, epd.Full)

	f := graphics.Face7x13()
	s.Text(8, 8, "epd-demo", f, epd.Black, epd.White)
	s.Number(8, 8+f.Height(), w*h, f, epd.Black, epd.White)
	s.Decimal(8, 8+2*f.Height(), 3.1415, 3, f, epd.Black, epd.White)

	if s.Mode() == epd.Grayscale4 {
		s.ClearRegion(8, h-40, 40, h-8, epd.Gray1)
		s.ClearRegion(40, h-40, 72, h-8, epd.Gray2)
	}

	// An antialiased banner, rendered off-screen and quantized in.
	return banner(s)
}

// banner rasterizes a TrueType headline with gg and draws it near the
// bottom of the screen.
func banner(s *screen.Screen) error {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	face := truetype.NewFace(f, &truetype.Options{Size: 18})

	w := s.Width() - 16
	dc := gg.NewContext(w, 28)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(face)
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored("Hello, e-paper!", float64(w)/2, 14, 0.5, 0.5)

	s.DrawImage(dc.Image(), 8, s.Height()-76)
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "epd-demo: %s.\n", err)
		os.Exit(1)
	}
}
