// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Binary epd-view shows an image file on a Waveshare 2.7 inch e-paper
// HAT, or on the terminal with -term.
package main

import (
	"flag"
	"fmt"
	"os"

	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/epdkit/epaper/epd"
	"github.com/epdkit/epaper/epd27"
	"github.com/epdkit/epaper/epdterm"
	"github.com/epdkit/epaper/imageio"
	"github.com/epdkit/epaper/screen"
)

func mainImpl() error {
	mode := epd.BlackWhite
	orientation := epd.Portrait0
	flag.Var(&mode, "mode", "display mode (bw, gray4)")
	flag.Var(&orientation, "orientation", "orientation (0, 90, 180, 270)")
	term := flag.Bool("term", false, "render to the terminal instead of the panel")
	dithered := flag.Bool("dither", true, "error-diffuse instead of thresholding")
	png := flag.String("png", "", "also export the framebuffer to a PNG file")
	flag.Parse()
	if flag.NArg() != 1 {
		return fmt.Errorf("specify exactly one image file")
	}
	path := flag.Arg(0)

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

	s, err := screen.New(drv, mode, orientation, true)
	if err != nil {
		return err
	}
	if err := imageio.DrawFile(s, path, 0, 0, s.Width(), s.Height(), *dithered); err != nil {
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

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "epd-view: %s.\n", err)
		os.Exit(1)
	}
}
