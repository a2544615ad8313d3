// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package imageio loads bitmap files onto a screen and exports the
// framebuffer for diagnostics. It sits outside the refresh hot path.
package imageio

import (
	"errors"
	"image"
	"image/png"
	"io/fs"
	"os"

	"github.com/disintegration/imaging"
	"github.com/makeworld-the-better-one/dither/v2"
	"golang.org/x/image/bmp"

	"github.com/epdkit/epaper/epd"
	"github.com/epdkit/epaper/screen"
)

// Load reads and decodes an image file. PNG, JPEG, BMP, GIF and TIFF are
// supported.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	switch {
	case err == nil:
		return img, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, &FileNotFoundError{Path: path}
	case errors.Is(err, image.ErrFormat):
		return nil, &InvalidFormatError{Path: path, Err: err}
	default:
		return nil, &LoadFailedError{Path: path, Err: err}
	}
}

// Resize scales an image to width×height with Lanczos resampling. A zero
// dimension is computed from the other to preserve the aspect ratio;
// both zero returns the image unchanged.
func Resize(img image.Image, width, height int) (image.Image, error) {
	if width < 0 || height < 0 {
		return nil, &InvalidDimensionsError{Width: width, Height: height}
	}
	if width == 0 && height == 0 {
		return img, nil
	}
	return imaging.Resize(img, width, height, imaging.Lanczos), nil
}

// Dither error-diffuses an image onto the palette of the given mode with
// Floyd-Steinberg weights. It trades banding for noise on photographic
// content; line art is better served by plain quantization.
func Dither(img image.Image, mode epd.DisplayMode) image.Image {
	d := dither.NewDitherer(epd.PaletteFor(mode))
	d.Matrix = dither.FloydSteinberg
	return d.Dither(img)
}

// DrawFile loads an image file, scales it to width×height and draws it
// onto the screen at (x, y). When dithered is set the image is
// error-diffused onto the screen's palette first.
func DrawFile(s *screen.Screen, path string, x, y, width, height int, dithered bool) error {
	img, err := Load(path)
	if err != nil {
		return err
	}
	img, err = Resize(img, width, height)
	if err != nil {
		return err
	}
	if dithered {
		img = Dither(img, s.Mode())
	}
	s.DrawImage(img, x, y)
	return nil
}

// SavePNG writes an image to a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveBMP writes an image to a 24-bit BMP file.
func SaveBMP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bmp.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveScreenPNG exports the screen's logical view to a PNG file.
func SaveScreenPNG(s *screen.Screen, path string) error {
	return SavePNG(path, s.Image())
}

// SaveScreenBMP exports the screen's logical view to a BMP file.
func SaveScreenBMP(s *screen.Screen, path string) error {
	return SaveBMP(path, s.Image())
}
