// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epd27 controls Waveshare 2.7 inch e-paper displays (176x264).
//
// The panel runs in 1-bit black/white or 2-bit 4-level grayscale mode.
// Grayscale needs two refresh passes on the wire; the driver transcodes the
// packed 2-bit framebuffer into the two passes itself.
//
// Datasheet
//
// https://www.waveshare.com/w/upload/b/ba/2.7inch_e-Paper_Specification.pdf
package epd27
