// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epaper drives SPI e-paper panels from Linux hosts.
//
// The library is split along the update pipeline: epd holds the shared
// vocabulary (colors, modes, orientations, the driver contract), framebuf
// packs pixels into the panel encodings, graphics rasterizes primitives,
// epd27 speaks the 2.7 inch panel protocol, screen ties them together and
// imageio/epdterm cover file import/export and terminal previews.
package epaper
