// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package imageio

import "fmt"

// FileNotFoundError is returned when the image file does not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("imageio: file not found: %s", e.Path)
}

// InvalidFormatError is returned when the file is not in a recognized
// image format.
type InvalidFormatError struct {
	Path string
	Err  error
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("imageio: %s: %v", e.Path, e.Err)
}

func (e *InvalidFormatError) Unwrap() error { return e.Err }

// LoadFailedError wraps any other error raised while reading or decoding
// an image file.
type LoadFailedError struct {
	Path string
	Err  error
}

func (e *LoadFailedError) Error() string {
	return fmt.Sprintf("imageio: loading %s failed: %v", e.Path, e.Err)
}

func (e *LoadFailedError) Unwrap() error { return e.Err }

// InvalidDimensionsError is returned for negative target dimensions.
type InvalidDimensionsError struct {
	Width, Height int
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("imageio: invalid target dimensions %dx%d", e.Width, e.Height)
}
