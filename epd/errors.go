// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

import "fmt"

// NotInitializedError is returned when a driver operation runs before a
// successful Init.
type NotInitializedError struct{}

func (e *NotInitializedError) Error() string {
	return "epd: driver not initialized"
}

// InitError wraps the cause of a failed driver initialization.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("epd: driver initialization failed: %v", e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// InvalidModeError is returned when a display mode is not supported by the
// driver or the framebuffer it is paired with.
type InvalidModeError struct {
	Mode DisplayMode
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("epd: display mode %s not supported", e.Mode)
}

// TimeoutError is returned when the panel's BUSY line does not release
// within the driver's timeout window.
type TimeoutError struct {
	Op string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("epd: timeout waiting for panel during %s", e.Op)
}

// RefreshError wraps any error raised while streaming a framebuffer to the
// panel or triggering the refresh.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("epd: display refresh failed: %v", e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }
