// Package errors defines sentinel errors used across multiple packages.
package errors

import "errors"

// ErrReadPending is returned when a line is requested while another read is still waiting for input.
var ErrReadPending = errors.New("read already pending")

// ErrRendererClosed is returned when an animation is requested after the renderer has shut down.
var ErrRendererClosed = errors.New("renderer closed")
