package yore

import "errors"

var (
	// ErrClosed is returned when Yore is used after Close.
	ErrClosed = errors.New("yore: closed")

	// ErrExiv2NotFound is returned when the exiv2 tool is not installed.
	ErrExiv2NotFound = errors.New("yore: exiv2 not found in PATH")
)
