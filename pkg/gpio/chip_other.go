//go:build !linux

package gpio

import "errors"

// ErrUnsupported is returned when GPIO chips are not available.
var ErrUnsupported = errors.New("gpio chips are only supported on linux")

// RequestOutput requests a line through gpiocdev.
func RequestOutput(chip string, offset, value int) (OutputLine, error) {
	return nil, ErrUnsupported
}
