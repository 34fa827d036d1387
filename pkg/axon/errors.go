package axon

import (
	"errors"
	"fmt"
)

var (
	// ErrParseFailed indicates a line has the expected tag but the body
	// can't be decoded.
	ErrParseFailed = errors.New("parse failed")
	// ErrUnexpectedMessage indicates a line is not the kind of message
	// expected at this point of the protocol.
	ErrUnexpectedMessage = errors.New("unexpected message")
	// ErrNotConnected indicates no transport is attached to the engine.
	ErrNotConnected = errors.New("not connected")
	// ErrNoOutput indicates no digital output is attached to the engine.
	ErrNoOutput = errors.New("no digital output")

	errReadTimeout = errors.New("read timeout")
)

// TagError reports a line carrying a different tag than expected.
type TagError struct {
	Expect Tag
	Actual Tag
}

// Error implements error.
func (e *TagError) Error() string {
	return fmt.Sprintf("expect tag %s, got %s", e.Expect, e.Actual)
}

// Unwrap makes TagError match ErrUnexpectedMessage.
func (e *TagError) Unwrap() error {
	return ErrUnexpectedMessage
}
