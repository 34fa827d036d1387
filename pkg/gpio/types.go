// Package gpio provides digital outputs.
package gpio

// Writer sets the level of a digital output pin.
type Writer interface {
	DigitalWrite(pin int, level bool) error
}

// WriterFunc is func form of Writer.
type WriterFunc func(pin int, level bool) error

// DigitalWrite implements Writer.
func (f WriterFunc) DigitalWrite(pin int, level bool) error {
	return f(pin, level)
}
