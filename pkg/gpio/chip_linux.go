package gpio

import (
	"github.com/warthog618/go-gpiocdev"
)

// RequestOutput requests a line through gpiocdev.
func RequestOutput(chip string, offset, value int) (OutputLine, error) {
	return gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsOutput(value),
		gpiocdev.WithConsumer(DefaultConsumer))
}
