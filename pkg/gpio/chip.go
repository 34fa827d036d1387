package gpio

import (
	"fmt"
	"sync"
)

// DefaultChip is the GPIO character device used when none is specified.
const DefaultChip = "gpiochip0"

// DefaultConsumer labels lines requested by a Chip.
const DefaultConsumer = "axon"

// OutputLine is a requested output line.
type OutputLine interface {
	SetValue(value int) error
	Close() error
}

// RequestFunc requests a line as an output at the initial value.
type RequestFunc func(chip string, offset, value int) (OutputLine, error)

// Chip drives pins as line offsets of a GPIO character device.
// Lines are requested on first write and held until Close.
type Chip struct {
	Name    string
	Request RequestFunc

	lines map[int]OutputLine
	lock  sync.Mutex
}

// NewChip creates a Chip on the named device, DefaultChip if empty.
func NewChip(name string) *Chip {
	if name == "" {
		name = DefaultChip
	}
	return &Chip{Name: name, Request: RequestOutput, lines: make(map[int]OutputLine)}
}

// DigitalWrite implements Writer.
func (c *Chip) DigitalWrite(pin int, level bool) error {
	value := 0
	if level {
		value = 1
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	if line := c.lines[pin]; line != nil {
		return line.SetValue(value)
	}
	line, err := c.Request(c.Name, pin, value)
	if err != nil {
		return fmt.Errorf("request %s line %d: %w", c.Name, pin, err)
	}
	c.lines[pin] = line
	return nil
}

// Close releases the lines requested by this Chip.
func (c *Chip) Close() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	var firstErr error
	for pin, line := range c.lines {
		if err := line.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.lines, pin)
	}
	return firstErr
}
