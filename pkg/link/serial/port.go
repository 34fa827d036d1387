// Package serial provides links over serial ports.
package serial

import (
	"fmt"

	bugst "go.bug.st/serial"

	"github.com/robotalks/axon/pkg/link"
)

// DefaultBaudRate is the baud rate used when none is specified.
const DefaultBaudRate = 9600

// Config specifies a serial port.
type Config struct {
	Port     string
	BaudRate int
}

// Open opens the serial port and wraps it as a link.
// Input already buffered by the driver is discarded, it usually contains
// noise from before the peer was ready.
func Open(conf Config) (*link.Conn, error) {
	baud := conf.BaudRate
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	port, err := bugst.Open(conf.Port, &bugst.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", conf.Port, err)
	}
	if err = port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("reset %s: %w", conf.Port, err)
	}
	return link.NewConn(port), nil
}

// Ports lists the serial ports available on the system.
func Ports() ([]string, error) {
	return bugst.GetPortsList()
}
