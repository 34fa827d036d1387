package env

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/robotalks/axon/pkg/link"
	"github.com/robotalks/axon/pkg/link/mqtt"
	"github.com/robotalks/axon/pkg/link/serial"
	"github.com/robotalks/axon/pkg/link/websocket"
)

// DefaultOrigin is the origin presented to websocket servers.
const DefaultOrigin = "http://localhost/"

// Link is a connected link with the resources it owns.
type Link struct {
	*link.Conn
	queue *mqtt.Queue
}

// Close closes the link and its broker connection if any.
func (l *Link) Close() error {
	err := l.Conn.Close()
	if l.queue != nil {
		l.queue.Close()
	}
	return err
}

// SerialConfig parses serial:///dev/ttyUSB0?baud=9600.
func SerialConfig(u *url.URL) (serial.Config, error) {
	conf := serial.Config{Port: u.Path}
	if conf.Port == "" {
		conf.Port = u.Opaque
	}
	if conf.Port == "" {
		return conf, fmt.Errorf("serial port must be specified")
	}
	if baud := u.Query().Get("baud"); baud != "" {
		rate, err := strconv.Atoi(baud)
		if err != nil || rate <= 0 {
			return conf, fmt.Errorf("invalid baud rate %q", baud)
		}
		conf.BaudRate = rate
	}
	return conf, nil
}

// Dial connects the device side of the link.
func (c *Config) Dial() (*Link, error) {
	return c.dial(false)
}

// DialHost connects the host side of the link to the device.
// Serial and websocket links are symmetric, only MQTT topics differ.
func (c *Config) DialHost() (*Link, error) {
	return c.dial(true)
}

func (c *Config) dial(hostSide bool) (*Link, error) {
	u, err := url.Parse(c.LinkURL)
	if err != nil {
		return nil, fmt.Errorf("invalid link URL: %w", err)
	}
	switch u.Scheme {
	case "serial":
		conf, err := SerialConfig(u)
		if err != nil {
			return nil, err
		}
		conn, err := serial.Open(conf)
		if err != nil {
			return nil, err
		}
		return &Link{Conn: conn}, nil
	case "mqtt", "tcp", "ssl":
		if c.DeviceID == "" {
			return nil, fmt.Errorf("device id must be specified")
		}
		q, err := mqtt.NewQueueFromURL(c.LinkURL)
		if err != nil {
			return nil, err
		}
		if err = q.Connect(); err != nil {
			return nil, err
		}
		if hostSide {
			return &Link{Conn: mqtt.NewHostLink(q, c.DeviceID), queue: q}, nil
		}
		return &Link{Conn: mqtt.NewLink(q, c.DeviceID), queue: q}, nil
	case "ws", "wss":
		conn, err := websocket.Dial(c.LinkURL, DefaultOrigin)
		if err != nil {
			return nil, err
		}
		return &Link{Conn: conn}, nil
	default:
		return nil, fmt.Errorf("unknown link URL scheme: %q", u.Scheme)
	}
}

// SensorQueue connects to the broker sensors publish to,
// nil if not configured.
func (c *Config) SensorQueue() (*mqtt.Queue, error) {
	if c.SensorURL == "" {
		return nil, nil
	}
	q, err := mqtt.NewQueueFromURL(c.SensorURL)
	if err != nil {
		return nil, err
	}
	if err = q.Connect(); err != nil {
		return nil, err
	}
	return q, nil
}
