package sh

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/axon/pkg/axon"
	"github.com/robotalks/axon/pkg/host"
	"github.com/robotalks/axon/pkg/link/serial"
)

// ParseCommand builds a Command from PIN [OPERATION] with the given level.
func ParseCommand(level int, args []string) (axon.Command, error) {
	var cmd axon.Command
	if len(args) < 1 {
		return cmd, fmt.Errorf("PIN expected")
	}
	pin, err := strconv.Atoi(args[0])
	if err != nil || pin < 0 {
		return cmd, fmt.Errorf("invalid pin %q", args[0])
	}
	op := "off"
	if level == axon.CommandOn {
		op = "on"
	}
	if len(args) > 1 {
		op = strings.Join(args[1:], " ")
	}
	return axon.Command{Operation: op, Command: level, Pin: pin}, nil
}

// FormatMessage prints a message from a device for display.
func FormatMessage(msg *host.Message) string {
	switch {
	case msg.Handshake != nil:
		return fmt.Sprintf("handshake %s", msg.Handshake.HandshakeType)
	case msg.State != nil:
		return fmt.Sprintf("state node=%s gen=%s device=%s", msg.State.Node, msg.State.GenHash, msg.State.DeviceID)
	case msg.Record != nil:
		return fmt.Sprintf("record %s %s", msg.Record.RecordType, msg.Line[1:])
	case msg.CommandResponse != nil:
		resp := msg.CommandResponse
		return fmt.Sprintf("command pin=%d level=%d status=%v", resp.Command.Pin, resp.Command.Command, resp.Status)
	case msg.Tag == axon.TagInit:
		return "init"
	default:
		return fmt.Sprintf("unknown %q", msg.Line)
	}
}

func pinCommand(level int) func(c *ishell.Context) {
	return MustBeConnected(func(c *ishell.Context) {
		cmd, err := ParseCommand(level, c.Args)
		if err != nil {
			c.Err(err)
			return
		}
		s := ShellFrom(c)
		ctx, cancel := s.Context()
		defer cancel()
		if err = s.Host.Command(ctx, cmd); err != nil {
			c.Err(err)
			return
		}
		s.Print(c, cmd, "OK")
	})
}

var (
	// PortsCmd lists serial ports.
	PortsCmd = ishell.Cmd{
		Name: "ports",
		Help: "",
		Func: func(c *ishell.Context) {
			ports, err := serial.Ports()
			if err != nil {
				c.Err(err)
				return
			}
			if ports == nil {
				ports = []string{}
			}
			text := strings.Join(ports, "\n")
			if len(ports) == 0 {
				text = "No serial ports found"
			}
			ShellFrom(c).Print(c, ports, text)
		},
	}

	// ConnectCmd connects a link.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "[LINK_URL]",
		Func: func(c *ishell.Context) {
			var linkURL string
			if len(c.Args) > 0 {
				linkURL = c.Args[0]
			}
			if err := ShellFrom(c).Connect(linkURL); err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd disconnects current link.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}

	// AcceptCmd accepts a device connect request and prints its state.
	AcceptCmd = ishell.Cmd{
		Name:    "accept",
		Aliases: []string{"a"},
		Help:    "",
		Func: MustBeConnected(func(c *ishell.Context) {
			s := ShellFrom(c)
			ctx, cancel := s.Context()
			defer cancel()
			state, err := s.Host.Accept(ctx)
			if err != nil {
				c.Err(err)
				return
			}
			s.Print(c, state, FormatMessage(&host.Message{State: state}))
		}),
	}

	// OnCmd drives a pin high.
	OnCmd = ishell.Cmd{
		Name: "on",
		Help: "PIN [OPERATION]",
		Func: pinCommand(axon.CommandOn),
	}

	// OffCmd drives a pin low.
	OffCmd = ishell.Cmd{
		Name: "off",
		Help: "PIN [OPERATION]",
		Func: pinCommand(axon.CommandOff),
	}

	// MonitorCmd prints messages from the device.
	MonitorCmd = ishell.Cmd{
		Name:    "monitor",
		Aliases: []string{"m"},
		Help:    "[COUNT]",
		Func: MustBeConnected(func(c *ishell.Context) {
			count := 1
			if len(c.Args) > 0 {
				n, err := strconv.Atoi(c.Args[0])
				if err != nil || n <= 0 {
					c.Err(fmt.Errorf("invalid count %q", c.Args[0]))
					return
				}
				count = n
			}
			s := ShellFrom(c)
			ctx, cancel := s.Context()
			defer cancel()
			for ; count > 0; count-- {
				msg, err := s.Host.Next(ctx)
				if err != nil {
					c.Err(err)
					return
				}
				s.Print(c, msg, FormatMessage(msg))
			}
		}),
	}
)

func init() {
	AddCmds(
		&AcceptCmd,
		&OnCmd,
		&OffCmd,
		&MonitorCmd,
	)
}
