// Package host implements the host side of the Axon link protocol.
package host

import (
	"context"

	"github.com/golang/glog"

	"github.com/robotalks/axon/pkg/axon"
	"github.com/robotalks/axon/pkg/link"
)

// Message is a decoded line received from a device.
// Exactly one of the pointers is set, unless Tag is axon.TagInit or
// the line is not understood (axon.TagUnknown).
type Message struct {
	Tag             axon.Tag
	Line            string
	Handshake       *axon.HandshakeRequest
	State           *axon.State
	Record          *axon.RecordMessage
	CommandResponse *axon.CommandResponse
}

// Host talks to a device over a link.
type Host struct {
	Conn link.LineReadWriter
}

// New creates a Host.
func New(conn link.LineReadWriter) *Host {
	return &Host{Conn: conn}
}

// Accept waits for the device to connect, accepts it and returns
// the state snapshot the device sends once connected.
func (h *Host) Accept(ctx context.Context) (*axon.State, error) {
	for {
		msg, err := h.Next(ctx)
		if err != nil {
			return nil, err
		}
		if msg.Handshake != nil && msg.Handshake.HandshakeType == axon.HandshakeConnect {
			break
		}
		glog.V(2).Infof("skip %q while waiting for connect", msg.Line)
	}
	line, err := axon.EncodeHandshakeResponse(axon.HandshakeResponse{HandshakeType: axon.HandshakeAccept})
	if err != nil {
		return nil, err
	}
	if err = h.Conn.WriteLine(line); err != nil {
		return nil, err
	}
	for {
		msg, err := h.Next(ctx)
		if err != nil {
			return nil, err
		}
		if msg.State != nil {
			return msg.State, nil
		}
	}
}

// Command connects to a device waiting in Watch and sends the command.
// A single connect request is sent and the accept is awaited until ctx is
// done. A device reads one line after accepting, so a repeated request
// would be taken in place of the command.
func (h *Host) Command(ctx context.Context, cmd axon.Command) error {
	cmdLine, err := axon.EncodeCommand(cmd)
	if err != nil {
		return err
	}
	reqLine, err := axon.EncodeHandshakeRequest(axon.HandshakeRequest{
		HandshakeType: axon.HandshakeConnect,
		MessageType:   axon.MessageCommand,
	})
	if err != nil {
		return err
	}
	if err = h.Conn.WriteLine(reqLine); err != nil {
		return err
	}
	if err = h.awaitAccept(ctx); err != nil {
		return err
	}
	return h.Conn.WriteLine(cmdLine)
}

func (h *Host) awaitAccept(ctx context.Context) error {
	for {
		line, err := h.Conn.ReadLine(ctx)
		if err != nil {
			return err
		}
		if !axon.IsHandshake(line) {
			glog.V(2).Infof("skip %q while waiting for accept", line)
			continue
		}
		if resp, err := axon.DecodeHandshakeResponse(line); err == nil && resp.HandshakeType == axon.HandshakeAccept {
			return nil
		}
	}
}

// Next reads and decodes the next line from the device.
// Lines failing to decode are returned with only Tag and Line set.
func (h *Host) Next(ctx context.Context) (*Message, error) {
	line, err := h.Conn.ReadLine(ctx)
	if err != nil {
		return nil, err
	}
	return Decode(line), nil
}

// Decode decodes a line sent by a device.
func Decode(line string) *Message {
	msg := &Message{Line: line}
	if len(line) == 0 {
		return msg
	}
	msg.Tag = axon.Tag(line[0])
	var err error
	switch msg.Tag {
	case axon.TagHandshake:
		var req axon.HandshakeRequest
		if req, err = axon.DecodeHandshakeRequest(line); err == nil {
			msg.Handshake = &req
		}
	case axon.TagState:
		var state axon.State
		if state, err = axon.DecodeState(line); err == nil {
			msg.State = &state
		}
	case axon.TagRecord:
		var rec axon.RecordMessage
		if rec, err = axon.DecodeRecord(line); err == nil {
			msg.Record = &rec
		}
	case axon.TagCommand:
		var resp axon.CommandResponse
		if resp, err = axon.DecodeCommandResponse(line); err == nil {
			msg.CommandResponse = &resp
		}
	case axon.TagInit:
		if len(line) != 1 {
			msg.Tag = axon.TagUnknown
		}
	default:
		msg.Tag = axon.TagUnknown
	}
	if err != nil {
		glog.Warningf("bad line %q: %v", line, err)
	}
	return msg
}
