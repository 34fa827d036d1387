package axon

import (
	"encoding/json"
	"fmt"
	"strings"
)

func encode(tag Tag, v interface{}) (string, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(tag) + string(body), nil
}

func decodeBody(line string, tag Tag, v interface{}) error {
	line = strings.TrimRight(line, "\r\n")
	if len(line) == 0 {
		return &TagError{Expect: tag}
	}
	if actual := Tag(line[0]); actual != tag {
		return &TagError{Expect: tag, Actual: actual}
	}
	if err := json.Unmarshal([]byte(line[1:]), v); err != nil {
		return fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	return nil
}

func parseFailed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrParseFailed}, args...)...)
}

// EncodeHandshakeRequest encodes a handshake request line.
func EncodeHandshakeRequest(req HandshakeRequest) (string, error) {
	return encode(TagHandshake, &req)
}

// EncodeHandshakeResponse encodes a handshake response line.
func EncodeHandshakeResponse(resp HandshakeResponse) (string, error) {
	return encode(TagHandshake, &resp)
}

type handshakeWire struct {
	HandshakeType *HandshakeType `json:"handshakeType"`
	MessageType   *MessageType   `json:"messageType"`
}

func decodeHandshake(line string) (w handshakeWire, err error) {
	if err = decodeBody(line, TagHandshake, &w); err != nil {
		return
	}
	if w.HandshakeType == nil {
		err = parseFailed("missing handshakeType")
	} else if !w.HandshakeType.IsValid() {
		err = parseFailed("invalid handshakeType %d", *w.HandshakeType)
	}
	return
}

// DecodeHandshakeRequest decodes a handshake request line.
func DecodeHandshakeRequest(line string) (HandshakeRequest, error) {
	w, err := decodeHandshake(line)
	if err != nil {
		return HandshakeRequest{}, err
	}
	if w.MessageType == nil {
		return HandshakeRequest{}, parseFailed("missing messageType")
	}
	if !w.MessageType.IsValid() {
		return HandshakeRequest{}, parseFailed("invalid messageType %d", *w.MessageType)
	}
	return HandshakeRequest{HandshakeType: *w.HandshakeType, MessageType: *w.MessageType}, nil
}

// DecodeHandshakeResponse decodes a handshake response line.
func DecodeHandshakeResponse(line string) (HandshakeResponse, error) {
	w, err := decodeHandshake(line)
	if err != nil {
		return HandshakeResponse{}, err
	}
	return HandshakeResponse{HandshakeType: *w.HandshakeType}, nil
}

// EncodeCommand encodes a command line.
func EncodeCommand(cmd Command) (string, error) {
	if cmd.Command != CommandOff && cmd.Command != CommandOn {
		return "", fmt.Errorf("invalid command level %d", cmd.Command)
	}
	if cmd.Pin < 0 {
		return "", fmt.Errorf("invalid pin %d", cmd.Pin)
	}
	return encode(TagCommand, &cmd)
}

type commandWire struct {
	Operation            string  `json:"operation"`
	Command              *int    `json:"command"`
	Pin                  *int    `json:"pin"`
	OperationDescription string  `json:"operationDescription"`
	Amount               float64 `json:"amount"`
}

// DecodeCommand decodes a command line.
// Both command and pin must be present, a command missing either of them
// is rejected rather than read as pin 0 off.
func DecodeCommand(line string) (Command, error) {
	var w commandWire
	if err := decodeBody(line, TagCommand, &w); err != nil {
		return Command{}, err
	}
	switch {
	case w.Command == nil:
		return Command{}, parseFailed("missing command")
	case w.Pin == nil:
		return Command{}, parseFailed("missing pin")
	case *w.Command != CommandOff && *w.Command != CommandOn:
		return Command{}, parseFailed("invalid command %d", *w.Command)
	case *w.Pin < 0:
		return Command{}, parseFailed("invalid pin %d", *w.Pin)
	}
	return Command{
		Operation:            w.Operation,
		Command:              *w.Command,
		Pin:                  *w.Pin,
		OperationDescription: w.OperationDescription,
		Amount:               w.Amount,
	}, nil
}

// EncodeCommandResponse encodes the outcome of a command.
func EncodeCommandResponse(resp CommandResponse) (string, error) {
	return encode(TagCommand, &resp)
}

// DecodeCommandResponse decodes the outcome of a command.
func DecodeCommandResponse(line string) (resp CommandResponse, err error) {
	var w struct {
		Command *Command `json:"command"`
		Status  *bool    `json:"status"`
	}
	if err = decodeBody(line, TagCommand, &w); err != nil {
		return
	}
	if w.Command == nil || w.Status == nil {
		err = parseFailed("incomplete command response")
		return
	}
	return CommandResponse{Command: *w.Command, Status: *w.Status}, nil
}

// EncodeRecord encodes a record line on behalf of a device.
func EncodeRecord(deviceID string, rec Record, typ RecordType) (string, error) {
	return encode(TagRecord, &RecordMessage{Record: rec, DeviceID: deviceID, RecordType: typ})
}

// DecodeRecord decodes a record line, recordType must be present.
func DecodeRecord(line string) (msg RecordMessage, err error) {
	if err = decodeBody(line, TagRecord, &msg); err == nil && !msg.RecordType.IsValid() {
		err = parseFailed("missing recordType")
	}
	if err != nil {
		msg = RecordMessage{}
	}
	return
}

// EncodeState encodes a state snapshot line.
func EncodeState(state State) (string, error) {
	return encode(TagState, &state)
}

// DecodeState decodes a state snapshot line.
func DecodeState(line string) (state State, err error) {
	if err = decodeBody(line, TagState, &state); err != nil {
		state = State{}
	}
	return
}
