package axon

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// HandshakeType is the kind of a handshake message.
// The values are part of the wire contract, they spell "HC" and "HA"
// in big-endian ASCII so they never collide with small integers.
type HandshakeType int

// Handshake types.
const (
	HandshakeNone    HandshakeType = 0
	HandshakeConnect HandshakeType = 18499 // 0x4843
	HandshakeAccept  HandshakeType = 18497 // 0x4841
)

// IsValid checks if it's a known handshake type.
func (t HandshakeType) IsValid() bool {
	return t == HandshakeConnect || t == HandshakeAccept
}

// String implements fmt.Stringer.
func (t HandshakeType) String() string {
	switch t {
	case HandshakeNone:
		return "none"
	case HandshakeConnect:
		return "connect"
	case HandshakeAccept:
		return "accept"
	}
	return "HandshakeType(" + strconv.Itoa(int(t)) + ")"
}

// MessageType is the kind of traffic announced by a handshake request.
type MessageType int

// Message types, valued as the tag of the traffic they announce.
const (
	MessageRecord  MessageType = MessageType(TagRecord)
	MessageState   MessageType = MessageType(TagState)
	MessageCommand MessageType = MessageType(TagCommand)
)

// IsValid checks if it's a known message type.
func (t MessageType) IsValid() bool {
	return t == MessageRecord || t == MessageState || t == MessageCommand
}

// HandshakeRequest is sent by the initiator of a connection.
type HandshakeRequest struct {
	HandshakeType HandshakeType `json:"handshakeType"`
	MessageType   MessageType   `json:"messageType"`
}

// HandshakeResponse is the reply to a HandshakeRequest.
type HandshakeResponse struct {
	HandshakeType HandshakeType `json:"handshakeType"`
}

// Output levels carried by Command.Command.
const (
	CommandOff = 0
	CommandOn  = 1
)

// Command asks the device to set a digital output.
type Command struct {
	Operation string `json:"operation"`
	Command   int    `json:"command"`
	Pin       int    `json:"pin"`

	// OperationDescription and Amount are carried as-is, never acted on.
	OperationDescription string  `json:"operationDescription,omitempty"`
	Amount               float64 `json:"amount,omitempty"`
}

// Level is the output level requested by the command.
func (c Command) Level() bool {
	return c.Command == CommandOn
}

// CommandResponse is the outcome of an executed Command.
type CommandResponse struct {
	Command Command `json:"command"`
	Status  bool   `json:"status"`
}

// RecordType classifies the delivery shape of a Record.
type RecordType byte

// Record types.
const (
	RecordSimple RecordType = 'S'
	RecordMulti  RecordType = 'M'
)

// IsValid checks if it's a known record type.
func (t RecordType) IsValid() bool {
	return t == RecordSimple || t == RecordMulti
}

// String implements fmt.Stringer.
func (t RecordType) String() string {
	return string(rune(t))
}

// MarshalJSON encodes the type as a single character string.
func (t RecordType) MarshalJSON() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid record type %d", byte(t))
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts a single character string, or the character
// code as a number which is how some firmware JSON libraries emit chars.
func (t *RecordType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if len(s) != 1 {
			return fmt.Errorf("invalid record type %q", s)
		}
		*t = RecordType(s[0])
	} else {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*t = RecordType(n)
	}
	if !t.IsValid() {
		return fmt.Errorf("invalid record type %q", string(data))
	}
	return nil
}

// Record is a unit of sensed or relayed data.
// Encrypted is a data attribute only, nothing is encrypted by this package.
type Record struct {
	Node       string `json:"node"`
	Data       string `json:"data"`
	Recipient  string `json:"recipient"`
	SensorName string `json:"sensorName"`
	Encrypted  bool   `json:"encrypted"`
}

// RecordMessage is a Record as seen on the wire.
type RecordMessage struct {
	Record
	DeviceID   string     `json:"deviceId"`
	RecordType RecordType `json:"recordType"`
}

// State is the identity of a device, sent to the host right after
// a connection is established.
type State struct {
	Node           string `json:"node"`
	GenHash        string `json:"genHash"`
	OwnerPublicKey string `json:"ownerPublicKey"`
	DeviceID       string `json:"deviceId"`
}
