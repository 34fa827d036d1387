// Package sensor relays sensor readings published on MQTT to the host.
package sensor

import (
	"bytes"
	"encoding/json"

	"github.com/golang/protobuf/proto"

	"github.com/robotalks/axon/pkg/axon"
)

// Reading is a sensor reading published by a local sensor process.
// It's encoded in protobuf, or JSON when the payload starts with '{'.
type Reading struct {
	Node       string `protobuf:"bytes,1,opt,name=node,proto3" json:"node,omitempty"`
	Recipient  string `protobuf:"bytes,2,opt,name=recipient,proto3" json:"recipient,omitempty"`
	Data       string `protobuf:"bytes,3,opt,name=data,proto3" json:"data,omitempty"`
	SensorName string `protobuf:"bytes,4,opt,name=sensor_name,json=sensorName,proto3" json:"sensorName,omitempty"`
	Encrypted  bool   `protobuf:"varint,5,opt,name=encrypted,proto3" json:"encrypted,omitempty"`
	Multi      bool   `protobuf:"varint,6,opt,name=multi,proto3" json:"multi,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *Reading) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Reading) Reset() { *m = Reading{} }

// String implements proto.Message.
func (m *Reading) String() string { return proto.CompactTextString(m) }

// Record converts the reading to a Record.
func (m *Reading) Record() (axon.Record, axon.RecordType) {
	typ := axon.RecordSimple
	if m.Multi {
		typ = axon.RecordMulti
	}
	return axon.Record{
		Node:       m.Node,
		Recipient:  m.Recipient,
		Data:       m.Data,
		SensorName: m.SensorName,
		Encrypted:  m.Encrypted,
	}, typ
}

// DecodeReading decodes a reading from an MQTT payload.
func DecodeReading(payload []byte) (*Reading, error) {
	var r Reading
	if trimmed := bytes.TrimSpace(payload); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &r); err != nil {
			return nil, err
		}
		return &r, nil
	}
	if err := proto.Unmarshal(payload, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
