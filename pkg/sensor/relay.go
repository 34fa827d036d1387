package sensor

import (
	"context"
	"path"

	"github.com/golang/glog"

	"github.com/robotalks/axon/pkg/axon"
	"github.com/robotalks/axon/pkg/link/mqtt"
)

// DefaultTopic is the topic pattern sensors publish readings to,
// the last level is the sensor name.
const DefaultTopic = "sensors/+"

// Sender sends records to the host.
type Sender interface {
	Send(axon.Record, axon.RecordType) error
}

// Relay forwards readings from an MQTT queue to a Sender.
type Relay struct {
	Queue  *mqtt.Queue
	Topic  string
	Sender Sender
	// Node fills Reading.Node when a reading doesn't specify one.
	Node string
}

// NewRelay creates a Relay on DefaultTopic.
func NewRelay(q *mqtt.Queue, sender Sender, node string) *Relay {
	return &Relay{Queue: q, Topic: DefaultTopic, Sender: sender, Node: node}
}

// Name implements framework.Named.
func (r *Relay) Name() string {
	return "sensor-relay"
}

// Run implements framework.Runnable.
func (r *Relay) Run(ctx context.Context) error {
	sub := r.Queue.Sub(r.Topic, r.HandleReading)
	defer sub.Close()
	<-ctx.Done()
	return ctx.Err()
}

// HandleReading decodes a payload and sends it as a Record.
func (r *Relay) HandleReading(topic string, payload []byte) {
	reading, err := DecodeReading(payload)
	if err != nil {
		glog.Warningf("%s: bad reading: %v", topic, err)
		return
	}
	if reading.SensorName == "" {
		reading.SensorName = path.Base(topic)
	}
	if reading.Node == "" {
		reading.Node = r.Node
	}
	rec, typ := reading.Record()
	if err = r.Sender.Send(rec, typ); err != nil {
		glog.Errorf("%s: relay failed: %v", topic, err)
		return
	}
	glog.V(2).Infof("%s: relayed %s", topic, reading)
}
