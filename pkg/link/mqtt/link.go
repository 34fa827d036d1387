package mqtt

import (
	"github.com/golang/glog"

	"github.com/robotalks/axon/pkg/link"
)

// Topics of a device link, relative to the queue prefix.
const (
	RxSuffix = "/rx" // host -> device
	TxSuffix = "/tx" // device -> host
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// NewLink creates a device side link: lines are read from DEVICE/rx
// and written to DEVICE/tx.
func NewLink(q *Queue, device string) *link.Conn {
	return newLink(q, device+RxSuffix, device+TxSuffix)
}

// NewHostLink creates the host side of a device link.
func NewHostLink(q *Queue, device string) *link.Conn {
	return newLink(q, device+TxSuffix, device+RxSuffix)
}

func newLink(q *Queue, subTopic, pubTopic string) *link.Conn {
	payloadCh := make(chan []byte, link.DefaultBacklog)
	done := make(chan struct{})
	sub := q.Sub(subTopic, func(topic string, payload []byte) {
		select {
		case payloadCh <- payload:
		case <-done:
		default:
			glog.Warningf("%s: backlog full, line dropped", topic)
		}
	})
	recv := func() (string, error) {
		select {
		case payload := <-payloadCh:
			return string(payload), nil
		case <-done:
			return "", link.ErrClosed
		}
	}
	send := func(line string) error {
		return q.Pub(pubTopic, []byte(line))
	}
	return link.NewMessageConn(recv, send, closerFunc(func() error {
		close(done)
		return sub.Close()
	}))
}
