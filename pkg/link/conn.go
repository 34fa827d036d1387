package link

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrClosed indicates the Conn is closed.
var ErrClosed = errors.New("link closed")

// DefaultBacklog is the number of received lines buffered by a Conn.
const DefaultBacklog = 16

// RecvFunc receives the next line from the underlying channel.
type RecvFunc func() (string, error)

// SendFunc sends a line to the underlying channel.
type SendFunc func(string) error

// Conn implements LineReadWriter.
// Lines are received in the background so ReadLine can be canceled.
type Conn struct {
	send   SendFunc
	closer io.Closer

	lineCh    chan string
	done      chan struct{}
	err       error
	sendLock  sync.Mutex
	closeOnce sync.Once
}

// NewConn creates a Conn over a byte stream (e.g. serial port).
// Lines are terminated by "\n", a trailing "\r" is dropped.
func NewConn(rw io.ReadWriter) *Conn {
	closer, _ := rw.(io.Closer)
	return NewMessageConn(StreamRecv(rw), func(line string) error {
		_, err := io.WriteString(rw, line+"\n")
		return err
	}, closer)
}

// NewMessageConn creates a Conn over a message oriented channel,
// one message per line.
func NewMessageConn(recv RecvFunc, send SendFunc, closer io.Closer) *Conn {
	c := &Conn{
		send:   send,
		closer: closer,
		lineCh: make(chan string, DefaultBacklog),
		done:   make(chan struct{}),
	}
	go c.recvLoop(recv)
	return c
}

// StreamRecv creates a RecvFunc splitting a byte stream into lines.
func StreamRecv(r io.Reader) RecvFunc {
	reader := bufio.NewReader(r)
	var partial strings.Builder
	return func() (string, error) {
		for {
			s, err := reader.ReadString('\n')
			partial.WriteString(s)
			if err == io.ErrNoProgress {
				// the port returned without data on read timeout.
				continue
			}
			if err != nil && partial.Len() == 0 {
				return "", err
			}
			line := partial.String()
			partial.Reset()
			return line, nil
		}
	}
}

// ReadLine implements LineReader.
func (c *Conn) ReadLine(ctx context.Context) (string, error) {
	select {
	case line, ok := <-c.lineCh:
		if !ok {
			return "", c.err
		}
		return line, nil
	case <-c.done:
		return "", ErrClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// WriteLine implements LineWriter.
func (c *Conn) WriteLine(line string) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	c.sendLock.Lock()
	defer c.sendLock.Unlock()
	return c.send(line)
}

// Buffered returns the number of lines received but not read yet.
func (c *Conn) Buffered() int {
	return len(c.lineCh)
}

// Close implements io.Closer.
func (c *Conn) Close() (err error) {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.closer != nil {
			err = c.closer.Close()
		}
	})
	return
}

func (c *Conn) recvLoop(recv RecvFunc) {
	defer close(c.lineCh)
	for {
		line, err := recv()
		if err != nil {
			c.err = err
			return
		}
		if line = strings.TrimRight(line, "\r\n"); line == "" {
			continue
		}
		select {
		case c.lineCh <- line:
		case <-c.done:
			c.err = ErrClosed
			return
		}
	}
}
