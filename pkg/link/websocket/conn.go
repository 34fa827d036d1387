// Package websocket provides links over websocket, one message per line.
package websocket

import (
	"golang.org/x/net/websocket"

	"github.com/robotalks/axon/pkg/link"
)

// New wraps websocket.Conn as a link.
func New(ws *websocket.Conn) *link.Conn {
	return link.NewMessageConn(func() (line string, err error) {
		err = websocket.Message.Receive(ws, &line)
		return
	}, func(line string) error {
		return websocket.Message.Send(ws, line)
	}, ws)
}

// Dial connects to a websocket server.
func Dial(url, origin string) (*link.Conn, error) {
	ws, err := websocket.Dial(url, "", origin)
	if err != nil {
		return nil, err
	}
	return New(ws), nil
}
