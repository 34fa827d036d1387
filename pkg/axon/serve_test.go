package axon

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/axon/pkg/gpio"
)

type brokenLink struct{ err error }

func (l *brokenLink) ReadLine(context.Context) (string, error) { return "", l.err }
func (l *brokenLink) WriteLine(string) error                   { return l.err }

func TestServeUntilCanceled(t *testing.T) {
	conn := newScriptedLink(
		connectLine, toggleLine,
		"noise",
		connectLine, `C{"operation":"off","command":0,"pin":5}`,
	)
	a, out := newTestAxon(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := a.Serve(ctx)
	require.Equal(t, context.DeadlineExceeded, err)
	require.Equal(t, []gpio.Write{{Pin: 5, Level: true}, {Pin: 5, Level: false}}, out.Writes())
	require.Equal(t, 2, countPrefix(conn.Written(), "H"))
}

func TestServeStopsOnLinkFailure(t *testing.T) {
	failure := errors.New("link down")
	a := New(testState, gpio.NewMemory())
	a.Attach(&brokenLink{err: failure})
	require.Equal(t, failure, a.Serve(withTimeout(t)))
}

func TestRun(t *testing.T) {
	conn := newScriptedLink(acceptLine, connectLine, toggleLine)
	a, out := newTestAxon(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.Equal(t, context.DeadlineExceeded, a.Run(ctx))
	require.Equal(t, LinkClosed, a.LinkState())
	require.Equal(t, []gpio.Write{{Pin: 5, Level: true}}, out.Writes())
	written := conn.Written()
	require.Equal(t, "S", written[1][:1])
}
