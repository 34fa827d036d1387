package axon

import (
	"context"

	"github.com/golang/glog"
)

// Name implements framework.Named.
func (a *Axon) Name() string {
	return "axon"
}

// Serve watches the link for commands until ctx is done or the link
// fails. Failing commands are logged and don't stop serving.
func (a *Axon) Serve(ctx context.Context) error {
	for {
		cmd, err := a.Watch(ctx)
		switch {
		case ctx.Err() != nil:
			return ctx.Err()
		case cmd == nil && err != nil:
			return err
		case err != nil:
			glog.Errorf("command %s on pin %d failed: %v", cmd.Operation, cmd.Pin, err)
		case cmd != nil:
			glog.V(1).Infof("command %s: pin %d set to %d", cmd.Operation, cmd.Pin, cmd.Command)
		}
	}
}

// Run implements framework.Runnable, it connects to the host over the
// attached link and serves it.
func (a *Axon) Run(ctx context.Context) error {
	a.sendLock.Lock()
	conn := a.conn
	a.sendLock.Unlock()
	if err := a.Begin(ctx, conn); err != nil {
		return err
	}
	return a.Serve(ctx)
}
