package axon

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/axon/pkg/gpio"
	"github.com/robotalks/axon/pkg/link"
)

// Defaults
const (
	DefaultSettleDelay   = 4 * time.Second
	DefaultRetryInterval = 1 * time.Second
	DefaultReadTimeout   = 1 * time.Second
)

// Axon is the protocol engine of a device.
// Init and Watch own the link for their duration, and are serialized.
type Axon struct {
	// Output sets digital outputs requested by commands.
	Output gpio.Writer
	// SettleDelay is waited by Begin before connecting.
	SettleDelay time.Duration
	// RetryInterval is waited after each connect request.
	RetryInterval time.Duration
	// ReadTimeout bounds the wait for a reply to a connect request.
	ReadTimeout time.Duration
	// CommandTimeout bounds the wait for a command after accepting
	// a connection, 0 waits until the context is done.
	CommandTimeout time.Duration
	// ReportCommands sends the CommandResponse back to the host
	// after a command is executed.
	ReportCommands bool

	state   State
	conn    link.LineReadWriter
	logging int32

	linkState  StatusRegister[LinkState]
	connStatus StatusRegister[HandshakeType]
	cmdStatus  StatusRegister[CommandResponse]

	runLock  sync.Mutex
	sendLock sync.Mutex
}

// New creates an Axon identified by state.
func New(state State, output gpio.Writer) *Axon {
	return &Axon{
		Output:        output,
		SettleDelay:   DefaultSettleDelay,
		RetryInterval: DefaultRetryInterval,
		ReadTimeout:   DefaultReadTimeout,
		state:         state,
	}
}

// Attach sets the link used to talk to the host.
func (a *Axon) Attach(conn link.LineReadWriter) {
	a.sendLock.Lock()
	defer a.sendLock.Unlock()
	a.conn = conn
}

// Begin attaches the link, waits for it to settle and connects to the host.
func (a *Axon) Begin(ctx context.Context, conn link.LineReadWriter) error {
	a.Attach(conn)
	if err := sleep(ctx, a.SettleDelay); err != nil {
		return err
	}
	return a.Init(ctx)
}

// NotifyState sends the state snapshot.
func (a *Axon) NotifyState() error {
	line, err := EncodeState(a.state)
	if err != nil {
		return err
	}
	return a.writeLine(line)
}

// Send sends a record.
func (a *Axon) Send(rec Record, typ RecordType) error {
	line, err := EncodeRecord(a.state.DeviceID, rec, typ)
	if err != nil {
		return err
	}
	if err = a.writeLine(line); err != nil {
		return err
	}
	a.logf("Record sent for %s", rec.SensorName)
	return nil
}

// RequestInit asks the host to start a new connection.
func (a *Axon) RequestInit() error {
	return a.writeLine(string(TagInit))
}

// Debug enables or disables diagnostic logging.
func (a *Axon) Debug(enabled bool) {
	var v int32
	if enabled {
		v = 1
	}
	atomic.StoreInt32(&a.logging, v)
}

// State returns the identity of the device.
func (a *Axon) State() State {
	return a.state
}

// LinkState returns the current state of the handshake state machine.
func (a *Axon) LinkState() LinkState {
	return a.linkState.Get()
}

// ConnectionStatus returns the outcome of the last handshake.
func (a *Axon) ConnectionStatus() HandshakeType {
	return a.connStatus.Get()
}

// CommandStatus returns the outcome of the last executed command.
func (a *Axon) CommandStatus() CommandResponse {
	return a.cmdStatus.Get()
}

func (a *Axon) logf(format string, args ...interface{}) {
	if atomic.LoadInt32(&a.logging) != 0 {
		glog.Infof("[DEBUG] "+format, args...)
	}
}

func (a *Axon) writeLine(line string) error {
	a.sendLock.Lock()
	defer a.sendLock.Unlock()
	if a.conn == nil {
		return ErrNotConnected
	}
	return a.conn.WriteLine(line)
}

// readLine reads the next line, waiting at most timeout if it's not 0.
// errReadTimeout is returned when timeout expires before ctx is done.
func (a *Axon) readLine(ctx context.Context, timeout time.Duration) (string, error) {
	a.sendLock.Lock()
	conn := a.conn
	a.sendLock.Unlock()
	if conn == nil {
		return "", ErrNotConnected
	}
	if timeout <= 0 {
		return conn.ReadLine(ctx)
	}
	readCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	line, err := conn.ReadLine(readCtx)
	if err != nil && ctx.Err() == nil && readCtx.Err() == context.DeadlineExceeded {
		return "", errReadTimeout
	}
	return line, err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
