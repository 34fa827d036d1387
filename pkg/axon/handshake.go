package axon

import (
	"context"
	"errors"
	"strconv"
)

// LinkState is the state of the handshake state machine.
type LinkState int

// Link states.
const (
	LinkIdle LinkState = iota
	LinkAwaitingPeer
	LinkConnected
	LinkClosed
)

// String implements fmt.Stringer.
func (s LinkState) String() string {
	switch s {
	case LinkIdle:
		return "idle"
	case LinkAwaitingPeer:
		return "awaiting-peer"
	case LinkConnected:
		return "connected"
	case LinkClosed:
		return "closed"
	}
	return "LinkState(" + strconv.Itoa(int(s)) + ")"
}

// Init connects to the host as the initiator.
// A connect request is sent every RetryInterval until the host accepts
// it, then the state snapshot is sent. It only returns on success,
// cancellation of ctx, or a transport error.
func (a *Axon) Init(ctx context.Context) error {
	a.runLock.Lock()
	defer a.runLock.Unlock()

	req := HandshakeRequest{HandshakeType: HandshakeConnect, MessageType: MessageState}
	for attempt := 1; ; attempt++ {
		if err := a.sendHandshakeRequest(req); err != nil {
			return err
		}
		a.linkState.Set(LinkAwaitingPeer)
		if err := sleep(ctx, a.RetryInterval); err != nil {
			return err
		}
		resp, err := a.awaitHandshakeResponse(ctx)
		if err != nil {
			return err
		}
		if resp.HandshakeType != HandshakeAccept {
			a.logf("No accept from peer (attempt %d), retrying", attempt)
			continue
		}
		a.connStatus.Set(resp.HandshakeType)
		a.linkState.Set(LinkConnected)
		a.logf("Device connected with status %s", resp.HandshakeType)
		return a.NotifyState()
	}
}

// awaitHandshakeResponse reads one line. Anything other than a well formed
// handshake response results in a zero HandshakeResponse and a nil error.
func (a *Axon) awaitHandshakeResponse(ctx context.Context) (resp HandshakeResponse, err error) {
	line, err := a.readLine(ctx, a.ReadTimeout)
	if err != nil {
		if errors.Is(err, errReadTimeout) {
			err = nil
		}
		return
	}
	if !IsHandshake(line) {
		a.logf("Ignored line while awaiting handshake: %q", line)
		return
	}
	if resp, err = DecodeHandshakeResponse(line); err != nil {
		a.logf("failure: %v", err)
		return HandshakeResponse{}, nil
	}
	return
}

// acceptHandshake reads one line and accepts it if it's a connect request.
func (a *Axon) acceptHandshake(ctx context.Context) (bool, error) {
	line, err := a.readLine(ctx, 0)
	if err != nil {
		return false, err
	}
	if !IsHandshake(line) {
		a.logf("Ignored line: %q", line)
		return false, nil
	}
	a.logf("Handshake detected.")
	req, err := DecodeHandshakeRequest(line)
	if err != nil {
		a.logf("failure: %v", err)
		return false, nil
	}
	if req.HandshakeType != HandshakeConnect {
		a.logf("Unexpected handshake %s", req.HandshakeType)
		return false, nil
	}
	if err = a.sendHandshakeResponse(HandshakeResponse{HandshakeType: HandshakeAccept}); err != nil {
		return false, err
	}
	a.connStatus.Set(HandshakeAccept)
	a.linkState.Set(LinkConnected)
	a.logf("Device connected with status %s", HandshakeAccept)
	return true, nil
}

func (a *Axon) sendHandshakeRequest(req HandshakeRequest) error {
	line, err := EncodeHandshakeRequest(req)
	if err != nil {
		return err
	}
	return a.writeLine(line)
}

func (a *Axon) sendHandshakeResponse(resp HandshakeResponse) error {
	line, err := EncodeHandshakeResponse(resp)
	if err != nil {
		return err
	}
	return a.writeLine(line)
}
