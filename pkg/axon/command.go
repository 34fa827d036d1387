package axon

import (
	"context"
	"errors"
	"fmt"
)

// Watch serves the host as the responder: it reads one line and, if
// it's a connect request, accepts it and serves exactly one command.
// The served command is returned, or nil if none was served.
func (a *Axon) Watch(ctx context.Context) (*Command, error) {
	a.runLock.Lock()
	defer a.runLock.Unlock()

	accepted, err := a.acceptHandshake(ctx)
	if err != nil || !accepted {
		return nil, err
	}
	defer a.linkState.Set(LinkClosed)
	return a.serveCommand(ctx)
}

func (a *Axon) serveCommand(ctx context.Context) (*Command, error) {
	line, err := a.readLine(ctx, a.CommandTimeout)
	if err != nil {
		if errors.Is(err, errReadTimeout) {
			a.logf("No command received")
			err = nil
		}
		return nil, err
	}
	if !IsCommand(line) {
		a.logf("Ignored line while awaiting command: %q", line)
		return nil, nil
	}
	a.logf("Command detected: %s", line)
	cmd, err := DecodeCommand(line)
	if err != nil {
		a.logf("failure: %v", err)
		return nil, nil
	}
	return &cmd, a.ExecuteCommand(cmd)
}

// ExecuteCommand sets the digital output and records the outcome in
// the command status.
func (a *Axon) ExecuteCommand(cmd Command) error {
	if a.Output == nil {
		return ErrNoOutput
	}
	err := a.Output.DigitalWrite(cmd.Pin, cmd.Level())
	resp := CommandResponse{Command: cmd, Status: err == nil}
	a.cmdStatus.Set(resp)
	if err != nil {
		return fmt.Errorf("%s pin %d: %w", cmd.Operation, cmd.Pin, err)
	}
	if a.ReportCommands {
		return a.sendCommandResponse(resp)
	}
	return nil
}

func (a *Axon) sendCommandResponse(resp CommandResponse) error {
	line, err := EncodeCommandResponse(resp)
	if err != nil {
		return err
	}
	return a.writeLine(line)
}
