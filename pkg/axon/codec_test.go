package axon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeWireFormat(t *testing.T) {
	testCases := []struct {
		name   string
		encode func() (string, error)
		expect string
	}{
		{
			"handshake request",
			func() (string, error) {
				return EncodeHandshakeRequest(HandshakeRequest{HandshakeType: HandshakeConnect, MessageType: MessageState})
			},
			`H{"handshakeType":18499,"messageType":83}`,
		},
		{
			"handshake response",
			func() (string, error) {
				return EncodeHandshakeResponse(HandshakeResponse{HandshakeType: HandshakeAccept})
			},
			`H{"handshakeType":18497}`,
		},
		{
			"command",
			func() (string, error) {
				return EncodeCommand(Command{Operation: "toggle", Command: CommandOn, Pin: 5})
			},
			`C{"operation":"toggle","command":1,"pin":5}`,
		},
		{
			"command with passthrough",
			func() (string, error) {
				return EncodeCommand(Command{Operation: "dose", Pin: 2, OperationDescription: "pump", Amount: 1.5})
			},
			`C{"operation":"dose","command":0,"pin":2,"operationDescription":"pump","amount":1.5}`,
		},
		{
			"record",
			func() (string, error) {
				return EncodeRecord("dev-1", Record{Node: "n1", Data: "21.5", Recipient: "host", SensorName: "temp"}, RecordSimple)
			},
			`R{"node":"n1","data":"21.5","recipient":"host","sensorName":"temp","encrypted":false,"deviceId":"dev-1","recordType":"S"}`,
		},
		{
			"state",
			func() (string, error) {
				return EncodeState(State{Node: "n1", GenHash: "gh", OwnerPublicKey: "pk", DeviceID: "dev-1"})
			},
			`S{"node":"n1","genHash":"gh","ownerPublicKey":"pk","deviceId":"dev-1"}`,
		},
		{
			"command response",
			func() (string, error) {
				return EncodeCommandResponse(CommandResponse{Command: Command{Operation: "toggle", Command: 1, Pin: 5}, Status: true})
			},
			`C{"command":{"operation":"toggle","command":1,"pin":5},"status":true}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			line, err := tc.encode()
			require.NoError(t, err)
			require.Equal(t, tc.expect, line)
		})
	}
}

func TestEncodeInvalid(t *testing.T) {
	_, err := EncodeCommand(Command{Operation: "toggle", Command: 2, Pin: 5})
	require.Error(t, err)
	_, err = EncodeCommand(Command{Operation: "toggle", Command: CommandOn, Pin: -1})
	require.Error(t, err)
	_, err = EncodeRecord("dev-1", Record{}, RecordType('X'))
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	req := HandshakeRequest{HandshakeType: HandshakeConnect, MessageType: MessageCommand}
	line, err := EncodeHandshakeRequest(req)
	require.NoError(t, err)
	decodedReq, err := DecodeHandshakeRequest(line)
	require.NoError(t, err)
	require.Equal(t, req, decodedReq)

	resp := HandshakeResponse{HandshakeType: HandshakeAccept}
	line, err = EncodeHandshakeResponse(resp)
	require.NoError(t, err)
	decodedResp, err := DecodeHandshakeResponse(line)
	require.NoError(t, err)
	require.Equal(t, resp, decodedResp)

	cmd := Command{Operation: "dose", Command: CommandOn, Pin: 12, OperationDescription: "pump", Amount: 2.25}
	line, err = EncodeCommand(cmd)
	require.NoError(t, err)
	decodedCmd, err := DecodeCommand(line)
	require.NoError(t, err)
	require.Equal(t, cmd, decodedCmd)

	cmdResp := CommandResponse{Command: cmd, Status: true}
	line, err = EncodeCommandResponse(cmdResp)
	require.NoError(t, err)
	decodedCmdResp, err := DecodeCommandResponse(line)
	require.NoError(t, err)
	require.Equal(t, cmdResp, decodedCmdResp)

	rec := Record{Node: "n1", Data: "1,2,3", Recipient: "host", SensorName: "accel", Encrypted: true}
	line, err = EncodeRecord("dev-1", rec, RecordMulti)
	require.NoError(t, err)
	decodedRec, err := DecodeRecord(line)
	require.NoError(t, err)
	require.Equal(t, RecordMessage{Record: rec, DeviceID: "dev-1", RecordType: RecordMulti}, decodedRec)

	state := State{Node: "n1", GenHash: "gh", OwnerPublicKey: "pk", DeviceID: "dev-1"}
	line, err = EncodeState(state)
	require.NoError(t, err)
	decodedState, err := DecodeState(line)
	require.NoError(t, err)
	require.Equal(t, state, decodedState)
}

func TestDecodeRecordTypeAsNumber(t *testing.T) {
	msg, err := DecodeRecord(`R{"node":"n1","data":"x","recipient":"h","sensorName":"s","encrypted":false,"deviceId":"d","recordType":77}`)
	require.NoError(t, err)
	require.Equal(t, RecordMulti, msg.RecordType)
}

func TestDecodeFailures(t *testing.T) {
	testCases := []struct {
		name   string
		decode func() error
		expect error
	}{
		{
			"handshake bare number",
			func() error { _, err := DecodeHandshakeResponse("H18497"); return err },
			ErrParseFailed,
		},
		{
			"handshake truncated",
			func() error { _, err := DecodeHandshakeResponse(`H{"handshakeType":`); return err },
			ErrParseFailed,
		},
		{
			"handshake unknown type",
			func() error { _, err := DecodeHandshakeResponse(`H{"handshakeType":1}`); return err },
			ErrParseFailed,
		},
		{
			"handshake missing type",
			func() error { _, err := DecodeHandshakeResponse(`H{}`); return err },
			ErrParseFailed,
		},
		{
			"request missing message type",
			func() error { _, err := DecodeHandshakeRequest(`H{"handshakeType":18499}`); return err },
			ErrParseFailed,
		},
		{
			"request unknown message type",
			func() error { _, err := DecodeHandshakeRequest(`H{"handshakeType":18499,"messageType":1}`); return err },
			ErrParseFailed,
		},
		{
			"handshake wrong tag",
			func() error { _, err := DecodeHandshakeRequest(`C{"handshakeType":18499,"messageType":67}`); return err },
			ErrUnexpectedMessage,
		},
		{
			"command malformed",
			func() error { _, err := DecodeCommand(`C{"pin":`); return err },
			ErrParseFailed,
		},
		{
			"command empty body",
			func() error { _, err := DecodeCommand(`C{}`); return err },
			ErrParseFailed,
		},
		{
			"command missing pin",
			func() error { _, err := DecodeCommand(`C{"operation":"toggle","command":1}`); return err },
			ErrParseFailed,
		},
		{
			"command invalid level",
			func() error { _, err := DecodeCommand(`C{"operation":"toggle","command":3,"pin":5}`); return err },
			ErrParseFailed,
		},
		{
			"command negative pin",
			func() error { _, err := DecodeCommand(`C{"operation":"toggle","command":1,"pin":-1}`); return err },
			ErrParseFailed,
		},
		{
			"command empty line",
			func() error { _, err := DecodeCommand(""); return err },
			ErrUnexpectedMessage,
		},
		{
			"record invalid type",
			func() error { _, err := DecodeRecord(`R{"recordType":"X"}`); return err },
			ErrParseFailed,
		},
		{
			"record missing type",
			func() error {
				_, err := DecodeRecord(`R{"node":"n1","data":"42","recipient":"host","sensorName":"temp","encrypted":false,"deviceId":"dev-1"}`)
				return err
			},
			ErrParseFailed,
		},
		{
			"state wrong tag",
			func() error { _, err := DecodeState(`R{"node":"n1"}`); return err },
			ErrUnexpectedMessage,
		},
		{
			"command response incomplete",
			func() error { _, err := DecodeCommandResponse(`C{"status":true}`); return err },
			ErrParseFailed,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.decode()
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.expect), "unexpected error: %v", err)
		})
	}
}

func TestDecodeReturnsZeroOnFailure(t *testing.T) {
	cmd, err := DecodeCommand(`C{"operation":"toggle","command":1,"pin":"five"}`)
	require.Error(t, err)
	require.Equal(t, Command{}, cmd)

	rec, err := DecodeRecord(`R{"node":"n1","deviceId":"dev-1"}`)
	require.Error(t, err)
	require.Equal(t, RecordMessage{}, rec)

	state, err := DecodeState(`S{"node":1}`)
	require.Error(t, err)
	require.Equal(t, State{}, state)
}
