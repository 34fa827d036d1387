package axon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		line   string
		expect Tag
	}{
		{"", TagUnknown},
		{"H", TagHandshake},
		{`H{"handshakeType":18499}`, TagHandshake},
		{"H18497", TagHandshake},
		{"C", TagCommand},
		{`C{"operation":"toggle","command":1,"pin":5}`, TagCommand},
		{"I", TagUnknown},
		{`R{"node":"n"}`, TagUnknown},
		{`S{"node":"n"}`, TagUnknown},
		{"h{}", TagUnknown},
		{" H{}", TagUnknown},
		{"{}", TagUnknown},
	}
	for _, tc := range testCases {
		require.Equalf(t, tc.expect, Classify(tc.line), "line %q", tc.line)
		require.Equalf(t, tc.expect == TagHandshake, IsHandshake(tc.line), "line %q", tc.line)
		require.Equalf(t, tc.expect == TagCommand, IsCommand(tc.line), "line %q", tc.line)
	}
}

func TestTagString(t *testing.T) {
	require.Equal(t, "H", TagHandshake.String())
	require.Equal(t, "unknown", TagUnknown.String())
}
