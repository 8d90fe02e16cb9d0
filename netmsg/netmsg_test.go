package netmsg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionRoundTrip(t *testing.T) {
	env, err := NewVersion("127.0.0.1:2002", 5)
	require.NoError(t, err)
	require.Equal(t, TypeVersion, env.Type)

	// an Envelope survives a further JSON round trip, e.g. over the wire.
	data, err := json.Marshal(env)
	require.NoError(t, err)
	var decoded Envelope
	require.NoError(t, json.Unmarshal(data, &decoded))

	payload, err := DecodeVersion(decoded)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:2002", payload.AddrFrom)
	require.EqualValues(t, 5, payload.BestHeight)
	require.Equal(t, NodeVersion, payload.Version)
}

func TestInvRoundTrip(t *testing.T) {
	env, err := NewInv("127.0.0.1:2002", OpBlock, [][]byte{{1, 2}, {3, 4}})
	require.NoError(t, err)

	payload, err := DecodeInv(env)
	require.NoError(t, err)
	require.Equal(t, OpBlock, payload.OpType)
	require.Equal(t, [][]byte{{1, 2}, {3, 4}}, payload.Items)
}
