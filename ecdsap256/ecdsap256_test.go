package ecdsap256

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	pkcs8, pubKey, err := NewKeyPair()
	require.NoError(t, err)
	require.Len(t, pubKey, PublicKeyLen)

	digest := []byte("a 32+ byte digest used only for the test case..")
	sig, err := Sign(pkcs8, digest)
	require.NoError(t, err)

	require.True(t, Verify(pubKey, sig, digest))
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	pkcs8, pubKey, err := NewKeyPair()
	require.NoError(t, err)

	digest := []byte("another digest value for signature tampering")
	sig, err := Sign(pkcs8, digest)
	require.NoError(t, err)

	sig[0] ^= 0xFF
	require.False(t, Verify(pubKey, sig, digest))
}

func TestVerifyRejectsTamperedPubKey(t *testing.T) {
	pkcs8, pubKey, err := NewKeyPair()
	require.NoError(t, err)

	digest := []byte("yet another digest value for pub key tampering")
	sig, err := Sign(pkcs8, digest)
	require.NoError(t, err)

	pubKey[0] ^= 0xFF
	require.False(t, Verify(pubKey, sig, digest))
}
