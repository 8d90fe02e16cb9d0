package transaction

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ZhuZhengyi/blockchain-go/ecdsap256"
	"github.com/ZhuZhengyi/blockchain-go/hashutil"
)

// fakeFinder resolves previous transactions from an in-memory map, keyed
// by hex-encoded txid.
type fakeFinder map[string]*Transaction

func (f fakeFinder) FindTransaction(txid []byte) (*Transaction, error) {
	tx, ok := f[hex.EncodeToString(txid)]
	if !ok {
		return nil, errNotFound
	}
	return tx, nil
}

var errNotFound = &notFoundError{}

type notFoundError struct{}

func (*notFoundError) Error() string { return "transaction not found" }

func TestIsCoinbase(t *testing.T) {
	tx, err := NewCoinbaseTx("miner-address")
	require.NoError(t, err)
	require.True(t, tx.IsCoinbase())
	require.Len(t, tx.Vin, 1)
	require.Empty(t, tx.Vin[0].PubKey)
}

func TestCoinbaseIDsDifferEvenWithSameRecipient(t *testing.T) {
	tx1, err := NewCoinbaseTx("same-address")
	require.NoError(t, err)
	tx2, err := NewCoinbaseTx("same-address")
	require.NoError(t, err)

	require.NotEqual(t, tx1.ID, tx2.ID)
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	pkcs8, pubKey, err := ecdsap256.NewKeyPair()
	require.NoError(t, err)

	prevTx, err := NewCoinbaseTx("irrelevant")
	require.NoError(t, err)
	pubKeyHash := hashutil.HashPubKey(pubKey)
	prevTx.Vout = []TxOutput{{Cost: 10, PubKeyHash: pubKeyHash}}
	prevTx.ID = prevTx.hash()

	finder := fakeFinder{hex.EncodeToString(prevTx.ID): prevTx}

	tx := &Transaction{
		Vin:  []TxInput{{TxID: prevTx.ID, OutID: 0, PubKey: pubKey}},
		Vout: []TxOutput{{Cost: 10, PubKeyHash: pubKeyHash}},
	}
	tx.ID = tx.hash()

	require.NoError(t, tx.Sign(pkcs8, finder))

	ok, err := tx.Verify(finder)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyFailsOnTamperedSignature(t *testing.T) {
	pkcs8, pubKey, err := ecdsap256.NewKeyPair()
	require.NoError(t, err)

	prevTx, err := NewCoinbaseTx("irrelevant")
	require.NoError(t, err)
	pubKeyHash := hashutil.HashPubKey(pubKey)
	prevTx.Vout = []TxOutput{{Cost: 10, PubKeyHash: pubKeyHash}}
	prevTx.ID = prevTx.hash()

	finder := fakeFinder{hex.EncodeToString(prevTx.ID): prevTx}

	tx := &Transaction{
		Vin:  []TxInput{{TxID: prevTx.ID, OutID: 0, PubKey: pubKey}},
		Vout: []TxOutput{{Cost: 10, PubKeyHash: pubKeyHash}},
	}
	tx.ID = tx.hash()
	require.NoError(t, tx.Sign(pkcs8, finder))

	tx.Vin[0].Signature[0] ^= 0xFF

	ok, err := tx.Verify(finder)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyFailsOnTamperedPubKey(t *testing.T) {
	pkcs8, pubKey, err := ecdsap256.NewKeyPair()
	require.NoError(t, err)

	prevTx, err := NewCoinbaseTx("irrelevant")
	require.NoError(t, err)
	pubKeyHash := hashutil.HashPubKey(pubKey)
	prevTx.Vout = []TxOutput{{Cost: 10, PubKeyHash: pubKeyHash}}
	prevTx.ID = prevTx.hash()

	finder := fakeFinder{hex.EncodeToString(prevTx.ID): prevTx}

	tx := &Transaction{
		Vin:  []TxInput{{TxID: prevTx.ID, OutID: 0, PubKey: pubKey}},
		Vout: []TxOutput{{Cost: 10, PubKeyHash: pubKeyHash}},
	}
	tx.ID = tx.hash()
	require.NoError(t, tx.Sign(pkcs8, finder))

	tx.Vin[0].PubKey[0] ^= 0xFF

	ok, err := tx.Verify(finder)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyFailsWhenReferencedOutputIsTampered(t *testing.T) {
	pkcs8, pubKey, err := ecdsap256.NewKeyPair()
	require.NoError(t, err)

	prevTx, err := NewCoinbaseTx("irrelevant")
	require.NoError(t, err)
	pubKeyHash := hashutil.HashPubKey(pubKey)
	prevTx.Vout = []TxOutput{{Cost: 10, PubKeyHash: pubKeyHash}}
	prevTx.ID = prevTx.hash()

	finder := fakeFinder{hex.EncodeToString(prevTx.ID): prevTx}

	tx := &Transaction{
		Vin:  []TxInput{{TxID: prevTx.ID, OutID: 0, PubKey: pubKey}},
		Vout: []TxOutput{{Cost: 10, PubKeyHash: pubKeyHash}},
	}
	tx.ID = tx.hash()
	require.NoError(t, tx.Sign(pkcs8, finder))

	// Mutate the referenced output's cost directly, without recomputing
	// prevTx.ID — simulating a raw on-disk byte flip.
	prevTx.Vout[0].Cost ^= 1

	ok, err := tx.Verify(finder)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCoinbaseAlwaysVerifies(t *testing.T) {
	tx, err := NewCoinbaseTx("miner-address")
	require.NoError(t, err)

	ok, err := tx.Verify(fakeFinder{})
	require.NoError(t, err)
	require.True(t, ok)
}
