package mempool

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ZhuZhengyi/blockchain-go/transaction"
)

func TestPoolAddGetRemove(t *testing.T) {
	pool := NewPool()

	tx, err := transaction.NewCoinbaseTx("miner-address")
	require.NoError(t, err)
	txidHex := hex.EncodeToString(tx.ID)

	require.False(t, pool.Contains(txidHex))
	pool.Add(tx)
	require.True(t, pool.Contains(txidHex))
	require.Equal(t, 1, pool.Len())

	got, ok := pool.Get(txidHex)
	require.True(t, ok)
	require.Equal(t, tx, got)

	pool.Remove(txidHex)
	require.False(t, pool.Contains(txidHex))
	require.Equal(t, 0, pool.Len())
}

func TestBlockInTransitQueue(t *testing.T) {
	bit := NewBlockInTransit()

	bit.AddBlocks([][]byte{{1, 2, 3}, {4, 5, 6}})
	require.Equal(t, 2, bit.Len())

	first, ok := bit.First()
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3}, first)

	bit.Remove([]byte{1, 2, 3})
	require.Equal(t, 1, bit.Len())

	bit.Clear()
	require.Equal(t, 0, bit.Len())
	_, ok = bit.First()
	require.False(t, ok)
}
