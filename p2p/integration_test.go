package p2p

import (
	"encoding/hex"
	"encoding/json"
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ZhuZhengyi/blockchain-go/hashutil"
	"github.com/ZhuZhengyi/blockchain-go/mempool"
	"github.com/ZhuZhengyi/blockchain-go/netmsg"
	"github.com/ZhuZhengyi/blockchain-go/nodeconfig"
	"github.com/ZhuZhengyi/blockchain-go/peerset"
	"github.com/ZhuZhengyi/blockchain-go/store"
	"github.com/ZhuZhengyi/blockchain-go/transaction"
	"github.com/ZhuZhengyi/blockchain-go/utxoindex"
	"github.com/ZhuZhengyi/blockchain-go/wallet"
)

// spendableOutputStub implements transaction.SpendableOutputsFinder by
// always pointing at one fixed output, for building a signed, properly
// ID'd spend transaction without a populated utxoindex.
type spendableOutputStub struct {
	txID  []byte
	outID int
	cost  int32
}

func (s spendableOutputStub) FindSpendableOutputs(pubKeyHash []byte, amount int32) (int32, map[string][]int, error) {
	return s.cost, map[string][]int{hex.EncodeToString(s.txID): {s.outID}}, nil
}

// waitForListener blocks until addr accepts TCP connections.
func waitForListener(t *testing.T, addr string) {
	t.Helper()
	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 2*time.Second, 20*time.Millisecond)
}

// sendTxEnvelope dials addr as an external client would and writes a raw
// Tx envelope, independent of any Server's own sendTx helper.
func sendTxEnvelope(t *testing.T, addr, addrFrom string, tx *transaction.Transaction) {
	t.Helper()
	env, err := netmsg.NewTx(addrFrom, tx.Serialize())
	require.NoError(t, err)

	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, json.NewEncoder(conn).Encode(env))
}

// TestTwoNodeSendAndMineBroadcastsBlock exercises spec.md §8 scenario S5
// across two in-process p2p.Server instances bound to distinct local
// ports: an external client sends two transactions to the central node,
// which relays them to a miner node; the miner pools them past
// netmsg.TransactionThreshold, mines a block, and announces it back.
// The central node's tip and UTXO set must reflect the mined block once
// the resulting inv/getdata/block exchange completes.
//
// The two servers share one underlying store.Chain, matching spec.md's
// "the persistent store's handle is clonable and safe to share" — this
// isolates the test to the gossip relay, pooling-threshold, and
// announce-back wiring (the part the missing central-node peer seeding
// broke) rather than re-deriving full independent-store chain sync,
// which TestHandleGetBlocksRepliesWithInv and
// TestHandleVersionRequestsBlocksWhenBehind already cover.
func TestTwoNodeSendAndMineBroadcastsBlock(t *testing.T) {
	const minerAddr = "127.0.0.1:21001"

	walletA, err := wallet.New()
	require.NoError(t, err)
	walletB, err := wallet.New()
	require.NoError(t, err)
	minerWallet, err := wallet.New()
	require.NoError(t, err)

	dir, err := os.MkdirTemp("", "blockchain-go-p2p-s5-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	chain, err := store.Create(dir, walletA.GetAddress())
	require.NoError(t, err)
	t.Cleanup(func() { chain.Close() })

	genesisBlock, err := chain.GetBlock(chain.Tip())
	require.NoError(t, err)
	genesisCoinbase := genesisBlock.Transactions[0]

	// Mine a second block so A holds two independent spendable outputs,
	// enough to reach the pooling threshold without chaining spends.
	secondCoinbase, err := transaction.NewCoinbaseTx(walletA.GetAddress())
	require.NoError(t, err)
	block1, err := chain.MineBlock([]*transaction.Transaction{secondCoinbase})
	require.NoError(t, err)

	txA, err := transaction.NewUTXOTransaction(
		walletA.GetAddress(), walletB.GetAddress(), 3, walletA.PublicKey,
		spendableOutputStub{txID: genesisCoinbase.ID, outID: 0, cost: transaction.Subsidy},
	)
	require.NoError(t, err)
	require.NoError(t, txA.Sign(walletA.Pkcs8, chain))

	txB, err := transaction.NewUTXOTransaction(
		walletA.GetAddress(), walletB.GetAddress(), 4, walletA.PublicKey,
		spendableOutputStub{txID: block1.Transactions[0].ID, outID: 0, cost: transaction.Subsidy},
	)
	require.NoError(t, err)
	require.NoError(t, txB.Sign(walletA.Pkcs8, chain))

	t.Setenv("NODE_ADDRESS", netmsg.CentralNode)
	central := NewServer(chain, utxoindex.New(chain), mempool.NewPool(), mempool.NewBlockInTransit(), peerset.New(), nodeconfig.New())
	go central.Run(netmsg.CentralNode)
	t.Cleanup(func() { central.Close() })
	waitForListener(t, netmsg.CentralNode)

	t.Setenv("NODE_ADDRESS", minerAddr)
	minerCfg := nodeconfig.New()
	minerCfg.SetMiningAddr(minerWallet.GetAddress())
	miner := NewServer(chain, utxoindex.New(chain), mempool.NewPool(), mempool.NewBlockInTransit(), peerset.New(), minerCfg)
	go miner.Run(minerAddr)
	t.Cleanup(func() { miner.Close() })
	waitForListener(t, minerAddr)

	// The miner's startup handshake registers it with the central node;
	// the miner's own peer set already knows the central node without
	// any handshake, since peerset.New seeds it.
	require.Eventually(t, func() bool {
		return central.peers.NodeIsKnown(minerAddr)
	}, 2*time.Second, 20*time.Millisecond)
	require.True(t, miner.peers.NodeIsKnown(netmsg.CentralNode))

	sendTxEnvelope(t, netmsg.CentralNode, "client-wallet:0", txA)
	sendTxEnvelope(t, netmsg.CentralNode, "client-wallet:0", txB)

	pubKeyHashB := hashutil.PubKeyHashFromAddress(walletB.GetAddress())
	var totalB int32
	require.Eventually(t, func() bool {
		outs, err := central.index.FindUTXO(pubKeyHashB)
		if err != nil {
			return false
		}
		var sum int32
		for _, o := range outs {
			sum += o.Cost
		}
		totalB = sum
		return sum == 7
	}, 5*time.Second, 50*time.Millisecond)
	require.EqualValues(t, 7, totalB)

	height, err := chain.BestHeight()
	require.NoError(t, err)
	require.EqualValues(t, block1.Height+1, height)
}
