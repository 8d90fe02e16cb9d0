package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ZhuZhengyi/blockchain-go/hashutil"
	"github.com/ZhuZhengyi/blockchain-go/utxoindex"
	"github.com/ZhuZhengyi/blockchain-go/walletstore"
)

// chdirToTempDir points chainDataDir and walletstore.WalletFile (both
// relative to the working directory) at a scratch directory for the
// duration of the test, restoring the original working directory on
// cleanup.
func chdirToTempDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(cwd) })
}

func createTestWallet(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs(walletstore.WalletFile)
	require.NoError(t, err)

	ws, err := walletstore.Load(path)
	require.NoError(t, err)
	address, err := ws.CreateWallet()
	require.NoError(t, err)
	return address
}

func createBlockchain(t *testing.T, address string) {
	t.Helper()
	var cfg createBlockchainConfig
	cfg.Positional.Address = address
	require.NoError(t, runCreateBlockchain(&cfg))
}

func send(t *testing.T, from, to string, amount int32) error {
	t.Helper()
	var cfg sendConfig
	cfg.Positional.From = from
	cfg.Positional.To = to
	cfg.Positional.Amount = amount
	cfg.Positional.Mine = mineImmediately
	return runSend(&cfg)
}

// balanceOf reads address's balance the same way runGetBalance does,
// without depending on captured stdout.
func balanceOf(t *testing.T, address string) int32 {
	t.Helper()
	chain, err := openChain()
	require.NoError(t, err)
	defer chain.Close()

	pubKeyHash := hashutil.PubKeyHashFromAddress(address)
	utxos, err := utxoindex.New(chain).FindUTXO(pubKeyHash)
	require.NoError(t, err)

	var balance int32
	for _, utxo := range utxos {
		balance += utxo.Cost
	}
	return balance
}

// TestScenarioS1CreateBlockchainPaysGenesisReward covers spec.md §8 S1:
// creating a blockchain to address A leaves balance(A) = 10.
func TestScenarioS1CreateBlockchainPaysGenesisReward(t *testing.T) {
	chdirToTempDir(t)
	addrA := createTestWallet(t)

	createBlockchain(t, addrA)

	require.EqualValues(t, 10, balanceOf(t, addrA))
}

// TestScenarioS2AndS3ChainedSends covers spec.md §8 S2 and S3: two
// successive mined sends from A to B leave both balances at the
// scenarios' stated totals.
func TestScenarioS2AndS3ChainedSends(t *testing.T) {
	chdirToTempDir(t)
	addrA := createTestWallet(t)
	addrB := createTestWallet(t)
	createBlockchain(t, addrA)

	// S2: send 4 A->B with mine=1.
	require.NoError(t, send(t, addrA, addrB, 4))
	require.EqualValues(t, 16, balanceOf(t, addrA))
	require.EqualValues(t, 4, balanceOf(t, addrB))

	// S3: send 5 A->B with mine=1.
	require.NoError(t, send(t, addrA, addrB, 5))
	require.EqualValues(t, 21, balanceOf(t, addrA))
	require.EqualValues(t, 9, balanceOf(t, addrB))
}

// TestScenarioS4InsufficientFundsLeavesChainUnchanged covers spec.md §8
// S4: a send exceeding the sender's balance fails with "not enough
// funds" and the chain height is unchanged.
func TestScenarioS4InsufficientFundsLeavesChainUnchanged(t *testing.T) {
	chdirToTempDir(t)
	addrA := createTestWallet(t)
	addrB := createTestWallet(t)
	createBlockchain(t, addrA)

	chain, err := openChain()
	require.NoError(t, err)
	heightBefore, err := chain.BestHeight()
	require.NoError(t, err)
	require.NoError(t, chain.Close())

	err = send(t, addrA, addrB, 100)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not enough funds")

	chain, err = openChain()
	require.NoError(t, err)
	defer chain.Close()
	heightAfter, err := chain.BestHeight()
	require.NoError(t, err)
	require.Equal(t, heightBefore, heightAfter)
}
