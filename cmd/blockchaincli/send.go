package main

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/ZhuZhengyi/blockchain-go/hashutil"
	"github.com/ZhuZhengyi/blockchain-go/netmsg"
	"github.com/ZhuZhengyi/blockchain-go/p2p"
	"github.com/ZhuZhengyi/blockchain-go/transaction"
	"github.com/ZhuZhengyi/blockchain-go/utxoindex"
	"github.com/ZhuZhengyi/blockchain-go/walletstore"
)

// mineImmediately is the Positional.Mine value that mines the sent
// transaction on this node instead of relaying it to the central node.
const mineImmediately = 1

func runSend(cfg *sendConfig) error {
	from, to, amount := cfg.Positional.From, cfg.Positional.To, cfg.Positional.Amount
	if !hashutil.ValidateAddress(from) {
		return errors.New("ERROR: Sender address is not valid")
	}
	if !hashutil.ValidateAddress(to) {
		return errors.New("ERROR: recipient address is not valid")
	}

	walletPath, err := filepath.Abs(walletstore.WalletFile)
	if err != nil {
		return err
	}
	wallets, err := walletstore.Load(walletPath)
	if err != nil {
		return err
	}
	senderWallet, ok := wallets.GetWallet(from)
	if !ok {
		return errors.Errorf("ERROR: no local wallet for address %s", from)
	}

	chain, err := openChain()
	if err != nil {
		return err
	}
	defer chain.Close()

	idx := utxoindex.New(chain)
	tx, err := transaction.NewUTXOTransaction(from, to, amount, senderWallet.PublicKey, idx)
	if err != nil {
		return err
	}
	if err := tx.Sign(senderWallet.Pkcs8, chain); err != nil {
		return err
	}

	if cfg.Positional.Mine == mineImmediately {
		coinbase, err := transaction.NewCoinbaseTx(from)
		if err != nil {
			return err
		}
		if _, err := chain.MineBlock([]*transaction.Transaction{tx, coinbase}); err != nil {
			return err
		}
		if err := idx.Reindex(); err != nil {
			return err
		}
	} else if err := p2p.SendTx(netmsg.CentralNode, tx); err != nil {
		return err
	}

	fmt.Println("Success!")
	return nil
}
