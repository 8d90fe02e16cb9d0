package main

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ZhuZhengyi/blockchain-go/hashutil"
	"github.com/ZhuZhengyi/blockchain-go/utxoindex"
)

func runGetBalance(cfg *getBalanceConfig) error {
	address := cfg.Positional.Address
	if !hashutil.ValidateAddress(address) {
		return errors.Errorf("address %s is not valid", address)
	}

	chain, err := openChain()
	if err != nil {
		return err
	}
	defer chain.Close()

	pubKeyHash := hashutil.PubKeyHashFromAddress(address)
	utxos, err := utxoindex.New(chain).FindUTXO(pubKeyHash)
	if err != nil {
		return err
	}

	var balance int32
	for _, utxo := range utxos {
		balance += utxo.Cost
	}

	fmt.Printf("Balance of %s: %d\n", address, balance)
	return nil
}
