package main

import (
	"fmt"

	"github.com/ZhuZhengyi/blockchain-go/utxoindex"
)

func runReindexUTXO(cfg *reindexUTXOConfig) error {
	chain, err := openChain()
	if err != nil {
		return err
	}
	defer chain.Close()

	idx := utxoindex.New(chain)
	if err := idx.Reindex(); err != nil {
		return err
	}

	count, err := idx.CountTransactions()
	if err != nil {
		return err
	}

	fmt.Printf("Done! There are %d transactions in the UTXO set.\n", count)
	return nil
}
