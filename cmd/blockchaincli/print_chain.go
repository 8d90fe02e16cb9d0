package main

import (
	"encoding/hex"
	"fmt"

	"github.com/ZhuZhengyi/blockchain-go/hashutil"
)

func runPrintChain(cfg *printChainConfig) error {
	chain, err := openChain()
	if err != nil {
		return err
	}
	defer chain.Close()

	it := chain.Iterator()
	for {
		b, ok, err := it.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		fmt.Printf("Pre block hash: %s\n", b.PreBlockHash)
		fmt.Printf("Hash: %s\n", b.Hash)
		fmt.Printf("Timestamp: %d\n", b.Timestamp)

		for _, tx := range b.Transactions {
			fmt.Printf("  Transaction %s:\n", hex.EncodeToString(tx.ID))
			if !tx.IsCoinbase() {
				for _, in := range tx.Vin {
					addr := hashutil.ConvertAddress(hashutil.HashPubKey(in.PubKey))
					fmt.Printf("    Input: %s:%d from %s\n", hex.EncodeToString(in.TxID), in.OutID, addr)
				}
			}
			for _, out := range tx.Vout {
				addr := hashutil.ConvertAddress(out.PubKeyHash)
				fmt.Printf("    Output: %d to %s\n", out.Cost, addr)
			}
		}
		fmt.Println()
	}
	return nil
}
